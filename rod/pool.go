package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before a fresh
// one replaces it. Chrome's memory use only grows over a long run.
const DefaultRecycleAfter = 75

var errPoolClosed = errors.New("fetcher closed")

// generation is one launched Chrome process.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	served  int64 // pages handed out
	active  int   // pages not yet released
	retired bool
	stopped bool
}

func (g *generation) shutdown() error {
	if g.stopped {
		return nil
	}
	g.stopped = true

	var err error
	if g.browser != nil {
		err = g.browser.Close()
	}
	if g.launcher != nil {
		g.launcher.Kill()
	}
	return err
}

func (g *generation) pid() int {
	if g.launcher == nil {
		return 0
	}
	return g.launcher.PID()
}

// browserPool hands out the current browser to concurrent fetches. When a
// browser has served recycleAfter pages the next fetch gets a new one; the
// old one is shut down once its last page is released, so pages still
// loading on it are not cut off.
type browserPool struct {
	mu           sync.Mutex
	current      *generation
	recycleAfter int64
	closed       bool
	launch       func() (*generation, error)
}

func newBrowserPool(recycleAfter int64, launch func() (*generation, error)) (*browserPool, error) {
	if recycleAfter <= 0 {
		recycleAfter = DefaultRecycleAfter
	}
	g, err := launch()
	if err != nil {
		return nil, err
	}
	return &browserPool{current: g, recycleAfter: recycleAfter, launch: launch}, nil
}

// acquire returns the browser to open one page on. release must be called
// after that page is closed.
func (bp *browserPool) acquire() (browser *rod.Browser, release func(), err error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil, nil, errPoolClosed
	}
	if bp.current.served >= bp.recycleAfter {
		bp.recycle()
	}

	g := bp.current
	g.served++
	g.active++

	var once sync.Once
	return g.browser, func() { once.Do(func() { bp.release(g) }) }, nil
}

// recycle swaps in a new browser. If the launch fails the current one keeps
// serving. Must be called with mu held.
func (bp *browserPool) recycle() {
	next, err := bp.launch()
	if err != nil {
		return
	}
	old := bp.current
	bp.current = next
	old.retired = true
	if old.active == 0 {
		_ = old.shutdown()
	}
}

func (bp *browserPool) release(g *generation) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	g.active--
	if g.retired && g.active == 0 {
		_ = g.shutdown()
	}
}

// close shuts down the current browser. Retired browsers still in use stop
// when their pages are released.
func (bp *browserPool) close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true
	bp.current.retired = true
	return bp.current.shutdown()
}

// pid returns the launcher process ID of the current browser, or zero once
// the pool is closed.
func (bp *browserPool) pid() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0
	}
	return bp.current.pid()
}

// launchChrome starts headless Chrome with flags that keep background tabs
// rendering at full speed.
func launchChrome() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &generation{browser: browser, launcher: l}, nil
}
