package crawl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/webcat"
	"golang.org/x/time/rate"
)

var _ webcat.DomainLimiter = (*HostLimiter)(nil)

// HostLimiter spaces requests to each host at a fixed rate. Requests to
// different hosts never wait on each other.
type HostLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// LimiterOption configures a HostLimiter.
type LimiterOption func(*HostLimiter)

// WithBurst lets up to n requests to a host start back to back before the
// rate applies. Values below 1 are ignored.
func WithBurst(n int) LimiterOption {
	return func(l *HostLimiter) {
		if n >= 1 {
			l.burst = n
		}
	}
}

// NewHostLimiter returns a limiter allowing rps requests per second to each
// host. A non-positive rps never waits.
func NewHostLimiter(rps float64, opts ...LimiterOption) *HostLimiter {
	l := &HostLimiter{
		limit: rate.Inf,
		burst: 1,
		hosts: make(map[string]*rate.Limiter),
	}
	if rps > 0 {
		l.limit = rate.Limit(rps)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a request to host may start. Host names are compared
// case-insensitively.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if err := l.forHost(strings.ToLower(host)).Wait(ctx); err != nil {
		return fmt.Errorf("wait for %s: %w", host, err)
	}
	return nil
}

// Hosts returns the number of hosts seen so far.
func (l *HostLimiter) Hosts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hosts)
}

func (l *HostLimiter) forHost(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.hosts[host]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.hosts[host] = lim
	}
	return lim
}
