package crawl

import (
	"sort"

	"github.com/fwojciec/webcat"
)

// Reorder sorts pages into the position their URL has in order. Pages whose
// URL does not appear in order go last, keeping their relative order. The
// slice is sorted in place and returned.
func Reorder(pages []*webcat.Page, order []string) []*webcat.Page {
	rank := make(map[string]int, len(order))
	for i, u := range order {
		if _, ok := rank[u]; !ok {
			rank[u] = i
		}
	}

	position := func(p *webcat.Page) int {
		if i, ok := rank[p.URL]; ok {
			return i
		}
		return len(order)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return position(pages[i]) < position(pages[j])
	})
	return pages
}
