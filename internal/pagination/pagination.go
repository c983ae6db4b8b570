// Package pagination slices an already-ordered result set into fixed-size
// pages. It never reorders its input; callers order before paginating.
package pagination

import (
	"math"
	"strconv"
)

// Page is one bounded slice of an ordered sequence plus the metadata a
// listing view needs for navigation.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageCount  int
	Current    int
}

// ParsePage reads a 1-based page number from its raw query form. Absent or
// non-numeric input yields 0, which Paginate clamps to the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Paginate returns the requested page of items. Out-of-range requests clamp
// to the nearest valid page instead of failing, so a bounded "page 2" link
// always lands somewhere sensible. An empty input still yields a single
// empty page; PageCount is never zero.
func Paginate[T any](items []T, perPage, requested int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}

	total := len(items)
	pageCount := int(math.Ceil(float64(total) / float64(perPage)))
	if pageCount == 0 {
		pageCount = 1
	}

	current := requested
	if current < 1 {
		current = 1
	} else if current > pageCount {
		current = pageCount
	}

	start := (current - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		TotalCount: total,
		PageCount:  pageCount,
		Current:    current,
	}
}

func (p Page[T]) HasPrev() bool { return p.Current > 1 }

func (p Page[T]) HasNext() bool { return p.Current < p.PageCount }

func (p Page[T]) PrevPage() int { return p.Current - 1 }

func (p Page[T]) NextPage() int { return p.Current + 1 }
