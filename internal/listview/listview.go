// Package listview sorts and paginates collections the way the admin tables
// show them: newest submission first, fixed page size, 1-indexed pages.
package listview

import (
	"slices"
	"time"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// DefaultPageSize is used when a Paginator has no size.
const DefaultPageSize = 10

// Submitted is implemented by rows that carry a submission time.
type Submitted interface {
	content.ContactMessage | content.FormResponse
}

func submittedAt[T Submitted](v T) time.Time {
	switch r := any(v).(type) {
	case content.ContactMessage:
		return r.SubmittedAt.Time
	case content.FormResponse:
		return r.SubmittedAt.Time
	}
	return time.Time{}
}

// SortBySubmittedDesc returns a copy of items ordered most recent first.
// Rows with equal timestamps keep their input order.
func SortBySubmittedDesc[T Submitted](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return submittedAt(b).Compare(submittedAt(a))
	})
	return out
}

// Paginator tracks the current page of a list.
type Paginator struct {
	Page     int
	PageSize int
}

// NewPaginator starts at page 1.
func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{Page: 1, PageSize: size}
}

func (p Paginator) size() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// TotalPages is ceil(n / size).
func (p Paginator) TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	s := p.size()
	return (n + s - 1) / s
}

// GoTo moves to page if it is within [1, TotalPages(n)] and reports whether
// it moved. Out of range targets leave the page unchanged.
func (p *Paginator) GoTo(page, n int) bool {
	if page < 1 || page > p.TotalPages(n) {
		return false
	}
	p.Page = page
	return true
}

// Next moves forward one page if there is one.
func (p *Paginator) Next(n int) bool { return p.GoTo(p.Page+1, n) }

// Prev moves back one page if there is one.
func (p *Paginator) Prev(n int) bool { return p.GoTo(p.Page-1, n) }

// Bounds returns the half-open index range of the current page clipped to n.
func (p Paginator) Bounds(n int) (start, end int) {
	s := p.size()
	start = (p.Page - 1) * s
	end = start + s
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	return start, end
}

// Slice returns the rows of the current page.
func Slice[T any](p Paginator, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}

// View is a ready-to-render page of a list.
type View[T any] struct {
	Rows       []T
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// Empty reports whether the page has nothing to show.
func (v View[T]) Empty() bool { return len(v.Rows) == 0 }

// Pages lists 1..TotalPages for page links.
func (v View[T]) Pages() []int {
	out := make([]int, v.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Build sorts items, moves to the requested page when it exists, and
// returns that page.
func Build[T Submitted](items []T, pageSize, requested int) View[T] {
	sorted := SortBySubmittedDesc(items)
	p := NewPaginator(pageSize)
	p.GoTo(requested, len(sorted))

	total := p.TotalPages(len(sorted))
	return View[T]{
		Rows:       Slice(p, sorted),
		Page:       p.Page,
		TotalPages: total,
		Total:      len(sorted),
		HasPrev:    p.Page > 1,
		HasNext:    p.Page < total,
	}
}
