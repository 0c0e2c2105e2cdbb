// Package movies serves the paged catalog listing, movie details and genre
// browsing.
package movies

// DefaultMaxPage is the last page the listing lets you reach.
const DefaultMaxPage = 25

// Pager is a 1-based page cursor clamped to [1, Max].
type Pager struct {
	Page int
	Max  int
}

func NewPager(max int) Pager {
	if max < 1 {
		max = 1
	}
	return Pager{Page: 1, Max: max}
}

// Clamp returns p with Page forced into range.
func (p Pager) Clamp() Pager {
	if p.Max < 1 {
		p.Max = 1
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > p.Max {
		p.Page = p.Max
	}
	return p
}

func (p Pager) HasPrev() bool { return p.Page > 1 }
func (p Pager) HasNext() bool { return p.Page < p.Max }

// Next is a no-op on the last page.
func (p Pager) Next() Pager {
	if p.HasNext() {
		p.Page++
	}
	return p
}

// Prev is a no-op on page 1.
func (p Pager) Prev() Pager {
	if p.HasPrev() {
		p.Page--
	}
	return p
}
