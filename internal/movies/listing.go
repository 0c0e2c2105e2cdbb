package movies

import (
	"context"
	"sync"

	"moviehub/pkg/models"
)

// PageFunc fetches one page of movies.
type PageFunc func(ctx context.Context, page int) (models.MoviePage, error)

// Listing is the browse state: the current page and the movies shown for
// it. Moving to another page fetches exactly once and replaces the list
// wholesale; a failed fetch leaves the previous list in place.
type Listing struct {
	fetch PageFunc

	mu      sync.Mutex
	pager   Pager
	movies  []models.Movie
	loading bool
}

func NewListing(fetch PageFunc, maxPage int) *Listing {
	return &Listing{fetch: fetch, pager: NewPager(maxPage), movies: []models.Movie{}}
}

// Load fetches the current page.
func (l *Listing) Load(ctx context.Context) error {
	l.mu.Lock()
	page := l.pager.Page
	l.mu.Unlock()
	return l.load(ctx, page)
}

// Next advances one page. It reports whether the page changed; at the last
// page nothing is fetched.
func (l *Listing) Next(ctx context.Context) (bool, error) {
	return l.move(ctx, Pager.Next)
}

func (l *Listing) Prev(ctx context.Context) (bool, error) {
	return l.move(ctx, Pager.Prev)
}

func (l *Listing) move(ctx context.Context, step func(Pager) Pager) (bool, error) {
	l.mu.Lock()
	next := step(l.pager)
	if next == l.pager {
		l.mu.Unlock()
		return false, nil
	}
	l.pager = next
	l.mu.Unlock()

	return true, l.load(ctx, next.Page)
}

func (l *Listing) load(ctx context.Context, page int) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	res, err := l.fetch(ctx, page)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}
	// a slower fetch for a page we already left must not overwrite
	if page != l.pager.Page {
		return nil
	}
	if res.Movies == nil {
		res.Movies = []models.Movie{}
	}
	l.movies = res.Movies
	return nil
}

func (l *Listing) Pager() Pager {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager
}

func (l *Listing) Movies() []models.Movie {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.movies
}

func (l *Listing) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}
