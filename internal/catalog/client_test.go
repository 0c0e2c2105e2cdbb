package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/mirror"
	"moviehub/pkg/models"
)

func newMirrorClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(mirror.New(mirror.Builtin(), true))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + mirror.Prefix + "/"})
}

func TestListMovies(t *testing.T) {
	c := newMirrorClient(t)

	p, err := c.ListMovies(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, p.Movies, 10)
	assert.Equal(t, models.Int(2), p.Metadata.CurrentPage)
	assert.Equal(t, models.MovieID("11"), p.Movies[0].ID)
}

func TestSearchSendsTextAsTyped(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":4,"title":"The Dark Knight"}],"metadata":{}}`))
	}))
	defer srv.Close()

	movies, err := New(Options{BaseURL: srv.URL}).Search(context.Background(), " dark knight&x ")
	require.NoError(t, err)
	assert.Equal(t, " dark knight&x ", got.Load())
	require.Len(t, movies, 1)
	assert.Equal(t, models.MovieID("4"), movies[0].ID)
}

func TestSearchAgainstMirror(t *testing.T) {
	movies, err := newMirrorClient(t).Search(context.Background(), "batman")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Batman Begins", movies[0].Title)

	movies, err = newMirrorClient(t).Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestMovieNotFound(t *testing.T) {
	c := newMirrorClient(t)

	m, err := c.Movie(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "Inception", m.Title)

	_, err = c.Movie(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenres(t *testing.T) {
	c := newMirrorClient(t)

	gs, err := c.Genres(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, gs)

	p, err := c.GenreMovies(context.Background(), gs[0].ID.String(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Movies)
}

func TestStatusErrorAndNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(Options{BaseURL: srv.URL}).ListMovies(context.Background(), 1)
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": "nope"`))
	}))
	defer srv.Close()

	_, err := New(Options{BaseURL: srv.URL}).ListMovies(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, "error", outcome(err))
}

func TestContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := New(Options{BaseURL: srv.URL}).Search(ctx, "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New(Options{}).BaseURL())
}
