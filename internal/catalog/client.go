// Package catalog talks to the remote movie catalog (moviesapi.ir style
// JSON API). Every call is a single attempt: no retries, and no timeout
// unless one is configured.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"moviehub/pkg/models"
)

const DefaultBaseURL = "https://moviesapi.ir/api/v1"

var ErrNotFound = errors.New("movie not found")

// StatusError is a non-2xx answer other than 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("catalog status %d: %s", e.Code, body)
}

type Options struct {
	BaseURL string
	// zero disables the timeout
	Timeout time.Duration
	// for tests; nil means a fresh http.Client
	HTTPClient *http.Client
}

type Client struct {
	http *resty.Client
	base string
}

func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	return &Client{http: rc, base: base}
}

func (c *Client) BaseURL() string { return c.base }

// ListMovies fetches one catalog page (1-based).
func (c *Client) ListMovies(ctx context.Context, page int) (models.MoviePage, error) {
	var out models.MoviePage
	req := c.http.R().SetQueryParam("page", strconv.Itoa(page))
	if err := c.get(ctx, "list", req, "/movies", &out); err != nil {
		return models.MoviePage{}, fmt.Errorf("list movies page %d: %w", page, err)
	}
	return out, nil
}

// Search sends q exactly as given and returns the matching movies.
func (c *Client) Search(ctx context.Context, q string) ([]models.Movie, error) {
	var out models.MoviePage
	req := c.http.R().SetQueryParam("q", q)
	if err := c.get(ctx, "search", req, "/movies", &out); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	if out.Movies == nil {
		return []models.Movie{}, nil
	}
	return out.Movies, nil
}

// Movie returns the full record, or ErrNotFound.
func (c *Client) Movie(ctx context.Context, id models.MovieID) (*models.Movie, error) {
	var out models.Movie
	req := c.http.R().SetPathParam("id", id.String())
	if err := c.get(ctx, "movie", req, "/movies/{id}", &out); err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, nil
}

func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var out []models.Genre
	if err := c.get(ctx, "genres", c.http.R(), "/genres", &out); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if out == nil {
		out = []models.Genre{}
	}
	return out, nil
}

func (c *Client) GenreMovies(ctx context.Context, genreID string, page int) (models.MoviePage, error) {
	var out models.MoviePage
	req := c.http.R().
		SetPathParam("id", genreID).
		SetQueryParam("page", strconv.Itoa(page))
	if err := c.get(ctx, "genre_movies", req, "/genres/{id}/movies", &out); err != nil {
		return models.MoviePage{}, fmt.Errorf("list genre %s page %d: %w", genreID, page, err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, req *resty.Request, path string, out any) (err error) {
	start := time.Now()
	defer func() { observe(endpoint, start, err) }()

	resp, err := req.SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code < 200 || code > 299:
		return &StatusError{Code: code, Body: resp.String()}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
