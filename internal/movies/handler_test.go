package movies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/catalog"
	"moviehub/internal/favorites"
	"moviehub/internal/mirror"
	"moviehub/internal/storage"
	"moviehub/pkg/models"
)

// downCatalog fails every call.
type downCatalog struct{ searches int }

var errDown = errors.New("catalog down")

func (d *downCatalog) ListMovies(context.Context, int) (models.MoviePage, error) {
	return models.MoviePage{}, errDown
}
func (d *downCatalog) Movie(context.Context, models.MovieID) (*models.Movie, error) {
	return nil, errDown
}
func (d *downCatalog) Search(context.Context, string) ([]models.Movie, error) {
	d.searches++
	return nil, errDown
}
func (d *downCatalog) Genres(context.Context) ([]models.Genre, error) { return nil, errDown }
func (d *downCatalog) GenreMovies(context.Context, string, int) (models.MoviePage, error) {
	return models.MoviePage{}, errDown
}

type env struct {
	router *gin.Engine
	favs   *favorites.Registry
}

func newEnv(t *testing.T, cat Catalog) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cat == nil {
		srv := httptest.NewServer(mirror.New(mirror.Builtin(), true))
		t.Cleanup(srv.Close)
		cat = catalog.New(catalog.Options{BaseURL: srv.URL + mirror.Prefix})
	}
	favs := favorites.NewRegistry(storage.NewMemory(), zerolog.Nop())
	r := gin.New()
	NewHandler(cat, favs, 3, zerolog.Nop()).RegisterRoutes(r.Group(""))
	return &env{router: r, favs: favs}
}

func (e *env) get(t *testing.T, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestListPageWithFavorites(t *testing.T) {
	e := newEnv(t, nil)
	e.favs.For(context.Background(), "").Toggle(context.Background(), "2")

	var v PageView
	require.Equal(t, http.StatusOK, e.get(t, "/movies", &v))
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 3, v.MaxPage)
	assert.False(t, v.HasPrev)
	assert.True(t, v.HasNext)
	require.Len(t, v.Items, 10)
	assert.False(t, v.Items[0].Favorite)
	assert.True(t, v.Items[1].Favorite)
	assert.Equal(t, models.PlaceholderPoster, v.Items[6].Poster, "movie 7 has no poster")
}

func TestListClampsPage(t *testing.T) {
	e := newEnv(t, nil)

	var v PageView
	require.Equal(t, http.StatusOK, e.get(t, "/movies?page=40", &v))
	assert.Equal(t, 3, v.Page)
	assert.False(t, v.HasNext)
	assert.Len(t, v.Items, 3)

	require.Equal(t, http.StatusOK, e.get(t, "/movies?page=0", &v))
	assert.Equal(t, 1, v.Page)
}

func TestListDegradesOnCatalogFailure(t *testing.T) {
	e := newEnv(t, &downCatalog{})

	var v PageView
	require.Equal(t, http.StatusOK, e.get(t, "/movies?page=2", &v))
	assert.True(t, v.Degraded)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
	assert.Equal(t, 2, v.Page)
}

func TestMovieDetail(t *testing.T) {
	e := newEnv(t, nil)

	var card models.Card
	require.Equal(t, http.StatusOK, e.get(t, "/movies/12", &card))
	assert.Equal(t, "Inception", card.Title)
	require.NotNil(t, card.Detail)
	assert.Equal(t, "Christopher Nolan", card.Detail.Director)

	assert.Equal(t, http.StatusNotFound, e.get(t, "/movies/999", nil))
}

func TestMovieDetailUpstreamError(t *testing.T) {
	e := newEnv(t, &downCatalog{})

	var body map[string]string
	assert.Equal(t, http.StatusBadGateway, e.get(t, "/movies/1", &body))
	assert.Equal(t, "Failed to load movie details", body["error"])
}

func TestGenres(t *testing.T) {
	e := newEnv(t, nil)

	var out struct {
		Items []models.Genre `json:"items"`
	}
	require.Equal(t, http.StatusOK, e.get(t, "/genres", &out))
	require.NotEmpty(t, out.Items)

	var v PageView
	require.Equal(t, http.StatusOK, e.get(t, "/genre/Crime/1", &v))
	assert.Equal(t, "Crime", v.Genre)
	assert.Len(t, v.Items, 10)

	down := newEnv(t, &downCatalog{})
	require.Equal(t, http.StatusOK, down.get(t, "/genres", &out))
	assert.Empty(t, out.Items)
}

func TestSearchBlankSkipsCatalog(t *testing.T) {
	cat := &downCatalog{}
	e := newEnv(t, cat)

	var out struct {
		Items []models.Card `json:"items"`
	}
	require.Equal(t, http.StatusOK, e.get(t, "/search?q=%20%20", &out))
	assert.Empty(t, out.Items)
	assert.Equal(t, 0, cat.searches)

	require.Equal(t, http.StatusOK, e.get(t, "/search?q=bat", &out))
	assert.Empty(t, out.Items)
	assert.Equal(t, 1, cat.searches)
}

func TestSearchAgainstMirror(t *testing.T) {
	e := newEnv(t, nil)

	var out struct {
		Items []models.Card `json:"items"`
	}
	require.Equal(t, http.StatusOK, e.get(t, "/search?q=knight", &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "The Dark Knight", out.Items[0].Title)
}

func TestRoutes(t *testing.T) {
	var out struct {
		Routes []string `json:"routes"`
	}
	require.Equal(t, http.StatusOK, newEnv(t, &downCatalog{}).get(t, "/routes", &out))
	assert.Equal(t, Routes, out.Routes)
}
