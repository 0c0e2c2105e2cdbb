package mirror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/pkg/models"
)

func get(t *testing.T, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	New(Builtin(), true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestBuiltinDataset(t *testing.T) {
	ds := Builtin()
	assert.Len(t, ds.Movies, 23)
	assert.NotEmpty(t, ds.Genres)
}

func TestMoviesPaging(t *testing.T) {
	var p models.MoviePage
	require.Equal(t, http.StatusOK, get(t, "/api/v1/movies?page=3", &p))

	assert.Len(t, p.Movies, 3)
	assert.Equal(t, models.Int(3), p.Metadata.CurrentPage)
	assert.Equal(t, models.Int(3), p.Metadata.PageCount)
	assert.Equal(t, models.Int(23), p.Metadata.TotalCount)
	assert.Empty(t, p.Movies[0].Plot, "list entries carry no detail fields")

	require.Equal(t, http.StatusOK, get(t, "/api/v1/movies?page=9", &p))
	assert.Empty(t, p.Movies)

	require.Equal(t, http.StatusOK, get(t, "/api/v1/movies?page=junk", &p))
	assert.Equal(t, models.Int(1), p.Metadata.CurrentPage)
	assert.Len(t, p.Movies, PerPage)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	var p models.MoviePage
	require.Equal(t, http.StatusOK, get(t, "/api/v1/movies?q=GOD", &p))

	var titles []string
	for _, m := range p.Movies {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"The Godfather", "The Godfather: Part II", "City of God"}, titles)
}

func TestMovieDetailAndNotFound(t *testing.T) {
	var m models.Movie
	require.Equal(t, http.StatusOK, get(t, "/api/v1/movies/4", &m))
	assert.Equal(t, "The Dark Knight", m.Title)
	assert.NotEmpty(t, m.Plot)

	assert.Equal(t, http.StatusNotFound, get(t, "/api/v1/movies/999", nil))
}

func TestGenreMovies(t *testing.T) {
	var gs []models.Genre
	require.Equal(t, http.StatusOK, get(t, "/api/v1/genres", &gs))
	require.Equal(t, "Crime", gs[0].Name)

	var p models.MoviePage
	require.Equal(t, http.StatusOK, get(t, "/api/v1/genres/1/movies", &p))
	assert.Equal(t, models.Int(10), p.Metadata.TotalCount)
	for _, m := range p.Movies {
		assert.Contains(t, m.Genres, "Crime")
	}

	assert.Equal(t, http.StatusNotFound, get(t, "/api/v1/genres/999/movies", nil))
}
