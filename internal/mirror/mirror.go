// Package mirror serves a local copy of the movie catalog with the same
// routes and JSON shapes as the remote API. It backs cmd/catalog-mirror and
// the catalog client tests.
package mirror

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"moviehub/pkg/models"
)

// PerPage matches the remote API's page size.
const PerPage = 10

//go:embed dataset.json
var builtin []byte

type Dataset struct {
	Genres []models.Genre `json:"genres"`
	Movies []models.Movie `json:"movies"`
}

// Builtin returns the embedded sample catalog.
func Builtin() Dataset {
	ds, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %v", err))
	}
	return ds
}

func Parse(b []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads a dataset from disk; an empty path yields Builtin.
func LoadFile(path string) (Dataset, error) {
	if path == "" {
		return Builtin(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(b)
}

func (ds Dataset) movie(id string) (models.Movie, bool) {
	for _, m := range ds.Movies {
		if m.ID.String() == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

func (ds Dataset) genre(id string) (models.Genre, bool) {
	for _, g := range ds.Genres {
		if g.ID.String() == id {
			return g, true
		}
	}
	return models.Genre{}, false
}

func (ds Dataset) filter(keep func(models.Movie) bool) []models.Movie {
	out := make([]models.Movie, 0, len(ds.Movies))
	for _, m := range ds.Movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func titleContains(q string) func(models.Movie) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(m models.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), q)
	}
}

func hasGenre(name string) func(models.Movie) bool {
	return func(m models.Movie) bool {
		for _, g := range m.Genres {
			if strings.EqualFold(g, name) {
				return true
			}
		}
		return false
	}
}

// summary drops the detail-only fields, as the remote list endpoints do.
func summary(m models.Movie) models.Movie {
	return models.Movie{
		ID:         m.ID,
		Title:      m.Title,
		Poster:     m.Poster,
		Year:       m.Year,
		Country:    m.Country,
		IMDBRating: m.IMDBRating,
		Genres:     m.Genres,
		Images:     m.Images,
	}
}

// paginate slices movies into a 1-based page. Pages past the end are empty.
func paginate(movies []models.Movie, page int) models.MoviePage {
	if page < 1 {
		page = 1
	}
	total := len(movies)
	count := (total + PerPage - 1) / PerPage

	data := []models.Movie{}
	if from := (page - 1) * PerPage; from < total {
		to := min(from+PerPage, total)
		for _, m := range movies[from:to] {
			data = append(data, summary(m))
		}
	}

	return models.MoviePage{
		Movies: data,
		Metadata: models.PageMeta{
			CurrentPage: models.Int(page),
			PerPage:     PerPage,
			PageCount:   models.Int(count),
			TotalCount:  models.Int(total),
		},
	}
}
