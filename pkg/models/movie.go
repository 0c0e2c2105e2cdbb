package models

import "strings"

// PlaceholderPoster is shown for movies the catalog returns without a poster.
const PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"

// Movie is a catalog record as returned by the remote API.
// Detail-only fields are empty on list and search results.
type Movie struct {
	ID         MovieID  `json:"id"`
	Title      string   `json:"title"`
	Poster     string   `json:"poster,omitempty"`
	Year       Text     `json:"year,omitempty"`
	Country    string   `json:"country,omitempty"`
	IMDBRating Text     `json:"imdb_rating,omitempty"`
	Rated      string   `json:"rated,omitempty"`
	Genres     []string `json:"genres"`
	Images     []string `json:"images,omitempty"`

	Plot      string `json:"plot,omitempty"`
	Runtime   Text   `json:"runtime,omitempty"`
	Released  Text   `json:"released,omitempty"`
	Metascore Text   `json:"metascore,omitempty"`
	Director  string `json:"director,omitempty"`
	Writer    string `json:"writer,omitempty"`
	Actors    string `json:"actors,omitempty"`
	Awards    string `json:"awards,omitempty"`
}

// PosterURL returns the poster, or PlaceholderPoster when it is missing.
func (m Movie) PosterURL() string {
	if strings.TrimSpace(m.Poster) == "" {
		return PlaceholderPoster
	}
	return m.Poster
}

type Genre struct {
	ID   Text   `json:"id"`
	Name string `json:"name"`
}

// PageMeta mirrors the catalog's "metadata" object. The remote API is not
// consistent about numbers vs numeric strings here.
type PageMeta struct {
	CurrentPage Int `json:"current_page"`
	PerPage     Int `json:"per_page"`
	PageCount   Int `json:"page_count"`
	TotalCount  Int `json:"total_count"`
}

type MoviePage struct {
	Movies   []Movie  `json:"data"`
	Metadata PageMeta `json:"metadata"`
}
