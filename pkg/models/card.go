package models

// Card is the list/detail view of a movie handed to clients: the poster is
// already resolved to the placeholder when missing, and the caller's
// favorite membership is attached.
type Card struct {
	ID         MovieID  `json:"id"`
	Title      string   `json:"title"`
	Year       Text     `json:"year,omitempty"`
	Poster     string   `json:"poster"`
	IMDBRating Text     `json:"imdb_rating,omitempty"`
	Rated      string   `json:"rated,omitempty"`
	Genres     []string `json:"genres"`
	Country    string   `json:"country,omitempty"`
	Favorite   bool     `json:"favorite"`

	Detail *Detail `json:"detail,omitempty"`
}

// Detail carries the fields only the single-movie endpoint fills in.
type Detail struct {
	Plot      string   `json:"plot,omitempty"`
	Runtime   Text     `json:"runtime,omitempty"`
	Released  Text     `json:"released,omitempty"`
	Metascore Text     `json:"metascore,omitempty"`
	Director  string   `json:"director,omitempty"`
	Writer    string   `json:"writer,omitempty"`
	Actors    string   `json:"actors,omitempty"`
	Awards    string   `json:"awards,omitempty"`
	Images    []string `json:"images"`
}

func NewCard(m Movie, favorite bool) Card {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return Card{
		ID:         m.ID,
		Title:      m.Title,
		Year:       m.Year,
		Poster:     m.PosterURL(),
		IMDBRating: m.IMDBRating,
		Rated:      m.Rated,
		Genres:     genres,
		Country:    m.Country,
		Favorite:   favorite,
	}
}

func NewDetailCard(m Movie, favorite bool) Card {
	c := NewCard(m, favorite)
	images := m.Images
	if images == nil {
		images = []string{}
	}
	c.Detail = &Detail{
		Plot:      m.Plot,
		Runtime:   m.Runtime,
		Released:  m.Released,
		Metascore: m.Metascore,
		Director:  m.Director,
		Writer:    m.Writer,
		Actors:    m.Actors,
		Awards:    m.Awards,
		Images:    images,
	}
	return c
}
