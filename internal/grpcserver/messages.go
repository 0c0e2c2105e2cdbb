package grpcserver

import "moviehub/pkg/models"

type ListMoviesRequest struct {
	Page   int32  `json:"page"`
	UserID string `json:"user_id,omitempty"`
}

type ListMoviesResponse struct {
	Page    int32         `json:"page"`
	MaxPage int32         `json:"max_page"`
	HasPrev bool          `json:"has_prev"`
	HasNext bool          `json:"has_next"`
	Items   []models.Card `json:"items"`
}

type GetMovieRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
}

type GetMovieResponse struct {
	Movie models.Card `json:"movie"`
}

type SearchMoviesRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

type SearchMoviesResponse struct {
	Items []models.Card `json:"items"`
}

type ListGenresRequest struct{}

type ListGenresResponse struct {
	Genres []models.Genre `json:"genres"`
}

// UserID "" addresses the anonymous favorites scope.
type ListFavoritesRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type ListFavoritesResponse struct {
	IDs   []string `json:"ids"`
	Count int32    `json:"count"`
}

type FavoriteRequest struct {
	UserID  string `json:"user_id,omitempty"`
	MovieID string `json:"movie_id"`
}

type FavoriteResponse struct {
	MovieID  string   `json:"movie_id"`
	Favorite bool     `json:"favorite"`
	IDs      []string `json:"ids,omitempty"`
	Count    int32    `json:"count,omitempty"`
}
