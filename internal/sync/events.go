package sync

import "time"

const (
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
	EventTheme           = "settings.theme"
)

type FavoriteEvent struct {
	Type    string    `json:"type"` // favorite.added or favorite.removed
	UserID  string    `json:"user_id,omitempty"`
	MovieID string    `json:"movie_id"`
	Count   int       `json:"count"`
	At      time.Time `json:"at"`
}

type ThemeEvent struct {
	Type     string    `json:"type"`
	UserID   string    `json:"user_id,omitempty"`
	DarkMode bool      `json:"dark_mode"`
	At       time.Time `json:"at"`
}
