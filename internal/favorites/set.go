// Package favorites persists the set of movies a user has favorited.
//
// The set is serialized as a JSON array of ids and written in full on
// every toggle. Reads fail soft: a missing or malformed slot is an empty
// set.
package favorites

import (
	"encoding/json"
	"strings"

	"moviehub/pkg/models"
)

// DefaultKey is the storage slot of the anonymous (single-user) scope.
const DefaultKey = "movieFavorites"

// Key returns the storage slot for a user; "" is the anonymous scope.
func Key(userID string) string {
	if userID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + userID
}

// Set is an insertion-ordered set of movie ids. The zero value is empty.
// Sets are values: Toggle returns a new Set and never mutates its input.
type Set struct {
	ids []models.MovieID
}

func NewSet(ids ...models.MovieID) Set {
	var s Set
	for _, id := range ids {
		id = normalize(id)
		if id == "" || s.Has(id) {
			continue
		}
		s.ids = append(s.ids, id)
	}
	return s
}

func normalize(id models.MovieID) models.MovieID {
	return models.MovieID(strings.TrimSpace(string(id)))
}

func (s Set) Has(id models.MovieID) bool {
	id = normalize(id)
	for _, x := range s.ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s Set) Len() int { return len(s.ids) }

// IDs returns a copy in insertion order.
func (s Set) IDs() []models.MovieID {
	out := make([]models.MovieID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Strings returns the ids as plain strings, never nil.
func (s Set) Strings() []string {
	out := make([]string, len(s.ids))
	for i, id := range s.ids {
		out[i] = string(id)
	}
	return out
}

func (s Set) toggled(id models.MovieID) Set {
	id = normalize(id)
	out := Set{ids: make([]models.MovieID, 0, len(s.ids)+1)}
	found := false
	for _, x := range s.ids {
		if x == id {
			found = true
			continue
		}
		out.ids = append(out.ids, x)
	}
	if !found {
		out.ids = append(out.ids, id)
	}
	return out
}

func (s Set) Equal(o Set) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for _, id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON accepts string and numeric ids; older lists stored numbers.
func (s *Set) UnmarshalJSON(b []byte) error {
	var ids []models.MovieID
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}
