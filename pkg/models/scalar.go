package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MovieID is an opaque catalog identifier. The API sends numbers; other
// sources (and older favorite lists) may send strings. Both decode to the
// same string form.
type MovieID string

func (id *MovieID) UnmarshalJSON(b []byte) error {
	s, err := decodeScalar(b)
	if err != nil {
		return fmt.Errorf("movie id: %w", err)
	}
	*id = MovieID(s)
	return nil
}

func (id MovieID) String() string { return string(id) }

// Text holds a field that the catalog sends either as a string or a number
// (year, imdb_rating, metascore...).
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s, err := decodeScalar(b)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

func (t Text) String() string { return string(t) }

// Int is an integer that may arrive as a numeric string. Unparseable
// values decode as 0.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	s, err := decodeScalar(b)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Int(v)
	return nil
}

func decodeScalar(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("unexpected %s value", string(b[:1]))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}
