package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailFiltersByType(t *testing.T) {
	in := strings.Join([]string{
		`{"type":"welcome","message":"connected","clients":1}`,
		`{"type":"favorite.added","movie_id":"4","count":1}`,
		`{"type":"settings.theme","dark_mode":true}`,
		`not json`,
	}, "\n")

	var out bytes.Buffer
	err := tail(strings.NewReader(in), false, []string{"favorite.added"}, &out)
	assert.ErrorIs(t, err, io.EOF)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{`{"type":"favorite.added","movie_id":"4","count":1}`, "not json"}, lines)
}

func TestTailPrettyPrints(t *testing.T) {
	var out bytes.Buffer
	_ = tail(strings.NewReader(`{"type":"settings.theme","dark_mode":true}`), true, nil, &out)
	assert.Contains(t, out.String(), "\n  \"dark_mode\": true")
}
