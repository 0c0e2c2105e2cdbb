package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"moviehub/internal/storage"
	"moviehub/pkg/models"
)

// Load reads the set stored under key. It never fails: a missing,
// unreadable or malformed slot yields an empty set.
func Load(ctx context.Context, kv storage.KV, key string) Set {
	s, _ := load(ctx, kv, key)
	return s
}

func load(ctx context.Context, kv storage.KV, key string) (Set, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return Set{}, fmt.Errorf("read favorites: %w", err)
	}
	if !ok {
		return Set{}, nil
	}
	var s Set
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Set{}, fmt.Errorf("decode favorites: %w", err)
	}
	return s, nil
}

// Toggle returns set with id removed if present, appended otherwise, and
// overwrites the slot with the full new set before returning. A failed
// write is not reported.
func Toggle(ctx context.Context, kv storage.KV, key string, set Set, id models.MovieID) Set {
	next, _ := toggle(ctx, kv, key, set, id)
	return next
}

func toggle(ctx context.Context, kv storage.KV, key string, set Set, id models.MovieID) (Set, error) {
	next := set.toggled(id)
	b, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("encode favorites: %w", err)
	}
	if err := kv.Set(ctx, key, string(b)); err != nil {
		return next, fmt.Errorf("write favorites: %w", err)
	}
	return next, nil
}

func IsFavorite(set Set, id models.MovieID) bool {
	return set.Has(id)
}
