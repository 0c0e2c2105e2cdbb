package favorites

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"moviehub/internal/storage"
	"moviehub/pkg/models"
)

// Store owns one scope's set: loaded once at construction, then changed
// only through Toggle. Toggles on one Store are serialized.
type Store struct {
	kv  storage.KV
	key string
	log zerolog.Logger

	mu  sync.Mutex
	set Set
}

func NewStore(ctx context.Context, kv storage.KV, key string, log zerolog.Logger) *Store {
	s := &Store{kv: kv, key: key, log: log}
	set, err := load(ctx, kv, key)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("favorites reset to empty")
	}
	s.set = set
	return s
}

func (s *Store) Key() string { return s.key }

func (s *Store) Snapshot() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

func (s *Store) Contains(id models.MovieID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Has(id)
}

// Toggle flips id and reports whether it is now a favorite.
func (s *Store) Toggle(ctx context.Context, id models.MovieID) (Set, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := toggle(ctx, s.kv, s.key, s.set, id)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("favorites not persisted")
	}
	s.set = next
	return next, next.Has(id)
}

// Registry hands out one Store per storage key, created on first use.
type Registry struct {
	kv  storage.KV
	log zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(kv storage.KV, log zerolog.Logger) *Registry {
	return &Registry{
		kv:     kv,
		log:    log.With().Str("component", "favorites").Logger(),
		stores: make(map[string]*Store),
	}
}

// For returns the store of userID ("" for anonymous).
func (r *Registry) For(ctx context.Context, userID string) *Store {
	key := Key(userID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[key]; ok {
		return s
	}
	s := NewStore(ctx, r.kv, key, r.log)
	r.stores[key] = s
	return s
}
