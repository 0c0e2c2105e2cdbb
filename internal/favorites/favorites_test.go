package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/storage"
	"moviehub/pkg/models"
)

// brokenKV fails reads or writes on demand.
type brokenKV struct {
	*storage.Memory
	failGet, failSet bool
	sets             int
}

func (b *brokenKV) Get(ctx context.Context, key string) (string, bool, error) {
	if b.failGet {
		return "", false, errors.New("disk on fire")
	}
	return b.Memory.Get(ctx, key)
}

func (b *brokenKV) Set(ctx context.Context, key, value string) error {
	b.sets++
	if b.failSet {
		return errors.New("quota exceeded")
	}
	return b.Memory.Set(ctx, key, value)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "movieFavorites", Key(""))
	assert.Equal(t, "movieFavorites:u1", Key("u1"))
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := Load(context.Background(), storage.NewMemory(), DefaultKey)
	assert.Equal(t, 0, s.Len())
}

func TestLoadMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"not json", `{"a":1}`, `[{"id":1}]`, ""} {
		kv := storage.NewMemory()
		require.NoError(t, kv.Set(ctx, DefaultKey, raw))
		assert.Equal(t, 0, Load(ctx, kv, DefaultKey).Len(), raw)
	}
}

func TestLoadUnreadableIsEmpty(t *testing.T) {
	kv := &brokenKV{Memory: storage.NewMemory(), failGet: true}
	assert.Equal(t, 0, Load(context.Background(), kv, DefaultKey).Len())
}

func TestLoadAcceptsNumericIDs(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, DefaultKey, `[12, "7", 12]`))

	s := Load(ctx, kv, DefaultKey)
	assert.Equal(t, []models.MovieID{"12", "7"}, s.IDs())
}

func TestToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	s := Toggle(ctx, kv, DefaultKey, Set{}, "12")
	assert.True(t, IsFavorite(s, "12"))
	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["12"]`, raw)

	s = Toggle(ctx, kv, DefaultKey, s, "12")
	assert.False(t, IsFavorite(s, "12"))
	raw, _, _ = kv.Get(ctx, DefaultKey)
	assert.JSONEq(t, `[]`, raw)
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	start := NewSet("1", "2", "3")

	for _, id := range []models.MovieID{"2", "9"} {
		got := Toggle(ctx, kv, DefaultKey, Toggle(ctx, kv, DefaultKey, start, id), id)
		assert.True(t, got.Equal(start), "toggle %s twice", id)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	start := NewSet("1", "2")
	_ = Toggle(context.Background(), storage.NewMemory(), DefaultKey, start, "1")
	assert.Equal(t, []models.MovieID{"1", "2"}, start.IDs())
}

func TestPersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	s := Set{}
	for _, id := range []models.MovieID{"5", "3", "8", "3"} {
		s = Toggle(ctx, kv, DefaultKey, s, id)
	}
	assert.Equal(t, []models.MovieID{"5", "8"}, s.IDs())
	assert.True(t, Load(ctx, kv, DefaultKey).Equal(s))
}

func TestToggleWriteFailureNotSurfaced(t *testing.T) {
	kv := &brokenKV{Memory: storage.NewMemory(), failSet: true}

	s := Toggle(context.Background(), kv, DefaultKey, Set{}, "4")
	assert.True(t, IsFavorite(s, "4"))
	assert.Equal(t, 1, kv.sets)
}

func TestSetMarshalsEmptyAsArray(t *testing.T) {
	b, err := json.Marshal(Set{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestNewSetDropsBlankAndDuplicates(t *testing.T) {
	s := NewSet("1", " 1 ", "", "2")
	assert.Equal(t, []models.MovieID{"1", "2"}, s.IDs())
	assert.True(t, s.Has(" 2"))
}

func TestStoreLoadsOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, DefaultKey, `["1"]`))

	st := NewStore(ctx, kv, DefaultKey, zerolog.Nop())
	assert.True(t, st.Contains("1"))

	set, fav := st.Toggle(ctx, "2")
	assert.True(t, fav)
	assert.Equal(t, 2, set.Len())

	_, fav = st.Toggle(ctx, "1")
	assert.False(t, fav)

	assert.Equal(t, []models.MovieID{"2"}, Load(ctx, kv, DefaultKey).IDs())
	assert.Equal(t, []models.MovieID{"2"}, st.Snapshot().IDs())
}

func TestStoreKeepsStateWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	kv := &brokenKV{Memory: storage.NewMemory(), failSet: true}
	st := NewStore(ctx, kv, DefaultKey, zerolog.Nop())

	_, fav := st.Toggle(ctx, "9")
	assert.True(t, fav)
	assert.True(t, st.Contains("9"))
}

func TestRegistryScopesByUser(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	reg := NewRegistry(kv, zerolog.Nop())

	reg.For(ctx, "alice").Toggle(ctx, "1")
	reg.For(ctx, "").Toggle(ctx, "2")

	assert.Same(t, reg.For(ctx, "alice"), reg.For(ctx, "alice"))
	assert.Equal(t, []models.MovieID{"1"}, reg.For(ctx, "alice").Snapshot().IDs())
	assert.Equal(t, []models.MovieID{"2"}, reg.For(ctx, "").Snapshot().IDs())
	assert.Equal(t, 0, reg.For(ctx, "bob").Snapshot().Len())

	raw, ok, _ := kv.Get(ctx, "movieFavorites:alice")
	require.True(t, ok)
	assert.JSONEq(t, `["1"]`, raw)
}
