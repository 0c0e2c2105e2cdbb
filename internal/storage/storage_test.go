package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/pkg/database"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "movieFavorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "movieFavorites", `["1","2"]`))
	v, ok, err := kv.Get(ctx, "movieFavorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["1","2"]`, v)

	// full overwrite
	require.NoError(t, kv.Set(ctx, "movieFavorites", `[]`))
	v, _, err = kv.Get(ctx, "movieFavorites")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, kv.Set(ctx, "darkMode", "true"))
	require.NoError(t, kv.Delete(ctx, "movieFavorites"))
	_, ok, err = kv.Get(ctx, "movieFavorites")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = kv.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	// deleting a missing key is not an error
	assert.NoError(t, kv.Delete(ctx, "nope"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")
	kv := NewFile(path)
	exerciseKV(t, kv)

	// survives a "restart"
	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	v, ok, err := NewFile(path).Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	kv := NewFile(path)

	_, _, err := kv.Get(context.Background(), "k")
	assert.Error(t, err)

	// a write replaces the corrupt file
	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	v, ok, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteKV(t *testing.T) {
	db, err := database.OpenMigrated(database.Config{Path: filepath.Join(t.TempDir(), "data.db")})
	require.NoError(t, err)
	defer db.Close()

	exerciseKV(t, NewSQLite(db))
}

func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("MOVIEHUB_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MOVIEHUB_TEST_POSTGRES_DSN not set")
	}
	kv, err := NewPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()
	_ = kv.Delete(ctx, "movieFavorites")
	_ = kv.Delete(ctx, "darkMode")
	exerciseKV(t, kv)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, Options{Driver: "file", StatePath: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.Equal(t, "file", kv.Backend())

	_, err = Open(ctx, Options{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Driver: "etcd"})
	assert.Error(t, err)
}
