package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://moviesapi.ir/api/v1", cfg.CatalogURL)
	assert.Equal(t, time.Duration(0), cfg.CatalogTimeout)
	assert.Equal(t, 25, cfg.MaxPage)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchQuiet)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "data.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "state.json", filepath.Base(cfg.StatePath))
	assert.Equal(t, 24*time.Hour, cfg.Auth().JWTDuration)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOVIEHUB_SEARCH_QUIET", "50ms")
	t.Setenv("MOVIEHUB_MAX_PAGE", "3")
	t.Setenv("MOVIEHUB_STORE_DRIVER", "FILE")
	t.Setenv("MOVIEHUB_STATE_PATH", "/tmp/x.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.SearchQuiet)
	assert.Equal(t, 3, cfg.MaxPage)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "/tmp/x.json", cfg.StatePath)
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	t.Setenv("MOVIEHUB_STORE_DRIVER", "postgres")
	t.Setenv("MOVIEHUB_POSTGRES_DSN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("MOVIEHUB_STORE_DRIVER", "redis")

	_, err := Load()
	assert.Error(t, err)
}
