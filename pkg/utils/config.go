package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from MOVIEHUB_* environment variables.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	SyncAddr string `envconfig:"SYNC_ADDR" default:":7070"`
	GRPCAddr string `envconfig:"GRPC_ADDR" default:":9090"`

	CatalogURL string `envconfig:"CATALOG_URL" default:"https://moviesapi.ir/api/v1"`
	// zero means no timeout on outbound catalog calls
	CatalogTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"0s"`
	MaxPage        int           `envconfig:"MAX_PAGE" default:"25"`
	SearchQuiet    time.Duration `envconfig:"SEARCH_QUIET" default:"300ms"`

	// sqlite | postgres | file
	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	DBPath      string `envconfig:"DB_PATH"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	StatePath   string `envconfig:"STATE_PATH"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"moviehub"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("MOVIEHUB", &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case "sqlite", "file":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("MOVIEHUB_POSTGRES_DSN required for postgres store")
		}
	default:
		return fmt.Errorf("unsupported MOVIEHUB_STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.DBPath == "" {
		c.DBPath = filepath.Join(DataDir(), "data.db")
	}
	if c.StatePath == "" {
		c.StatePath = filepath.Join(DataDir(), "state.json")
	}
	if c.MaxPage < 1 {
		c.MaxPage = 1
	}
	if c.SearchQuiet <= 0 {
		c.SearchQuiet = 300 * time.Millisecond
	}
	if c.JWTTTL <= 0 {
		c.JWTTTL = 24 * time.Hour
	}
	return nil
}

func (c Config) Auth() AuthConfig {
	return AuthConfig{
		JWTSecret:   c.JWTSecret,
		JWTIssuer:   c.JWTIssuer,
		JWTDuration: c.JWTTTL,
	}
}

// DataDir is ~/.moviehub, or ./.moviehub when there is no home directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".moviehub")
}
