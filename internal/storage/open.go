package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type Options struct {
	Driver      string // sqlite | postgres | file
	DB          *sql.DB
	PostgresDSN string
	StatePath   string
}

// Open picks the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case "", "sqlite":
		if opts.DB == nil {
			return nil, fmt.Errorf("sqlite store: no database")
		}
		return NewSQLite(opts.DB), nil
	case "postgres":
		return NewPostgres(ctx, opts.PostgresDSN)
	case "file":
		if opts.StatePath == "" {
			return nil, fmt.Errorf("file store: no state path")
		}
		return NewFile(opts.StatePath), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
