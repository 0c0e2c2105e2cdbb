// Package storage provides the durable single-slot key/value surface that
// favorites and preferences are persisted to.
package storage

import "context"

// KV is a string-keyed store of string values. Set overwrites the whole
// slot; there are no partial writes.
type KV interface {
	// Get returns ok=false for a missing key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error

	// Backend names the implementation ("sqlite", "postgres", "file", "memory").
	Backend() string
}
