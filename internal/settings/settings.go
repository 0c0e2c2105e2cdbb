// Package settings holds the per-user display preferences. Only the
// dark-mode flag exists today.
package settings

import (
	"context"
	"strconv"
	"strings"

	"moviehub/internal/storage"
)

const DefaultDarkModeKey = "darkMode"

func DarkModeKey(userID string) string {
	if userID == "" {
		return DefaultDarkModeKey
	}
	return DefaultDarkModeKey + ":" + userID
}

// DarkMode reports the stored flag. Missing, unreadable or unparseable
// values are false.
func DarkMode(ctx context.Context, kv storage.KV, key string) bool {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return v
}

// SetDarkMode stores the flag as "true" or "false".
func SetDarkMode(ctx context.Context, kv storage.KV, key string, on bool) error {
	return kv.Set(ctx, key, strconv.FormatBool(on))
}
