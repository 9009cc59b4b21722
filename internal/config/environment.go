package config

import (
	"os"
	"strconv"
	"time"
)

// EnvOr returns the first non-empty variable among names, or def.
// Command line tools use it instead of Load so they run without the server's
// required secrets.
func EnvOr(def string, names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return def
}

// EnvDuration reads name as a Go duration ("90s", "5m") or a whole number of
// seconds. Missing or malformed values give def.
func EnvDuration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
