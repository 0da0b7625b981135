// Package env provides small helpers for reading process environment
// variables before the typed config layer is available.
package env

import "os"

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
