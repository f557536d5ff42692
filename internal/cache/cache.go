// Package cache provides the content-addressed request cache used by
// the pipeline orchestrator. Keys are derived from normalized request
// parameters per stage; nothing is memoized implicitly.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a content-addressed cache key for one pipeline stage from
// its normalized request parameters.
func Key(stage string, params ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(params, "\x00")))
	return "askweb:v1:" + stage + ":" + hex.EncodeToString(hash[:])
}
