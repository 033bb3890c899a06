package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extraction results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a document's raw text. Identical text
// always maps to the same key, so reprocessing the same document hits the
// cache regardless of filename.
func Key(rawText string) string {
	hash := sha256.Sum256([]byte(rawText))
	return "claimflow:v1:" + hex.EncodeToString(hash[:])
}
