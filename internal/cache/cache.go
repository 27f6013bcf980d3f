package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized vectors and other
// derived artifacts. Implementations are owned explicitly by their
// consumers; there is no process-wide ambient cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key hashes the FULL input text into a cache key. Hashing the whole
// text (rather than a truncated prefix) guarantees two different
// purpose descriptions can never collide on the same entry.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "verdescore:v1:" + hex.EncodeToString(hash[:])
}
