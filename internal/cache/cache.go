package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Store is the lookup-memoization interface used by the collaborator
// clients. Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from the given parts (instrument type,
// number, year, endpoint, ...).
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "veridraft:v1:" + hex.EncodeToString(h[:])
}
