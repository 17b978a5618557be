package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process store with per-entry TTL
type Memory struct {
	inner *gocache.Cache
}

// NewMemory creates a memory store. Entries older than defaultTTL are
// evicted on the cleanup interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{inner: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	if v, ok := m.inner.Get(key); ok {
		return v.([]byte), true
	}
	return nil, false
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.inner.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.inner.Delete(key)
	return nil
}

func (m *Memory) Clear() error {
	m.inner.Flush()
	return nil
}
