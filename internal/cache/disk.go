package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk persists entries across CLI invocations, which keeps repeated
// checks of the same document from re-hitting external services.
type Disk struct {
	dir        string
	defaultTTL time.Duration
}

// NewDisk creates a disk store rooted at dir
func NewDisk(dir string, defaultTTL time.Duration) *Disk {
	return &Disk{dir: dir, defaultTTL: defaultTTL}
}

type diskEntry struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d *Disk) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(d.path(key))
		return nil, false
	}
	return entry.Value, true
}

func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = d.defaultTTL
	}

	raw, err := json.Marshal(diskEntry{Value: value, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(d.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (d *Disk) Delete(key string) error {
	return os.Remove(d.path(key))
}

func (d *Disk) Clear() error {
	return os.RemoveAll(d.dir)
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}
