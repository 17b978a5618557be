package cache

import "time"

// Layered reads through memory to disk, promoting disk hits into memory.
// Writes go to both layers.
type Layered struct {
	memory Store
	disk   Store
}

// NewLayered creates a memory+disk store. With an empty dir the disk layer
// is omitted and the store is memory only.
func NewLayered(memoryTTL time.Duration, dir string, diskTTL time.Duration) *Layered {
	l := &Layered{memory: NewMemory(memoryTTL, 10*time.Minute)}
	if dir != "" {
		l.disk = NewDisk(dir, diskTTL)
	}
	return l
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if v, ok := l.memory.Get(key); ok {
		return v, true
	}
	if l.disk != nil {
		if v, ok := l.disk.Get(key); ok {
			_ = l.memory.Set(key, v, 0)
			return v, true
		}
	}
	return nil, false
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	if l.disk != nil {
		return l.disk.Set(key, value, ttl)
	}
	return nil
}

func (l *Layered) Delete(key string) error {
	if err := l.memory.Delete(key); err != nil {
		return err
	}
	if l.disk != nil {
		return l.disk.Delete(key)
	}
	return nil
}

func (l *Layered) Clear() error {
	if err := l.memory.Clear(); err != nil {
		return err
	}
	if l.disk != nil {
		return l.disk.Clear()
	}
	return nil
}
