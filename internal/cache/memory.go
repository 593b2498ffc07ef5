package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry   Entry
	expTime time.Time
}

// Memory is a process-local Store: a key-entry map guarded by a RWMutex
// with a background janitor sweeping expired items.
type Memory struct {
	mu       sync.RWMutex
	items    map[string]memoryItem
	stopOnce sync.Once
	stop     chan struct{}
}

// NewMemory creates an in-memory store. cleanupInterval <= 0 disables the
// janitor; expired items are then dropped lazily on read.
func NewMemory(cleanupInterval time.Duration) *Memory {
	m := &Memory{
		items: make(map[string]memoryItem),
		stop:  make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go m.janitor(cleanupInterval)
	}

	return m
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}
	if time.Now().After(item.expTime) {
		m.Delete(context.Background(), key)
		return Entry{}, false
	}

	return item.entry, true
}

func (m *Memory) Set(_ context.Context, key string, entry Entry, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryItem{
		entry:   entry,
		expTime: time.Now().Add(ttl),
	}
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// Close stops the janitor. Safe to call more than once.
func (m *Memory) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *Memory) sweep() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, item := range m.items {
		if now.After(item.expTime) {
			delete(m.items, key)
		}
	}
}

var _ Store = (*Memory)(nil)
