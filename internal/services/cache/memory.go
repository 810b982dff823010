package cache

import (
	"context"
	"sync"
	"time"
)

const defaultTTL = 30 * time.Minute

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process cache with TTL expiry and a byte-size cap.
// Eviction is expiry-first, then arbitrary entries until the new value fits.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]entry
	maxBytes int64
	used     int64
	stats    Stats
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewMemory creates a memory cache capped at maxSizeMB megabytes.
// A maxSizeMB of zero or less means unbounded.
func NewMemory(maxSizeMB int64) *Memory {
	m := &Memory{
		entries:  make(map[string]entry),
		maxBytes: maxSizeMB * 1024 * 1024,
		stopCh:   make(chan struct{}),
	}

	m.wg.Add(1)
	go m.expireLoop()

	return m
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expires) {
		if ok {
			m.remove(key)
		}
		m.stats.Misses++
		return nil, false
	}

	m.stats.Hits++
	return e.value, true
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	size := int64(len(key) + len(value))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(key)
	m.makeRoom(size)

	m.entries[key] = entry{value: value, expires: time.Now().Add(ttl)}
	m.used += size
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(key)
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	m.used = 0
	return nil
}

// Stats returns a snapshot of the usage counters
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Size = m.used
	s.MaxSize = m.maxBytes
	return s
}

// Stop terminates the background expiry loop
func (m *Memory) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

// remove deletes a key and adjusts the size accounting. Caller holds mu.
func (m *Memory) remove(key string) {
	if e, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.used -= int64(len(key) + len(e.value))
	}
}

// makeRoom evicts until size more bytes fit under the cap. Caller holds mu.
func (m *Memory) makeRoom(size int64) {
	if m.maxBytes <= 0 {
		return
	}

	now := time.Now()
	for key, e := range m.entries {
		if m.used+size <= m.maxBytes {
			return
		}
		if now.After(e.expires) {
			m.remove(key)
			m.stats.Evictions++
		}
	}

	for key := range m.entries {
		if m.used+size <= m.maxBytes {
			return
		}
		m.remove(key)
		m.stats.Evictions++
	}
}

func (m *Memory) expireLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, e := range m.entries {
				if now.After(e.expires) {
					m.remove(key)
					m.stats.Evictions++
				}
			}
			m.mu.Unlock()
		}
	}
}
