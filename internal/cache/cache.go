package cache

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL is how long a cached page stays usable.
const DefaultTTL = 5 * time.Minute

// DefaultPath returns the default location of the on-disk cache file.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "metallum_cache.db")
}

// Store is a URL-keyed page cache.
//
// Get returns the cached body for an absolute URL, or ok=false when the URL
// has never been stored or its entry has outlived the TTL. Put records a
// fresh body under the URL, replacing any previous entry. Expire drops every
// entry past the TTL.
type Store interface {
	Get(url string) (body []byte, ok bool, err error)
	Put(url string, body []byte) error
	Expire() error
	Close() error
}

type entry struct {
	fetchedAt time.Time
	body      []byte
}

// Memory is an in-process Store backed by a map.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates an in-memory store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get implements Store.
func (m *Memory) Get(url string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[url]
	if !ok {
		return nil, false, nil
	}
	if m.now().Sub(e.fetchedAt) >= m.ttl {
		delete(m.entries, url)
		return nil, false, nil
	}
	return e.body, true, nil
}

// Put implements Store.
func (m *Memory) Put(url string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[url] = entry{fetchedAt: m.now(), body: body}
	return nil
}

// Expire implements Store.
func (m *Memory) Expire() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for url, e := range m.entries {
		if !e.fetchedAt.After(cutoff) {
			delete(m.entries, url)
		}
	}
	return nil
}

// Close implements Store. It discards all entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	return nil
}

// Len returns the number of live entries, expired ones included until the
// next Get or Expire touches them.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
