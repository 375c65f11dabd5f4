// Package assets resolves and caches resource files such as textures.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Manager loads files from an ordered list of roots.
type Manager struct {
	roots []fs.FS
	names []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager with no roots.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory root.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds an arbitrary file system root under a display name.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, fsys)
	m.names = append(m.names, name)
	m.mu.Unlock()
}

// Roots returns the root names in search order.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.names))
	for i := len(m.names) - 1; i >= 0; i-- {
		out = append(out, m.names[i])
	}
	return out
}

// Load reads a slash-separated path from the first root that has it.
// A missing file yields an error matching fs.ErrNotExist.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, m.names[i], err)
		}
	}

	return nil, fmt.Errorf("asset %s: %w", name, fs.ErrNotExist)
}

// Stats returns cache hits and misses since the last Close.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.names = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
