package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/myagri/pkg/core"
)

// indexEntry is the parsed record of a single file, valid while the file's
// mtime is unchanged.
type indexEntry struct {
	Record       core.Record `json:"record"`
	LastModified time.Time   `json:"lastModified"`
}

// index represents the persistent cache state.
type index struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // keyed by filename, e.g. "42.md"
	dirty   bool
	mu      sync.RWMutex
}

// cache manages the loading, updating and saving of the index.
type cache struct {
	Path  string // {store}/{systemDir}/index.json
	index *index
}

const indexVersion = 1

func newCache(storePath, systemDir string) *cache {
	return &cache{
		Path: filepath.Join(storePath, systemDir, "index.json"),
		index: &index{
			Version: indexVersion,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the cache from disk. A missing, corrupt or outdated index
// starts empty.
func (c *cache) Load() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	var loaded struct {
		Version int                    `json:"version"`
		Entries map[string]*indexEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Version != indexVersion || loaded.Entries == nil {
		c.index.Entries = make(map[string]*indexEntry)
		c.index.dirty = true
		return nil
	}

	c.index.Entries = loaded.Entries
	c.index.dirty = false
	return nil
}

// Save persists the cache if it changed since the last Load or Save.
func (c *cache) Save() error {
	c.index.mu.RLock()
	if !c.index.dirty {
		c.index.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(c.index, "", "  ")
	c.index.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return err
	}
	if err := writeFileAtomic(c.Path, data, 0644); err != nil {
		return err
	}

	c.index.mu.Lock()
	c.index.dirty = false
	c.index.mu.Unlock()
	return nil
}

// Get returns the entry for name if it is still fresh.
func (c *cache) Get(name string, mtime time.Time) (*indexEntry, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	entry, ok := c.index.Entries[name]
	if !ok || !entry.LastModified.Equal(mtime) {
		return nil, false
	}
	return entry, true
}

// Has reports whether name is indexed, fresh or not.
func (c *cache) Has(name string) bool {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	_, ok := c.index.Entries[name]
	return ok
}

func (c *cache) Set(name string, entry *indexEntry) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	c.index.Entries[name] = entry
	c.index.dirty = true
}

// Prune removes entries not in keep and returns the IDs they held.
func (c *cache) Prune(keep map[string]bool) []string {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	var removed []string
	for name, entry := range c.index.Entries {
		if !keep[name] {
			removed = append(removed, entry.Record.ID)
			delete(c.index.Entries, name)
			c.index.dirty = true
		}
	}
	return removed
}

func (c *cache) Delete(name string) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	if _, ok := c.index.Entries[name]; ok {
		delete(c.index.Entries, name)
		c.index.dirty = true
	}
}

func (c *cache) Len() int {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()
	return len(c.index.Entries)
}
