package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Entry records a fetched wordlist in the manifest
type Entry struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	SHA256    string    `json:"sha256"`
	Size      int64     `json:"size"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Manifest tracks fetched wordlists, persisted as JSON in the cache dir
type Manifest struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
}

// newManifest opens the manifest at path, creating parent directories
func newManifest(path string) (*Manifest, error) {
	m := &Manifest{
		path:    path,
		entries: make(map[string]*Entry),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := m.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return m, nil
}

// Get retrieves an entry by source name
func (m *Manifest) Get(name string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.entries[name]
	return entry, found
}

// Set stores an entry and persists the manifest
func (m *Manifest) Set(entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entry.Name] = entry
	return m.persist()
}

// Delete removes an entry and persists the manifest
func (m *Manifest) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, name)
	return m.persist()
}

// Clear removes all entries
func (m *Manifest) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*Entry)
	return m.persist()
}

// Entries returns all entries sorted by source name
func (m *Manifest) Entries() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// load reads the manifest from disk
func (m *Manifest) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	m.entries = entries
	return nil
}

// persist writes the manifest to disk
func (m *Manifest) persist() error {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0600)
}
