package content

import "sync"

// MapStore serves content from an in-memory path→bytes map. It backs the
// bundled default site and test fixtures.
type MapStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMapStore creates a MapStore holding the given files. The map is copied;
// later mutation of the argument does not affect the store.
func NewMapStore(files map[string]string) *MapStore {
	m := &MapStore{files: make(map[string][]byte, len(files))}
	for path, body := range files {
		m.files[path] = []byte(body)
	}
	return m
}

// Fetch returns the bytes for path, or ErrNotFound.
func (m *MapStore) Fetch(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Set adds or replaces the content at path. Used by the authoring layer when
// regenerating project files.
func (m *MapStore) Set(path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(body)
}

// Replace swaps in the other store's entire file set. Used on refresh so a
// store already wired into a session adopts freshly rebuilt content.
func (m *MapStore) Replace(other *MapStore) {
	other.mu.RLock()
	files := make(map[string][]byte, len(other.files))
	for path, data := range other.files {
		files[path] = data
	}
	other.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = files
}

// Delete removes the content at path, if present.
func (m *MapStore) Delete(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}
