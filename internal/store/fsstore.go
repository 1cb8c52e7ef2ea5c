package store

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"sync"

	"github.com/hack-pad/hackpadfs"
)

// DefaultDir is where FSStore keeps its records when no directory is given.
const DefaultDir = "goportal"

// FSStore persists one file per key on a hackpadfs filesystem.
// In the browser the filesystem is backed by IndexedDB
// (hackpadfs/indexeddb); tests use hackpadfs/mem.
type FSStore struct {
	mu  sync.RWMutex
	fs  hackpadfs.FS
	dir string
}

// NewFSStore creates a store rooted at dir on fsys, creating dir if needed.
// An empty dir falls back to DefaultDir.
func NewFSStore(fsys hackpadfs.FS, dir string) (*FSStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := hackpadfs.MkdirAll(fsys, dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	return &FSStore{fs: fsys, dir: dir}, nil
}

// keyPath encodes a key into a safe file name under the store dir.
// Entity ids are opaque strings, so the key is escaped rather than trusted.
func (s *FSStore) keyPath(key string) string {
	return path.Join(s.dir, url.PathEscape(key))
}

func (s *FSStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, err := hackpadfs.ReadFile(s.fs, s.keyPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(content), true, nil
}

func (s *FSStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.WriteFullFile(s.fs, s.keyPath(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.Remove(s.fs, s.keyPath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the underlying filesystem outlives the store.
func (s *FSStore) Close() error {
	return nil
}

// Compile-time interface check
var _ Storer = (*FSStore)(nil)
