package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/racewatch/racewatch/internal/config"
)

// fileFormat is the on-disk layout of a FileStore.
type fileFormat struct {
	Version int               `yaml:"version"`
	Items   map[string]string `yaml:"items"`
}

// FileStore is a Store persisted as a YAML file. The whole file is rewritten
// on every mutation.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	items map[string]string
}

// OpenFile opens (or creates) the store at path. It fails when the location
// is not usable, which callers treat as storage being unavailable.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store unavailable: %w", err)
	}

	s := &FileStore{path: path, items: make(map[string]string)}
	if config.FileExists(path) {
		var f fileFormat
		if err := config.LoadYAML(path, &f); err != nil {
			return nil, fmt.Errorf("store unavailable: %w", err)
		}
		if f.Items != nil {
			s.items = f.Items
		}
		return s, nil
	}

	if err := s.flush(); err != nil {
		return nil, fmt.Errorf("store unavailable: %w", err)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.items[key]
	s.items[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flush(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.items)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.items
	s.items = make(map[string]string)
	if err := s.flush(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// flush must be called with mu held.
func (s *FileStore) flush() error {
	return config.SaveYAML(s.path, fileFormat{Version: 1, Items: s.items})
}
