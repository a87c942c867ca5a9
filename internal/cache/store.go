package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExtension = ".json"

type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors.
const (
	ErrNotFound   = constError("cache entry not found")
	ErrExpired    = constError("cache entry expired")
	ErrInvalidKey = constError("cache key cannot be empty")
	ErrDisabled   = constError("cache is disabled")
)

// FileStore stores entries as JSON files in one directory. It is safe for
// concurrent use.
type FileStore struct {
	directory string
	enabled   bool
	ttl       time.Duration
	now       func() time.Time

	mu sync.RWMutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// NewFileStore returns a store writing to directory, which is created if
// needed. A disabled store accepts every call and returns ErrDisabled.
func NewFileStore(directory string, enabled bool, ttl time.Duration, opts ...Option) (*FileStore, error) {
	s := &FileStore{enabled: enabled, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if !enabled {
		return s, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	s.directory = directory
	return s, nil
}

// Get returns the entry stored under key. Expired entries are removed and
// reported as ErrExpired.
func (s *FileStore) Get(key string) (*Entry, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	entry, err := readEntry(path)
	if err != nil {
		return nil, err
	}
	if entry.ExpiredAt(s.now()) {
		_ = os.Remove(path)
		return nil, ErrExpired
	}
	return entry, nil
}

// Set stores data under key, replacing any previous entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if err := s.check(key); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(newEntry(key, data, s.now(), s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry under key. Deleting a missing key is not an
// error.
func (s *FileStore) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	return s.sweep(func(string) bool { return true })
}

// CleanupExpired removes expired and unreadable entries.
func (s *FileStore) CleanupExpired() error {
	now := s.now()
	return s.sweep(func(path string) bool {
		entry, err := readEntry(path)
		return err != nil || entry.ExpiredAt(now)
	})
}

// Count returns the number of entries, expired ones included.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files()
	return len(files), err
}

// Enabled reports whether the store caches anything.
func (s *FileStore) Enabled() bool { return s.enabled }

// Directory returns the cache directory.
func (s *FileStore) Directory() string { return s.directory }

// TTL returns the lifetime of new entries.
func (s *FileStore) TTL() time.Duration { return s.ttl }

func (s *FileStore) check(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func (s *FileStore) sweep(remove func(path string) bool) error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files()
	if err != nil {
		return err
	}
	for _, path := range files {
		if !remove(path) {
			continue
		}
		if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func (s *FileStore) files() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == fileExtension {
			files = append(files, filepath.Join(s.directory, e.Name()))
		}
	}
	return files, nil
}

// path maps key to a file name safe on every platform.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safe+fileExtension)
}

func readEntry(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	var entry Entry
	if err = json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}
