package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
)

const defaultCacheSize = 256

// FileStore persists state as a flat JSON object. Every Set rewrites the
// file through a temp file and rename, so a write is durable once it
// returns. Reads are served from an LRU cache and fall back to the file.
type FileStore struct {
	path  string
	mu    sync.Mutex
	cache *lru.Cache[string, string]
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path is required")
	}
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{path: path, cache: cache}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetBody(route models.Route) string {
	return s.get(BodyKey(route))
}

func (s *FileStore) SetBody(route models.Route, text string) error {
	return s.set(BodyKey(route), text)
}

func (s *FileStore) GetToken() string {
	return s.get(TokenKey)
}

func (s *FileStore) SetToken(text string) error {
	return s.set(TokenKey, text)
}

// Keys lists every stored key in order.
func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) get(key string) string {
	if v, ok := s.cache.Get(key); ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		logger.Warn("Failed to read state file %s: %v", s.path, err)
		return ""
	}
	v, ok := values[key]
	if ok {
		s.cache.Add(key, v)
	}
	return v
}

func (s *FileStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	if err := s.persist(values); err != nil {
		return err
	}
	s.cache.Add(key, value)
	logger.Debug("Stored %s in %s", key, s.path)
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) persist(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
