package webostv

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	stderrors "errors"

	"github.com/spf13/viper"
)

const storeClientKeyField = "client-key"

// Store persists the client key issued by the TV during pairing so later
// sessions can skip the on-screen prompt.
type Store interface {
	// ClientKey returns the stored key, or "" when no pairing has been
	// persisted yet.
	ClientKey() (string, error)

	// SetClientKey persists a freshly issued key.
	SetClientKey(key string) error
}

// MemoryStore keeps the client key in process memory. Useful for tests and
// for callers that manage persistence themselves.
type MemoryStore struct {
	mu  sync.Mutex
	key string
}

func (s *MemoryStore) ClientKey() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.key, nil
}

func (s *MemoryStore) SetClientKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key

	return nil
}

// FileStore persists the client key to a config file on disk. The format
// follows the file extension (.json, .yaml, .toml); paths without an
// extension are written as JSON.
type FileStore struct {
	mu sync.Mutex
	v  *viper.Viper
}

// NewFileStore opens (or prepares to create) the config file at path.
// A missing file is not an error; it is created on the first SetClientKey.
func NewFileStore(path string) (*FileStore, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}

	return &FileStore{v: v}, nil
}

func (s *FileStore) ClientKey() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.v.GetString(storeClientKeyField), nil
}

func (s *FileStore) SetClientKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(storeClientKeyField, key)

	if err := s.v.WriteConfig(); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}

	return nil
}
