package store

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var ErrKeyRequired = errors.New("storage key is required")

// Store persists whole JSON blobs under string keys, mirroring the
// read-full-object/write-full-object model the caches are built on.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// FileStore keeps one <key>.json file per storage key inside a directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a FileStore rooted at dir on the given filesystem.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage directory not provided")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) Read(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	return afero.ReadFile(s.fs, s.path(key))
}

// Write replaces the blob atomically via a temp file rename.
func (s *FileStore) Write(key string, data []byte) error {
	if key == "" {
		return ErrKeyRequired
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
