package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// localStore implements FileStore on a single local directory.
type localStore struct {
	dir string
}

// NewLocal creates the upload directory if absent and returns a FileStore
// over it.
func NewLocal(dir string) (FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &localStore{dir: dir}, nil
}

// Save writes the payload under <unix-millis>-<original base name>.
// The timestamp prefix reduces collision likelihood but is not collision-proof.
func (s *localStore) Save(ctx context.Context, originalName string, r io.Reader) (SavedFile, error) {
	if r == nil {
		return SavedFile{}, fmt.Errorf("reader is nil")
	}
	if err := ctx.Err(); err != nil {
		return SavedFile{}, err
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return SavedFile{}, fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return SavedFile{}, fmt.Errorf("write upload file: %w", err)
	}

	return SavedFile{Name: name, Path: path, Size: n}, nil
}

// Resolve returns the on-disk path for a stored name. The name is reduced to
// its base component so callers cannot escape the upload directory.
func (s *localStore) Resolve(name string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrNotFound
	}
	return path, nil
}

// Remove deletes the payload at path, tolerating files already gone.
func (s *localStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
