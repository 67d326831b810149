package external

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"lighthouse.app/pkg/errors"
)

// FileStorage writes one file per key into a directory. Writes go through a
// temporary file and a rename so a crash never leaves a torn record.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.NewConfigurationError("storage directory cannot be empty", nil)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("create storage directory %s", dir), err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("key not found")
		}
		return nil, errors.NewStorageError("read "+key, err)
	}
	return data, nil
}

func (f *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if value == nil {
		return errors.NewValidationError("storage value cannot be nil")
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return errors.NewStorageError("write "+key, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("write "+key, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("write "+key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.NewStorageError("write "+key, err)
	}
	return nil
}

func (f *FileStorage) Delete(ctx context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("delete "+key, err)
	}
	return nil
}

func (f *FileStorage) Name() string {
	return "file"
}

// Dir returns the directory records are stored in
func (f *FileStorage) Dir() string {
	return f.dir
}

func (f *FileStorage) path(key string) (string, error) {
	if key == "" {
		return "", errors.NewValidationError("storage key cannot be empty")
	}
	return filepath.Join(f.dir, url.PathEscape(key)+".json"), nil
}
