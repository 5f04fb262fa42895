package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// diskStorage implements Storage on a local directory. Paths handed back to
// callers are absolute so they stay valid regardless of working directory.
type diskStorage struct {
	root string
}

// NewDisk creates a local-disk blob store rooted at the given directory.
// The directory itself is created lazily on first Save.
func NewDisk(uploadDir string) (Storage, error) {
	if uploadDir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	root, err := filepath.Abs(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload directory: %w", err)
	}
	return &diskStorage{root: root}, nil
}

// Save writes the content to root/name. The name is reduced to its base
// element so callers cannot escape the upload root.
func (d *diskStorage) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (ObjectInfo, error) {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}

	path := filepath.Join(d.root, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ObjectInfo{}, err
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Do not leave a partial file behind.
		_ = os.Remove(path)
		return ObjectInfo{}, err
	}

	return ObjectInfo{Path: path, Size: written}, nil
}

func (d *diskStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (d *diskStorage) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *diskStorage) Exists(_ context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
