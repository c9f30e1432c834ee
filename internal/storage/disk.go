// Package storage keeps uploaded file bytes on a filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/spf13/afero"
)

// ErrInvalidName is returned for names that would escape the storage root.
var ErrInvalidName = errors.New("invalid file name")

// DiskStorage writes files flat into a single directory.
type DiskStorage struct {
	fs  afero.Fs
	dir string
}

// NewDiskStorage roots a storage at dir on the host filesystem.
func NewDiskStorage(dir string) *DiskStorage {
	return NewDiskStorageFs(afero.NewOsFs(), dir)
}

// NewDiskStorageFs roots a storage at dir on the given filesystem.
func NewDiskStorageFs(fs afero.Fs, dir string) *DiskStorage {
	return &DiskStorage{fs: fs, dir: dir}
}

// Dir returns the storage root.
func (s *DiskStorage) Dir() string {
	return s.dir
}

// Fs returns the underlying filesystem, for serving files back.
func (s *DiskStorage) Fs() afero.Fs {
	return s.fs
}

func (s *DiskStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes data under name, creating the directory if needed. An existing
// file with the same name is never overwritten.
func (s *DiskStorage) Save(ctx context.Context, name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		logger.Log.Errorw("failed to create upload directory", "dir", s.dir, "error", err)
		return err
	}

	f, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Log.Errorw("failed to create file", "path", p, "error", err)
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = s.fs.Remove(p)
		logger.Log.Errorw("failed to write file", "path", p, "error", err)
		return err
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(p)
		return err
	}

	logger.Log.Infow("file stored", "path", p, "size", len(data))
	return nil
}

// Remove deletes the named file. A missing file is not an error.
func (s *DiskStorage) Remove(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Errorw("failed to remove file", "path", p, "error", err)
		return err
	}
	return nil
}
