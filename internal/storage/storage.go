// Package storage persists uploaded media files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media subdirectories, mirroring the upload layout of the legacy system.
const (
	ProductImageDir = "productos/imagenes"
	GalleryImageDir = "productos/galeria"
)

// FileStore saves and removes media files, returning URL paths relative to
// the media mount.
type FileStore interface {
	Save(dir, originalName string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
}

// LocalStore keeps media on the local filesystem under a root directory,
// served by the HTTP layer under /media.
type LocalStore struct {
	root string
}

// NewLocalStore constructs LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Save writes data under dir with a unique name derived from the original
// file's extension and returns the media-relative path.
func (s *LocalStore) Save(dir, originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	rel := filepath.ToSlash(filepath.Join(dir, name))
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", err
	}

	return rel, nil
}

// Read returns the bytes of a previously saved file.
func (s *LocalStore) Read(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}

// Remove deletes a previously saved file. A missing file is not an error;
// the row pointing at it is already being thrown away.
func (s *LocalStore) Remove(path string) error {
	if path == "" {
		return nil
	}

	abs := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
