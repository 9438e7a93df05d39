// Package storage writes uploaded claim documents to local disk under
// collision-resistant generated names.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFileStore: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes src to disk under a generated name derived from the original
// filename and returns the stored path reference. The original base name is
// slugified so arbitrary client input never reaches the filesystem.
func (s *FileStore) Save(originalName string, src io.Reader) (string, error) {
	name := GenerateName(originalName)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage.Save: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage.Save: %w", err)
	}
	return "/" + filepath.ToSlash(filepath.Join(filepath.Base(s.dir), name)), nil
}

// GenerateName builds "uuid_slugged-base.ext" from a client filename.
func GenerateName(originalName string) string {
	base := filepath.Base(originalName)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	slugged := slug.Make(stem)
	if slugged == "" {
		slugged = "document"
	}
	return uuid.NewString() + "_" + slugged + ext
}
