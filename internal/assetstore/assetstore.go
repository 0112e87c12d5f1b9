// Package assetstore persists uploaded image files in a local content
// directory and hands out stable /uploads references.
package assetstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxUploadSize is the accepted upload size ceiling.
const MaxUploadSize = 5 << 20 // 5 MiB

// PublicPrefix is the URL prefix under which stored assets are served.
const PublicPrefix = "/uploads/"

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.Errorf("file too large, maximum size is %d bytes", MaxUploadSize)
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store is a local-disk image asset manager rooted at a content directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create asset dir")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded payload under a generated unique filename and
// returns its public reference path. The name combines a millisecond
// timestamp with a random numeric suffix, so concurrent uploads never
// collide and existing files are never overwritten.
func (s *Store) Save(src io.Reader, originalName string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), random.String(9, random.Numeric), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create asset file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1)); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "write asset file")
	}
	return PublicPrefix + name, nil
}

// Replace stores the new payload first, then removes the file behind oldRef.
// Removal is best-effort; a missing old file is not an error.
func (s *Store) Replace(oldRef string, src io.Reader, originalName string, size int64) (string, error) {
	ref, err := s.Save(src, originalName, size)
	if err != nil {
		return "", err
	}
	s.Remove(oldRef)
	return ref, nil
}

// Remove deletes the file behind ref if present. Deletion failures are
// swallowed; cleanup here is not correctness-critical.
func (s *Store) Remove(ref string) {
	if ref == "" {
		return
	}
	path := filepath.Join(s.dir, filepath.Base(ref))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("failed to remove asset file", zap.String("path", path), zap.Error(err))
	}
}

// FilePath resolves a public reference to its on-disk location.
func (s *Store) FilePath(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}
