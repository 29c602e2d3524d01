package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
)

// Blobs is the file side channel of the record store: buckets are
// directories under a root, and a saved blob is reachable at the public
// /media/{bucket}/{path} route served by the HTTP layer.
type Blobs struct {
	root string
}

// NewBlobs creates the bucket root if needed.
func NewBlobs(root string) (*Blobs, error) {
	if err := os.MkdirAll(root, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	return &Blobs{root: root}, nil
}

// Root returns the directory the media file server should serve.
func (b *Blobs) Root() string {
	return b.root
}

// Save streams a blob into bucket/path, creating parent directories.
func (b *Blobs) Save(bucket, path string, r io.Reader) error {
	full, err := b.resolve(bucket, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create blob dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Remove deletes a blob; removing a missing blob is not an error.
func (b *Blobs) Remove(bucket, path string) error {
	full, err := b.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicURL resolves a stored path to the URL clients fetch it from.
func (b *Blobs) PublicURL(bucket, path string) string {
	return "/media/" + bucket + "/" + strings.TrimPrefix(path, "/")
}

// SanitizeName strips filesystem-hostile characters from a single path
// segment and trims trailing dots and spaces.
func SanitizeName(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(constants.InvalidPathChars, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimRight(mapped, ". ")
}

func (b *Blobs) resolve(bucket, path string) (string, error) {
	if bucket == "" || path == "" {
		return "", fmt.Errorf("blob bucket and path are required")
	}
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid blob path: %s", path)
	}
	return filepath.Join(b.root, bucket, filepath.Clean("/"+path)), nil
}
