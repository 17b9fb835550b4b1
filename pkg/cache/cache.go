// Package cache owns the scratch directory the transcoding pipeline shuttles
// files through. The external tools only work on real file paths, so every
// conversion round-trips through here.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBadName is returned when a subdirectory name would escape the cache
// root.
var ErrBadName = errors.New("cache: subdirectory name must be a bare file name")

// Dir is a cache root holding one subdirectory per open container. The root
// is an explicit value passed in at construction; there is no ambient global
// cache path.
type Dir struct {
	root string
}

// New returns a Dir rooted at root. The directory itself is created lazily.
func New(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the cache root path.
func (d *Dir) Root() string {
	return d.root
}

// CleanDir returns the path of the subdirectory for name, guaranteed to
// exist and be empty. Only the contents of the known subdirectory are ever
// deleted, never the directory itself and never anything outside it, so a
// misconfigured path can't wipe something unexpected.
func (d *Dir) CleanDir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	path := filepath.Join(d.root, name)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		if err := clearContents(path); err != nil {
			return "", err
		}
	case err == nil:
		// A file is squatting on the name.
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("removing %s: %w", path, err)
		}
		if err := os.Mkdir(path, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
	default:
		return "", fmt.Errorf("inspecting %s: %w", path, err)
	}

	return path, nil
}

// Reset returns the cache root to an empty, usable state. Callers treat a
// failure here as fatal, since every later operation depends on a clean
// cache.
func (d *Dir) Reset() error {
	info, err := os.Stat(d.root)
	switch {
	case err == nil && info.IsDir():
		return clearContents(d.root)
	case err == nil:
		if err := os.Remove(d.root); err != nil {
			return fmt.Errorf("removing %s: %w", d.root, err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("inspecting %s: %w", d.root, err)
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", d.root, err)
	}
	return nil
}

func clearContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}
