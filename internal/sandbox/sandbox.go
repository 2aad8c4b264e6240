// Package sandbox confines file writes to a root directory and makes each
// write atomic.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EscapeError reports a relative path that resolves outside its root.
type EscapeError struct {
	Root     string
	Path     string
	Resolved string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("path '%s' resolves to '%s' which is outside '%s'", e.Path, e.Resolved, e.Root)
}

// Resolve returns the absolute, symlink-resolved location of rel under
// root, failing if it would land outside root. rel need not exist.
func Resolve(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving root symlinks: %w", err)
	}

	resolved, err := resolveExisting(filepath.Join(realRoot, rel))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rel, err)
	}
	if resolved != realRoot && !strings.HasPrefix(resolved, realRoot+string(filepath.Separator)) {
		return "", &EscapeError{Root: realRoot, Path: rel, Resolved: resolved}
	}
	return resolved, nil
}

// resolveExisting resolves symlinks along the longest existing prefix of
// path and appends the rest unchanged.
func resolveExisting(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path, nil
	}
	parent, err := resolveExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(path)), nil
}

// WriteFile atomically writes data to rel under root with mode perm,
// creating parent directories.
func WriteFile(root, rel string, data []byte, perm os.FileMode) error {
	target, err := Resolve(root, rel)
	if err != nil {
		return err
	}
	return WriteAtomic(target, data, perm)
}

// MkdirAll creates rel under root.
func MkdirAll(root, rel string, perm os.FileMode) error {
	target, err := Resolve(root, rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, perm)
}

// WriteAtomic writes data to path through a temporary file in the same
// directory, then renames it into place. Parent directories are created.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".cruft-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
