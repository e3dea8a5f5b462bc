// Package paths normalizes and verifies the directories named in a run
// configuration and provides the copy/move primitives used to stage output.
package paths

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DirectoryNotFoundError reports a configured directory that does not exist.
// Label is the configuration element that named it (e.g. "output_dir").
type DirectoryNotFoundError struct {
	Label string
	Path  string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Label, e.Path)
}

// Normalize returns the absolute, cleaned form of path with exactly one
// trailing separator. Normalize(Normalize(p)) == Normalize(p).
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return WithTrailingSlash(abs), nil
}

// WithTrailingSlash appends a separator unless path already ends with one.
func WithTrailingSlash(path string) string {
	sep := string(filepath.Separator)
	if strings.HasSuffix(path, sep) {
		return path
	}
	return path + sep
}

// VerifyDir returns a *DirectoryNotFoundError when path is not an existing
// directory.
func VerifyDir(path, label string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return &DirectoryNotFoundError{Label: label, Path: path}
	}
	return nil
}

// Copy copies the regular file src to dst, truncating dst if it exists.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	return out.Close()
}

// Move renames src to dst. When the two live on different filesystems the
// file is copied and the source removed.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}
	if err := Copy(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
