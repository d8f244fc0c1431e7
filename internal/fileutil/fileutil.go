// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// MaxReadSize bounds ReadBounded (default 8MB). Site documents and data files
// are far smaller; anything larger is almost certainly the wrong path.
var MaxReadSize int64 = 8 << 20

// Sentinel errors for file utility operations.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrIsDirectory  = errors.New("path is a directory")
)

// ReadBounded reads a regular file, refusing directories and files larger
// than MaxReadSize.
func ReadBounded(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() > MaxReadSize {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)", ErrFileTooLarge, path, info.Size(), MaxReadSize)
	}

	return io.ReadAll(io.LimitReader(f, MaxReadSize+1))
}

// WriteAtomic replaces path with content via a temp file and rename in the
// same directory, so readers see either the old or the new file.
func WriteAtomic(path, content string) error {
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "pubsection" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/pubsection.yaml" -> true (absolute)
//   - "C:\site\pubsection.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ResolveUnder joins p onto root unless p is already absolute.
func ResolveUnder(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
