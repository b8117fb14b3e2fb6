package utils

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrUnsafePath is returned when a path would escape its root directory
var ErrUnsafePath = errors.New("path escapes root directory")

// FileExists checks if a file exists and is not a directory before we
// try using it to prevent further errors
func FileExists(fs afero.Fs, filename string) bool {
	info, err := fs.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SafeJoin percent-decodes name and joins it to root, refusing any result outside of root
func SafeJoin(root, name string) (string, error) {
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", err
	}

	decoded = filepath.FromSlash(decoded)
	if filepath.IsAbs(decoded) || strings.HasPrefix(decoded, string(filepath.Separator)) {
		return "", ErrUnsafePath
	}

	cleaned := filepath.Clean(decoded)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}

	return filepath.Join(root, cleaned), nil
}

// FindFile returns filename if it exists, otherwise a file of the same directory
// whose name only differs by case. os.ErrNotExist is returned when none matches.
func FindFile(fs afero.Fs, filename string) (string, error) {
	if FileExists(fs, filename) {
		return filename, nil
	}

	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", os.ErrNotExist
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), base) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", os.ErrNotExist
}

// IsImageExtension reports whether name carries a common bitmap extension
func IsImageExtension(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".avif", ".tif", ".tiff":
		return true
	default:
		return false
	}
}
