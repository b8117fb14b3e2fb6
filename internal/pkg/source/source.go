// Package source produces the descriptor sequence of a gallery, from a descriptor file or from a directory of images.
package source

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

// Source produces an ordered, validated descriptor sequence
type Source interface {
	// Load returns the descriptors in gallery order.
	Load(ctx context.Context) ([]models.Descriptor, error)
	// Name returns the name of the source.
	Name() string
}

// Open returns a Dir source when path is a directory and a File source otherwise
func Open(fs afero.Fs, path string) (Source, error) {
	isDir, err := afero.IsDir(fs, path)
	if err != nil {
		return nil, err
	}

	if isDir {
		return &Dir{Fs: fs, Root: path}, nil
	}

	return &File{Fs: fs, Path: path}, nil
}

// DeriveID returns a stable ID for a descriptor without one
func DeriveID(locator string) string {
	return strconv.FormatUint(xxh3.HashString(locator), 16)
}

// ValidateLocator accepts an empty locator, an HTTP(S) URL or a relative path staying under its root
func ValidateLocator(locator string) error {
	if locator == "" {
		return nil
	}

	if strings.Contains(locator, "://") {
		if !govalidator.IsURL(locator) {
			return fmt.Errorf("%w: %q is not a valid URL", ErrInvalidLocator, locator)
		}
		if !strings.HasPrefix(locator, "http://") && !strings.HasPrefix(locator, "https://") {
			return fmt.Errorf("%w: %q is not an HTTP(S) URL", ErrInvalidLocator, locator)
		}
		return nil
	}

	if _, err := utils.SafeJoin("", strings.TrimPrefix(locator, "/")); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidLocator, locator, err)
	}

	return nil
}

// Normalize validates descriptors in place: missing IDs are derived from the locator,
// locators are checked and IDs must be unique.
func Normalize(descriptors []models.Descriptor) error {
	seen := make(map[string]int, len(descriptors))

	for i := range descriptors {
		d := &descriptors[i]
		d.ID = strings.TrimSpace(d.ID)
		d.Locator = strings.TrimSpace(d.Locator)

		if err := ValidateLocator(d.Locator); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}

		if d.ID == "" {
			if d.Locator != "" {
				d.ID = DeriveID(d.Locator)
			} else {
				d.ID = DeriveID("#" + strconv.Itoa(i))
			}
		}

		if first, ok := seen[d.ID]; ok {
			return fmt.Errorf("%w: %q (descriptors %d and %d)", ErrDuplicateID, d.ID, first, i)
		}
		seen[d.ID] = i
	}

	return nil
}

// title turns a file name into a display title
func title(name string) string {
	name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
