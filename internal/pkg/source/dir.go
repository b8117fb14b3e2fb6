package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/spf13/afero"
)

// Dir lists the images found under Root, in lexical order. Locators are relative to Root.
type Dir struct {
	Fs   afero.Fs
	Root string
}

func (d *Dir) Name() string {
	return "dir:" + d.Root
}

func (d *Dir) Load(ctx context.Context) ([]models.Descriptor, error) {
	var descriptors []models.Descriptor

	err := afero.Walk(d.Fs, d.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !utils.IsImageExtension(info.Name()) {
			return nil
		}

		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return err
		}
		locator := filepath.ToSlash(rel)

		descriptors = append(descriptors, models.Descriptor{
			ID:      DeriveID(locator),
			Locator: locator,
			Fields: map[string]string{
				"title":    title(locator),
				"size":     humanize.Bytes(uint64(info.Size())),
				"modified": humanize.Time(info.ModTime()),
			},
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := Normalize(descriptors); err != nil {
		return nil, err
	}

	return descriptors, nil
}
