package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File reads descriptors from a YAML or JSON document. The document is either a
// list of descriptors or a mapping with a "descriptors" key.
type File struct {
	Fs   afero.Fs
	Path string
}

type document struct {
	Descriptors []models.Descriptor `yaml:"descriptors"`
}

func (f *File) Name() string {
	return "file:" + f.Path
}

func (f *File) Load(ctx context.Context) ([]models.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(f.Fs, f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}

	descriptors, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.Path, err)
	}

	return descriptors, nil
}

// Decode parses a YAML or JSON descriptor document and normalizes its descriptors
func Decode(data []byte) ([]models.Descriptor, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrUnsupportedFormat
	}

	var descriptors []models.Descriptor

	switch node := root.Content[0]; node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&descriptors); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		descriptors = doc.Descriptors
	default:
		return nil, ErrUnsupportedFormat
	}

	if err := Normalize(descriptors); err != nil {
		return nil, err
	}

	return descriptors, nil
}
