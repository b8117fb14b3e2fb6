package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	appFS := afero.NewMemMapFs()

	afero.WriteFile(appFS, "src/a", []byte("file"), 0644)

	assert.True(t, FileExists(appFS, "src/a"))
	assert.False(t, FileExists(appFS, "src/b"))
	assert.False(t, FileExists(appFS, "src"))
}

func TestSafeJoin(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "cat.jpg", want: filepath.Join("root", "cat.jpg")},
		{name: "encoded space", input: "my%20cat.jpg", want: filepath.Join("root", "my cat.jpg")},
		{name: "nested", input: "a/b/../c.png", want: filepath.Join("root", "a", "c.png")},
		{name: "traversal", input: "../etc/passwd", wantErr: true},
		{name: "encoded traversal", input: "%2e%2e/secret", wantErr: true},
		{name: "absolute", input: "/etc/passwd", wantErr: true},
		{name: "bad escape", input: "%zz", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeJoin("root", tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindFile(t *testing.T) {
	appFS := afero.NewMemMapFs()
	afero.WriteFile(appFS, filepath.Join("images", "Sunset.JPG"), []byte("x"), 0644)

	got, err := FindFile(appFS, filepath.Join("images", "Sunset.JPG"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "Sunset.JPG"), got)

	got, err = FindFile(appFS, filepath.Join("images", "sunset.jpg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "Sunset.JPG"), got)

	_, err = FindFile(appFS, filepath.Join("images", "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FindFile(appFS, filepath.Join("nowhere", "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, IsImageExtension("a/b/photo.JPEG"))
	assert.True(t, IsImageExtension("x.webp"))
	assert.False(t, IsImageExtension("index.html"))
	assert.False(t, IsImageExtension("README"))
}
