package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tinyGIF = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func newAssetServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/images/ok.gif", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-UA", r.UserAgent())
		w.Write(tinyGIF)
	})
	mux.HandleFunc("/images/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	})
	mux.HandleFunc("/images/broken.gif", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestHTTPFetcher(t *testing.T) {
	server := newAssetServer(t)

	f, err := NewHTTPFetcher(server.URL+"/", "vitrine-test", 5*time.Second)
	require.NoError(t, err)
	defer f.Client.CloseIdleConnections()

	tests := []struct {
		name    string
		locator string
		wantErr error
	}{
		{"relative", "images/ok.gif", nil},
		{"absolute", server.URL + "/images/ok.gif", nil},
		{"missing", "images/missing.gif", ErrAssetNotFound},
		{"not an image", "images/page.html", ErrNotAnImage},
		{"server error", "images/broken.gif", ErrUnexpectedStatus},
		{"unsupported scheme", "ftp://example.com/a.gif", ErrInvalidLocator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := f.Fetch(context.Background(), tt.locator)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, asset)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.locator, asset.Locator)
			assert.Equal(t, "image/gif", asset.ContentType)
			assert.Equal(t, int64(len(tinyGIF)), asset.Size)
			assert.False(t, asset.Placeholder)
		})
	}
}

func TestHTTPFetcherWithoutBase(t *testing.T) {
	f, err := NewHTTPFetcher("", "", time.Second)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "images/ok.gif")
	assert.ErrorIs(t, err, ErrInvalidLocator)
}

func TestHTTPFetcherCanceled(t *testing.T) {
	server := newAssetServer(t)

	f, err := NewHTTPFetcher(server.URL, "", time.Second)
	require.NoError(t, err)
	defer f.Client.CloseIdleConnections()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Fetch(ctx, "/images/ok.gif")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSFetcher(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("gallery", "images", "Sunset.GIF"), tinyGIF, 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join("gallery", "images", "notes.txt"), []byte("just some text"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "secret.gif", tinyGIF, 0o644))

	f := NewFSFetcher(fs, "gallery")

	tests := []struct {
		name    string
		locator string
		wantErr error
	}{
		{"exact", "images/Sunset.GIF", nil},
		{"case insensitive", "images/sunset.gif", nil},
		{"percent encoded", "images/Sun%73et.GIF", nil},
		{"leading slash", "/images/Sunset.GIF", nil},
		{"missing", "images/moon.gif", ErrAssetNotFound},
		{"not an image", "images/notes.txt", ErrNotAnImage},
		{"traversal", "../secret.gif", ErrInvalidLocator},
		{"encoded traversal", "%2e%2e/secret.gif", ErrInvalidLocator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := f.Fetch(context.Background(), tt.locator)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "image/gif", asset.ContentType)
			assert.Equal(t, tinyGIF, asset.Body)
		})
	}
}

func TestFSFetcherCanceled(t *testing.T) {
	f := NewFSFetcher(afero.NewMemMapFs(), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "a.gif")
	assert.ErrorIs(t, err, context.Canceled)
}
