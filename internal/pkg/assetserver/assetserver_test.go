package assetserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	fs := afero.NewMemMapFs()
	files := map[string]string{
		"index.html":                      "<html>gallery</html>",
		"style.css":                       "body {}",
		"images_scraped/Sunset Beach.JPG": "jpeg bytes",
		"images_scraped/a.png":            "png bytes",
		"secret.txt":                      "outside",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("site", name), []byte(content), 0o644))
	}
	require.NoError(t, afero.WriteFile(fs, "passwd", []byte("root"), 0o644))

	server := httptest.NewServer(New(fs, "site", ""))
	t.Cleanup(server.Close)

	return server
}

func get(t *testing.T, server *httptest.Server, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServeHTTP(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"index", "/", http.StatusOK, "<html>gallery</html>"},
		{"root file", "/style.css", http.StatusOK, "body {}"},
		{"image", "/images_scraped/a.png", http.StatusOK, "png bytes"},
		{"encoded image", "/images_scraped/Sunset%20Beach.JPG", http.StatusOK, "jpeg bytes"},
		{"case-insensitive image", "/images_scraped/sunset%20beach.jpg", http.StatusOK, "jpeg bytes"},
		{"missing image", "/images_scraped/moon.jpg", http.StatusNotFound, ""},
		{"missing root file", "/nope.html", http.StatusNotFound, ""},
		{"directory", "/images_scraped", http.StatusNotFound, ""},
		{"encoded traversal", "/%2e%2e/passwd", http.StatusNotFound, ""},
		{"image traversal", "/images_scraped/%2e%2e/secret.txt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, server, tt.path)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDefaults(t *testing.T) {
	s := New(afero.NewMemMapFs(), ".", "/photos/")
	assert.Equal(t, "photos", s.ImagesDir)
	assert.Equal(t, DefaultImagesDir, New(afero.NewMemMapFs(), ".", "").ImagesDir)
}

func TestListenAndServe(t *testing.T) {
	// Reserve a free port
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "index.html", []byte("hello"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(fs, ".", "").ListenAndServe(ctx, addr)
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
