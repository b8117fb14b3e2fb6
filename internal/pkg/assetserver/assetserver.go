// Package assetserver serves a gallery directory over HTTP: the page at its root and the
// images of its images directory, with a case-insensitive fallback for image names.
package assetserver

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/spf13/afero"
)

const (
	// DefaultAddress is the address the server listens on when none is given
	DefaultAddress = "127.0.0.1:8000"
	// DefaultImagesDir is the images directory served under /<dir>/
	DefaultImagesDir = "images_scraped"

	indexFile = "index.html"
)

// Server serves the files of Root. It implements http.Handler.
type Server struct {
	Fs        afero.Fs
	Root      string
	ImagesDir string

	logger *log.FieldedLogger
}

func New(fs afero.Fs, root, imagesDir string) *Server {
	if imagesDir == "" {
		imagesDir = DefaultImagesDir
	}

	return &Server{
		Fs:        fs,
		Root:      root,
		ImagesDir: strings.Trim(imagesDir, "/"),
		logger: log.NewFieldedLogger(&log.Fields{
			"component": "assetserver",
		}),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.EscapedPath(), "/")
	if name == "" {
		name = indexFile
	}

	var (
		filePath string
		err      error
	)

	if prefix := s.ImagesDir + "/"; strings.HasPrefix(name, prefix) {
		filePath, err = s.resolveImage(strings.TrimPrefix(name, prefix))
	} else {
		filePath, err = s.resolveRootFile(name)
	}

	if err != nil {
		s.logger.Warn("file not served", "path", r.URL.Path, "err", err.Error())
		http.NotFound(w, r)
		return
	}

	s.serveFile(w, r, filePath)
}

func (s *Server) resolveRootFile(name string) (string, error) {
	filePath, err := utils.SafeJoin(s.Root, name)
	if err != nil {
		return "", err
	}

	if !utils.FileExists(s.Fs, filePath) {
		return "", errNotAFile
	}

	return filePath, nil
}

// resolveImage decodes name and looks it up in the images directory, ignoring case when there is no exact match
func (s *Server) resolveImage(name string) (string, error) {
	imagesDir, err := utils.SafeJoin(s.Root, s.ImagesDir)
	if err != nil {
		return "", err
	}

	filePath, err := utils.SafeJoin(imagesDir, name)
	if err != nil {
		return "", err
	}

	found, err := utils.FindFile(s.Fs, filePath)
	if err != nil {
		return "", err
	}

	if found != filePath {
		s.logger.Debug("image found case-insensitively", "requested", filePath, "found", found)
	}

	return found, nil
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, filePath string) {
	file, err := s.Fs.Open(filePath)
	if err != nil {
		s.logger.Error("unable to open file", "path", filePath, "err", err.Error())
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	s.logger.Info("serving file", "path", filePath, "size", humanize.Bytes(uint64(info.Size())))
	stats.AssetsServedIncr()

	http.ServeContent(w, r, path.Base(filePath), info.ModTime(), file)
}

// ListenAndServe serves on addr until ctx is done, then shuts the server down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddress
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving files", "root", s.Root, "images_dir", s.ImagesDir, "address", addr)
		// ListenAndServe returns http.ErrServerClosed when Shutdown is called.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("stopping asset server", "address", addr)
	return server.Shutdown(shutdownCtx)
}
