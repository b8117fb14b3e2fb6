package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/spf13/afero"
)

// maxAssetSize caps the body read by the fetchers
const maxAssetSize = 64 << 20

// HTTPFetcher probes assets over HTTP. Relative locators are resolved against BaseURL.
type HTTPFetcher struct {
	Client    *http.Client
	BaseURL   *url.URL
	UserAgent string
}

// NewHTTPFetcher returns a fetcher resolving relative locators against baseURL, which can be empty
func NewHTTPFetcher(baseURL, userAgent string, timeout time.Duration) (*HTTPFetcher, error) {
	f := &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
		}
		f.BaseURL = u
	}

	return f, nil
}

func (f *HTTPFetcher) resolve(locator string) (*url.URL, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
	}

	if !u.IsAbs() {
		if f.BaseURL == nil {
			return nil, fmt.Errorf("%w: relative locator %q without base URL", ErrInvalidLocator, locator)
		}
		u = f.BaseURL.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocator, u.Scheme)
	}

	return u, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (*models.Asset, error) {
	u, err := f.resolve(locator)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, u)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, err
	}

	return newAsset(locator, body)
}

// FSFetcher probes assets stored under Root on an afero filesystem.
// A locator that doesn't match a file exactly falls back to a case-insensitive match in its directory.
type FSFetcher struct {
	Fs   afero.Fs
	Root string
}

func NewFSFetcher(fs afero.Fs, root string) *FSFetcher {
	return &FSFetcher{Fs: fs, Root: root}
}

func (f *FSFetcher) Fetch(ctx context.Context, locator string) (*models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := utils.SafeJoin(f.Root, strings.TrimPrefix(locator, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
	}

	path, err = utils.FindFile(f.Fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, locator)
		}
		return nil, err
	}

	body, err := afero.ReadFile(f.Fs, path)
	if err != nil {
		return nil, err
	}

	return newAsset(locator, body)
}

func newAsset(locator string, body []byte) (*models.Asset, error) {
	contentType, ok := utils.DetectImage(body)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}

	return &models.Asset{
		Locator:     locator,
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        body,
	}, nil
}
