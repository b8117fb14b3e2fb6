package loader

import "errors"

var (
	// ErrLoaderStopped is the error returned for shells submitted to, or left waiting in, a stopped loader
	ErrLoaderStopped = errors.New("loader stopped")
	// ErrAlreadyQueued is the error returned when a shell is submitted while it is already queued or loading
	ErrAlreadyQueued = errors.New("shell already queued")
	// ErrNilShell is the error returned when a nil shell is submitted
	ErrNilShell = errors.New("nil shell")
	// ErrRetriesExhausted wraps the last probe error of a shell that fell back to the placeholder
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrAssetNotFound is the error returned by fetchers when the asset does not exist
	ErrAssetNotFound = errors.New("asset not found")
	// ErrUnexpectedStatus is the error returned by the HTTP fetcher on non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrNotAnImage is the error returned by fetchers when the payload isn't a bitmap
	ErrNotAnImage = errors.New("asset is not an image")
	// ErrInvalidLocator is the error returned by fetchers when a locator can't be resolved
	ErrInvalidLocator = errors.New("invalid locator")
)
