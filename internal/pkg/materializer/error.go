package materializer

import "errors"

var (
	// ErrNoSurface is the error returned when the materializer is created without a mounting surface
	ErrNoSurface = errors.New("no mounting surface")
	// ErrNoDescriptors is the error returned when the descriptor sequence is empty
	ErrNoDescriptors = errors.New("empty descriptor sequence")
	// ErrNoScrollSource is the error returned by Watch when given a nil source
	ErrNoScrollSource = errors.New("no scroll source")
	// ErrClosed is the error returned when the materializer is already closed
	ErrClosed = errors.New("materializer closed")
)
