package source

import "errors"

var (
	// ErrInvalidLocator is the error returned when a descriptor locator is neither an HTTP(S) URL nor a safe relative path
	ErrInvalidLocator = errors.New("invalid locator")
	// ErrDuplicateID is the error returned when two descriptors share the same ID
	ErrDuplicateID = errors.New("duplicate descriptor ID")
	// ErrUnsupportedFormat is the error returned when a descriptor file can't be decoded
	ErrUnsupportedFormat = errors.New("unsupported descriptor document")
)
