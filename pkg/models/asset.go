package models

// Asset is the resolved content displayed by a shell
type Asset struct {
	Locator     string
	ContentType string
	Size        int64
	Body        []byte
	Placeholder bool
}

// NewPlaceholder returns the asset shown by shells with no resolvable asset
func NewPlaceholder(locator string) *Asset {
	return &Asset{
		Locator:     locator,
		Placeholder: true,
	}
}

// Outcome is the result of the resolution of one shell
type Outcome struct {
	ShellID  string
	Success  bool
	Attempts int
	Err      error
}
