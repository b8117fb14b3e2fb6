package models

// LoadState qualifies the asset resolution state of a shell
type LoadState int

const (
	// LoadPending is the state of a shell that has been mounted but not submitted to the loader yet
	LoadPending LoadState = iota
	// LoadLoading is the state of a shell whose asset is being probed or retried
	LoadLoading
	// LoadLoaded is the terminal state of a shell displaying its asset
	LoadLoaded
	// LoadExhausted is the terminal state of a shell displaying the placeholder after all attempts failed
	LoadExhausted
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can happen from s
func (s LoadState) IsTerminal() bool {
	return s == LoadLoaded || s == LoadExhausted
}
