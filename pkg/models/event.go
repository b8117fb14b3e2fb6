package models

import "time"

// EventKind qualifies the signals emitted by a gallery
type EventKind int

const (
	// EventBatchRendered is emitted after each materialized batch
	EventBatchRendered EventKind = iota
	// EventAssetResolved is emitted when a shell reaches a terminal load state
	EventAssetResolved
	// EventAllMaterialized is emitted once, when every descriptor has been materialized
	EventAllMaterialized
)

func (k EventKind) String() string {
	switch k {
	case EventBatchRendered:
		return "batch-rendered"
	case EventAssetResolved:
		return "asset-resolved"
	case EventAllMaterialized:
		return "all-materialized"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether k is published at most once, as the last event of a gallery
func (k EventKind) IsTerminal() bool {
	return k == EventAllMaterialized
}

// Event is a signal consumable by collaborators of a gallery
type Event struct {
	Kind     EventKind
	Time     time.Time
	Rendered int    // Rendered is the number of shells materialized so far (batch-rendered, all-materialized)
	Total    int    // Total is the length of the descriptor sequence (batch-rendered, all-materialized)
	ShellID  string // ShellID is the resolved shell (asset-resolved)
	Success  bool   // Success is false when the shell was exhausted (asset-resolved)
}

// ScrollSample is one scroll-position reading of a host surface
type ScrollSample struct {
	Offset   float64 // Offset is the distance scrolled from the top of the content
	Viewport float64 // Viewport is the visible length of the surface
}

// Edge returns the position of the trailing edge of the viewport
func (s ScrollSample) Edge() float64 {
	return s.Offset + s.Viewport
}
