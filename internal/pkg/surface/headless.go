// Package surface provides a headless mounting surface: shells are laid out on a grid
// sized after a simulated viewport, and scrolling is driven programmatically.
package surface

import (
	"math"
	"sync"

	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/pkg/models"
)

// sampleBuffer is the capacity of each scroll subscription, older samples are dropped when full
const sampleBuffer = 16

// Node is the visual node mounted for one shell
type Node struct {
	Index   int
	ShellID string
	Fields  map[string]string

	asset   *models.Asset
	painted int
}

// Headless is an in-memory grid surface. It is safe for concurrent use.
type Headless struct {
	mu          sync.RWMutex
	width       float64
	height      float64
	itemWidth   float64
	itemHeight  float64
	nodes       []*Node
	empty       bool
	offset      float64
	subscribers map[<-chan models.ScrollSample]chan models.ScrollSample

	logger *log.FieldedLogger
}

// NewHeadless returns a surface with a viewport of width x height and items of 1x1 until SetItemSize is called
func NewHeadless(width, height float64) *Headless {
	return &Headless{
		width:       width,
		height:      height,
		itemWidth:   1,
		itemHeight:  1,
		subscribers: make(map[<-chan models.ScrollSample]chan models.ScrollSample),
		logger: log.NewFieldedLogger(&log.Fields{
			"component": "surface.headless",
		}),
	}
}

func (h *Headless) Mount(shell *models.Shell) models.MountHandle {
	node := &Node{
		Index:   shell.Index,
		ShellID: shell.GetID(),
		Fields:  shell.Descriptor.Fields,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nodes = append(h.nodes, node)
	return node
}

func (h *Headless) Paint(handle models.MountHandle, asset *models.Asset) {
	node, ok := handle.(*Node)
	if !ok || node == nil {
		h.logger.Warn("paint on unknown handle", "handle", handle)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	node.asset = asset
	node.painted++
}

func (h *Headless) ShowEmpty() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.empty = true
}

func (h *Headless) SetItemSize(width, height float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if width > 0 {
		h.itemWidth = width
	}
	if height > 0 {
		h.itemHeight = height
	}
}

// Columns returns how many items fit side by side in the viewport, at least one
func (h *Headless) Columns() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.columns()
}

func (h *Headless) columns() int {
	return max(1, int(math.Floor(h.width/h.itemWidth)))
}

func (h *Headless) contentLength() float64 {
	rows := (len(h.nodes) + h.columns() - 1) / h.columns()
	return float64(rows) * h.itemHeight
}

func (h *Headless) ContentLength() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.contentLength()
}

func (h *Headless) ViewportLength() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.height
}

// Empty reports whether the empty state is displayed
func (h *Headless) Empty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.empty
}

// Offset returns the current scroll offset
func (h *Headless) Offset() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.offset
}
