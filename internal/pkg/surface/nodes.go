package surface

// NodeStatus counts the mounted nodes by what they display
type NodeStatus struct {
	Mounted     int
	Blank       int // Blank nodes still wait for their asset
	Painted     int
	Placeholder int
	Bytes       int64
}

// Status returns the count of mounted nodes per displayed content
func (h *Headless) Status() NodeStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := NodeStatus{Mounted: len(h.nodes)}
	for _, node := range h.nodes {
		switch {
		case node.asset == nil:
			status.Blank++
		case node.asset.Placeholder:
			status.Placeholder++
		default:
			status.Painted++
			status.Bytes += node.asset.Size
		}
	}

	return status
}

// Visible returns the IDs of the shells intersecting the viewport
func (h *Headless) Visible() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cols := h.columns()
	firstRow := int(h.offset / h.itemHeight)
	lastRow := int((h.offset + h.height - 1) / h.itemHeight)

	var ids []string
	for i := firstRow * cols; i < len(h.nodes) && i < (lastRow+1)*cols; i++ {
		ids = append(ids, h.nodes[i].ShellID)
	}

	return ids
}

// Mounted returns the IDs of every mounted shell in mount order
func (h *Headless) Mounted() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, len(h.nodes))
	for i, node := range h.nodes {
		ids[i] = node.ShellID
	}

	return ids
}

// PaintCount returns how many times the node of shellID was painted
func (h *Headless) PaintCount(shellID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, node := range h.nodes {
		if node.ShellID == shellID {
			return node.painted
		}
	}

	return 0
}
