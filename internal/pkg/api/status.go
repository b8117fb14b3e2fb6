package api

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/internal/pkg/utils"
)

// Gallery is the view of a running gallery exposed on /status
type Gallery interface {
	Rendered() int
	Total() int
	State() materializer.State
}

// StatusResponse represents the structure of the status API response
type StatusResponse struct {
	Role      string          `json:"role"`
	Version   string          `json:"version"`
	Host      string          `json:"host"`
	StartTime string          `json:"start_time"`
	Galleries []GalleryStatus `json:"galleries"`
	Stats     map[string]any  `json:"stats"`
}

type GalleryStatus struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Rendered int    `json:"rendered"`
	Total    int    `json:"total"`
}

var (
	startTime = time.Now()

	galleriesMu sync.RWMutex
	galleries   = map[string]Gallery{}
)

// RegisterGallery exposes g on /status under id
func RegisterGallery(id string, g Gallery) {
	galleriesMu.Lock()
	defer galleriesMu.Unlock()
	galleries[id] = g
}

// UnregisterGallery removes the gallery registered under id
func UnregisterGallery(id string) {
	galleriesMu.Lock()
	defer galleriesMu.Unlock()
	delete(galleries, id)
}

func galleryStatuses() []GalleryStatus {
	galleriesMu.RLock()
	defer galleriesMu.RUnlock()

	statuses := make([]GalleryStatus, 0, len(galleries))
	for id, g := range galleries {
		statuses = append(statuses, GalleryStatus{
			ID:       id,
			State:    g.State().String(),
			Rendered: g.Rendered(),
			Total:    g.Total(),
		})
	}

	return statuses
}

// statusHandler handles GET requests to /status
func statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	response := StatusResponse{
		Role:      "vitrine",
		Version:   utils.GetVersion().Version,
		Host:      hostname,
		StartTime: startTime.Format(time.RFC3339),
		Galleries: galleryStatuses(),
		Stats:     stats.GetMap(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
}
