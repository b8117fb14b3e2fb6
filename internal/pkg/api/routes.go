package api

import (
	"net/http"

	"github.com/internetarchive/Vitrine/internal/pkg/api/handlers"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
)

// registerRoutes attaches all API handlers to mux.
func registerRoutes(mux *http.ServeMux, prometheus bool) {
	if prometheus {
		mux.Handle("/metrics", stats.PrometheusHandler())
	}
	mux.HandleFunc("/status", statusHandler)
	mux.HandleFunc("GET /pause", handlers.GetPause)
	mux.HandleFunc("PATCH /pause", handlers.PatchPause)
}
