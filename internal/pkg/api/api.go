// Package api defines the web API of Vitrine.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/config"
	"github.com/internetarchive/Vitrine/internal/pkg/log"
)

var (
	server *http.Server
	once   sync.Once
	logger = log.NewFieldedLogger(&log.Fields{
		"component": "api",
	})
	// ErrAPIAlreadyInitialized is returned when the API server is already initialized.
	ErrAPIAlreadyInitialized = errors.New("API server already initialized")
	// ErrAPINotStarted is returned by Stop when Start was never called.
	ErrAPINotStarted = errors.New("API server not started")
)

// Start begins serving HTTP requests in a separate goroutine.
func Start() error {
	var done bool

	once.Do(func() {
		mux := http.NewServeMux()
		registerRoutes(mux, config.Get() != nil && config.Get().Prometheus)

		port := 8080
		if config.Get() != nil && config.Get().APIPort != 0 {
			port = config.Get().APIPort
		}

		server = &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("starting API server", "address", server.Addr)
			// ListenAndServe returns http.ErrServerClosed when Shutdown is called.
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("API server failed", "err", err.Error())
			}
		}()

		done = true
	})

	if !done {
		return ErrAPIAlreadyInitialized
	}

	return nil
}

// Stop gracefully shuts down the server within the provided timeout.
func Stop(timeout time.Duration) error {
	if server == nil {
		return ErrAPINotStarted
	}

	logger.Info("stopping API server", "address", server.Addr)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}
