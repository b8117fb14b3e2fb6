package stats

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type prometheusStats struct {
	registry *prometheus.Registry

	shellsMaterialized *prometheus.CounterVec
	batchesRendered    *prometheus.CounterVec
	assetsLoaded       *prometheus.CounterVec
	assetsExhausted    *prometheus.CounterVec
	loadAttempts       *prometheus.CounterVec
	activeLoads        *prometheus.GaugeVec
	queuedLoads        *prometheus.GaugeVec
	paused             *prometheus.GaugeVec
	assetsServed       *prometheus.CounterVec
	loadTime           *prometheus.HistogramVec // in ns
}

var (
	globalPromStats *prometheusStats
	promMu          sync.RWMutex

	job      string
	hostname string
	version  string
)

var labelNames = []string{"project", "hostname", "version"}

// InitPrometheus creates and registers the Prometheus collectors.
// Collectors are registered on a dedicated registry exposed by PrometheusHandler.
// Init must be called first.
func InitPrometheus(prefix, jobName string) error {
	if get() == nil {
		return ErrStatsNotInitialized
	}

	promMu.Lock()
	defer promMu.Unlock()

	if globalPromStats != nil {
		return ErrStatsAlreadyInitialized
	}

	job = jobName
	hostname, _ = os.Hostname()
	version = utils.GetVersion().Version

	p := &prometheusStats{
		registry: prometheus.NewRegistry(),
		shellsMaterialized: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "shells_materialized", Help: "Total number of shells mounted"},
			labelNames,
		),
		batchesRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "batches_rendered", Help: "Total number of rendered batches"},
			labelNames,
		),
		assetsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "assets_loaded", Help: "Total number of assets displayed"},
			labelNames,
		),
		assetsExhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "assets_exhausted", Help: "Total number of shells left with the placeholder"},
			labelNames,
		),
		loadAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "load_attempts", Help: "Total number of asset probes"},
			labelNames,
		),
		activeLoads: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: prefix + "active_loads", Help: "Number of shells holding a load slot"},
			labelNames,
		),
		queuedLoads: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: prefix + "queued_loads", Help: "Number of shells waiting for a load slot"},
			labelNames,
		),
		paused: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: prefix + "paused", Help: "Whether the scroll simulation is paused"},
			labelNames,
		),
		assetsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "assets_served", Help: "Total number of files served by the asset server"},
			labelNames,
		),
		loadTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: prefix + "load_time", Help: "Time in ns from first probe to displayed asset", Buckets: prometheus.ExponentialBucketsRange(float64(time.Millisecond), float64(30*time.Second), 40)},
			labelNames,
		),
	}

	if err := registerPrometheusMetrics(p); err != nil {
		return err
	}

	globalPromStats = p

	return nil
}

func registerPrometheusMetrics(p *prometheusStats) error {
	collectors := []prometheus.Collector{
		p.shellsMaterialized,
		p.batchesRendered,
		p.assetsLoaded,
		p.assetsExhausted,
		p.loadAttempts,
		p.activeLoads,
		p.queuedLoads,
		p.paused,
		p.assetsServed,
		p.loadTime,
	}

	for _, c := range collectors {
		if err := p.registry.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// PrometheusHandler returns the handler serving the registered collectors
func PrometheusHandler() http.Handler {
	promMu.RLock()
	defer promMu.RUnlock()

	if globalPromStats == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(globalPromStats.registry, promhttp.HandlerOpts{})
}

func withProm(fn func(p *prometheusStats)) {
	promMu.RLock()
	p := globalPromStats
	promMu.RUnlock()

	if p != nil {
		fn(p)
	}
}

func labels() []string {
	return []string{job, hostname, version}
}
