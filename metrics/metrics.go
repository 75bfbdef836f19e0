// Package metrics exposes the engine's latency-budget counters. Collectors
// register against an injected Registerer so tests can use private
// registries.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine bundles the render-path metrics.
type Engine struct {
	FrameDuration  prometheus.Histogram
	TileFetches    *prometheus.CounterVec
	GridRecomputes prometheus.Counter
	SnapshotReuse  prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewEngine registers the engine metrics, defaulting to the global registry
// when reg is nil.
func NewEngine(reg prometheus.Registerer) (*Engine, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	e := &Engine{
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "map_frame_render_seconds",
			Help:    "Wall time of one compositor render pass.",
			Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1, 0.25},
		}),
		TileFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "map_tile_fetches_total",
			Help: "Tile fetch outcomes: primary, fallback, or failed.",
		}, []string{"outcome"}),
		GridRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "map_grid_recomputes_total",
			Help: "Reference grid regenerations after debounce.",
		}),
		SnapshotReuse: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "map_static_snapshot_reuse_total",
			Help: "Frames served from the baked static-layer raster.",
		}),
		gatherer: gatherer,
	}

	for _, c := range []prometheus.Collector{
		e.FrameDuration, e.TileFetches, e.GridRecomputes, e.SnapshotReuse,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ObserveFrame records one render pass duration.
func (e *Engine) ObserveFrame(d time.Duration) {
	if e == nil {
		return
	}
	e.FrameDuration.Observe(d.Seconds())
}

// TileResult records one tile fetch outcome.
func (e *Engine) TileResult(outcome string) {
	if e == nil {
		return
	}
	e.TileFetches.WithLabelValues(outcome).Inc()
}

// GridRecompute records one grid regeneration.
func (e *Engine) GridRecompute() {
	if e == nil {
		return
	}
	e.GridRecomputes.Inc()
}

// Handler serves the registered metrics over HTTP.
func (e *Engine) Handler() http.Handler {
	return promhttp.HandlerFor(e.gatherer, promhttp.HandlerOpts{})
}
