package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the render loop does. Each instance owns its registry
// so tests and multiple controllers never collide.
type Metrics struct {
	reg *prometheus.Registry

	frames        *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	renderPanics  *prometheus.CounterVec
	pageSwitches  prometheus.Counter
	resizes       prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		frames: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdash_frames_total",
			Help: "Loop iterations by controller mode",
		}, []string{"mode"}),
		renderSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostdash_page_render_seconds",
			Help:    "Time spent rendering one page frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"page"}),
		renderPanics: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdash_page_render_panics_total",
			Help: "Page renders that panicked and were recovered",
		}, []string{"page"}),
		pageSwitches: f.NewCounter(prometheus.CounterOpts{
			Name: "hostdash_page_switches_total",
			Help: "Accepted page selection keys that changed the active page",
		}),
		resizes: f.NewCounter(prometheus.CounterOpts{
			Name: "hostdash_resizes_total",
			Help: "Terminal geometry changes acknowledged",
		}),
	}
}

// WriteTextfile dumps every metric in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) frame(mode Mode) { m.frames.WithLabelValues(mode.String()).Inc() }

func (m *Metrics) rendered(page string, d time.Duration) {
	m.renderSeconds.WithLabelValues(page).Observe(d.Seconds())
}

func (m *Metrics) panicked(page string) { m.renderPanics.WithLabelValues(page).Inc() }
