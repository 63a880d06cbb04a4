package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/umputun/blog/app/enum"
)

// Metrics holds theme switch counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	events   *prometheus.CounterVec
	themes   *prometheus.CounterVec
	sessions prometheus.Gauge
}

// NewMetrics registers theme switch metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_toggle_events_total",
			Help: "Theme switch events received, by event type.",
		}, []string{"event"}),
		themes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_theme_changes_total",
			Help: "Theme cookie changes, by new theme.",
		}, []string{"theme"}),
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blog_toggle_sessions",
			Help: "Live theme switch sessions.",
		}),
	}
}

func (m *Metrics) event(ev enum.ToggleEvent) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(ev.String()).Inc()
}

func (m *Metrics) themeChanged(theme enum.Theme) {
	if m == nil {
		return
	}
	m.themes.WithLabelValues(theme.String()).Inc()
}

func (m *Metrics) liveSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
