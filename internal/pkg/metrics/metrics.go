package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/labstack/echo/v4"
)

// Metrics holds the agent's Prometheus collectors. A nil *Metrics is valid
// and turns every observation into a no-op, so tests can skip wiring it.
type Metrics struct {
	registry *prometheus.Registry

	PresenceWrites      prometheus.Counter
	PresenceWriteErrors prometheus.Counter
	SuppressedWrites    prometheus.Counter
	RetriesExhausted    prometheus.Counter
	FixesAccepted       prometheus.Counter
	FixesDropped        prometheus.Counter
	AlertsEmitted       prometheus.Counter
	ActiveConsumers     prometheus.Gauge
	MonitoringActive    prometheus.Gauge
}

// New creates and registers the agent collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		PresenceWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_presence_writes_total",
			Help: "Presence records written to the directory",
		}),
		PresenceWriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_presence_write_errors_total",
			Help: "Directory writes that failed after retries",
		}),
		SuppressedWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_presence_writes_suppressed_total",
			Help: "Fixes debounced away before reaching the directory",
		}),
		RetriesExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_presence_retries_exhausted_total",
			Help: "Write attempts that ran out of retry budget",
		}),
		FixesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_location_fixes_accepted_total",
			Help: "Position fixes that passed the displacement gate",
		}),
		FixesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_location_fixes_dropped_total",
			Help: "Position fixes dropped under the displacement threshold",
		}),
		AlertsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpa_proximity_alerts_total",
			Help: "Proximity alerts emitted to counterparts",
		}),
		ActiveConsumers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jumpa_location_consumers",
			Help: "Active logical consumers of the location subscription",
		}),
		MonitoringActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jumpa_monitoring_active",
			Help: "1 while the discovery listener is registered",
		}),
	}

	registry.MustRegister(
		m.PresenceWrites,
		m.PresenceWriteErrors,
		m.SuppressedWrites,
		m.RetriesExhausted,
		m.FixesAccepted,
		m.FixesDropped,
		m.AlertsEmitted,
		m.ActiveConsumers,
		m.MonitoringActive,
	)

	return m
}

// Handler returns the echo handler serving the /metrics endpoint
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// IncPresenceWrites is nil-safe
func (m *Metrics) IncPresenceWrites() {
	if m != nil {
		m.PresenceWrites.Inc()
	}
}

// IncPresenceWriteErrors is nil-safe
func (m *Metrics) IncPresenceWriteErrors() {
	if m != nil {
		m.PresenceWriteErrors.Inc()
	}
}

// IncSuppressedWrites is nil-safe
func (m *Metrics) IncSuppressedWrites() {
	if m != nil {
		m.SuppressedWrites.Inc()
	}
}

// IncRetriesExhausted is nil-safe
func (m *Metrics) IncRetriesExhausted() {
	if m != nil {
		m.RetriesExhausted.Inc()
	}
}

// IncFixesAccepted is nil-safe
func (m *Metrics) IncFixesAccepted() {
	if m != nil {
		m.FixesAccepted.Inc()
	}
}

// IncFixesDropped is nil-safe
func (m *Metrics) IncFixesDropped() {
	if m != nil {
		m.FixesDropped.Inc()
	}
}

// IncAlertsEmitted is nil-safe
func (m *Metrics) IncAlertsEmitted() {
	if m != nil {
		m.AlertsEmitted.Inc()
	}
}

// SetActiveConsumers is nil-safe
func (m *Metrics) SetActiveConsumers(n int) {
	if m != nil {
		m.ActiveConsumers.Set(float64(n))
	}
}

// SetMonitoringActive is nil-safe
func (m *Metrics) SetMonitoringActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.MonitoringActive.Set(1)
	} else {
		m.MonitoringActive.Set(0)
	}
}
