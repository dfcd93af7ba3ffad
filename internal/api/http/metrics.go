package http

import (
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSource is where the exporter reads the board counters from.
type MetricsSource interface {
	Metrics() service.MetricsSnapshot
}

// MetricsHandler exposes the board counters in Prometheus text format.
type MetricsHandler struct {
	registry *prometheus.Registry
}

// NewMetricsHandler builds a registry whose collectors read from source on
// every scrape. gauges adds point-in-time values such as open drag sessions,
// keyed by metric name.
func NewMetricsHandler(namespace string, source MetricsSource, gauges map[string]func() float64) *MetricsHandler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	counters := []struct {
		name, help string
		value      func(service.MetricsSnapshot) int64
	}{
		{"projects_created_total", "Projects added to the board.", func(s service.MetricsSnapshot) int64 { return s.ProjectsCreated }},
		{"projects_moved_total", "Moves that changed a project's status.", func(s service.MetricsSnapshot) int64 { return s.ProjectsMoved }},
		{"move_noops_total", "Moves of unknown projects or to the current status.", func(s service.MetricsSnapshot) int64 { return s.MoveNoops }},
		{"rejected_requests_total", "Creation requests that failed validation.", func(s service.MetricsSnapshot) int64 { return s.RejectedRequests }},
		{"notifications_total", "Snapshots delivered by the project store.", func(s service.MetricsSnapshot) int64 { return s.Notifications }},
		{"listener_failures_total", "Listeners that panicked during delivery.", func(s service.MetricsSnapshot) int64 { return s.ListenerFailures }},
	}
	for _, c := range counters {
		value := c.value
		reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      c.name,
			Help:      c.help,
		}, func() float64 { return float64(value(source.Metrics())) }))
	}

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "move_noop_rate_percent",
		Help:      "Share of move requests that changed nothing.",
	}, func() float64 { return source.Metrics().NoopRate() }))

	for name, fn := range gauges {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      "Current " + name + ".",
		}, fn))
	}

	return &MetricsHandler{registry: reg}
}

func (h *MetricsHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
}
