package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/event"
)

const metricsNamespace = "designable"

// Metrics exposes designer state to Prometheus.
//
// Gauges are refreshed by Sample, which must run on the application loop
// because selection and drag state are not safe to read from elsewhere.
// The HTTP handler only reads the collected values.
type Metrics struct {
	registry *prometheus.Registry
	designer *designer.Designer

	events  *prometheus.CounterVec
	reloads *prometheus.CounterVec

	workspaces    prometheus.Gauge
	nodes         prometheus.Gauge
	selected      prometheus.Gauge
	dragging      prometheus.Gauge
	subscriptions prometheus.Gauge
	handlerErrors prometheus.Gauge
	handlerPanics prometheus.Gauge

	dispose event.Disposer
}

// NewMetrics creates the collectors on a private registry and counts every
// event published on the designer's bus.
func NewMetrics(d *designer.Designer) (*Metrics, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		designer: d,
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "Events published on the designer bus.",
			},
			[]string{"topic"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "document_reloads_total",
				Help:      "Document reloads by result.",
			},
			[]string{"result"},
		),
		workspaces:    gauge("workspaces", "Open workspaces."),
		nodes:         gauge("tree_nodes", "Live nodes in the registry."),
		selected:      gauge("selected_nodes", "Selected nodes across all workspaces."),
		dragging:      gauge("dragging_nodes", "Nodes in the active drag."),
		subscriptions: gauge("bus_subscriptions", "Active bus subscriptions."),
		handlerErrors: gauge("bus_handler_errors", "Bus handlers that returned an error."),
		handlerPanics: gauge("bus_handler_panics", "Bus handlers that panicked."),
	}

	m.registry.MustRegister(
		m.events,
		m.reloads,
		m.workspaces,
		m.nodes,
		m.selected,
		m.dragging,
		m.subscriptions,
		m.handlerErrors,
		m.handlerPanics,
	)

	dispose, err := d.Bus().On("**", func(_ context.Context, ev any) error {
		if tp, ok := ev.(event.TopicProvider); ok {
			m.events.WithLabelValues(string(tp.EventTopic())).Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.dispose = dispose
	return m, nil
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Sample refreshes the gauges from the designer.
func (m *Metrics) Sample() {
	stats := m.designer.Bus().Stats()
	m.workspaces.Set(float64(m.designer.Workbench().Len()))
	m.nodes.Set(float64(m.designer.Registry().Len()))
	m.selected.Set(float64(len(m.designer.GetAllSelectedNodes())))
	m.dragging.Set(float64(len(m.designer.FindDraggingNodes())))
	m.subscriptions.Set(float64(stats.ActiveSubscriptions))
	m.handlerErrors.Set(float64(stats.HandlerErrors))
	m.handlerPanics.Set(float64(stats.HandlerPanics))
}

// RecordReload counts a document reload.
func (m *Metrics) RecordReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Close stops counting events.
func (m *Metrics) Close() {
	if m.dispose != nil {
		m.dispose()
		m.dispose = nil
	}
}
