// Package metrics expone métricas Prometheus del ledger y de la API HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
)

const namespace = "lager"

var _ inventory.Observer = (*Metrics)(nil)

// Metrics registro propio (no el global) con los contadores de la app.
type Metrics struct {
	registry *prometheus.Registry

	LotsReceived  prometheus.Counter
	UnitsReceived prometheus.Counter
	SalesRecorded prometheus.Counter
	UnitsSold     prometheus.Counter
	SalesRejected *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New crea y registra todas las métricas.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		LotsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lots_received_total",
			Help: "Recepciones registradas (un lote por recepción)",
		}),
		UnitsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "units_received_total",
			Help: "Unidades recibidas",
		}),
		SalesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_total",
			Help: "Ventas registradas",
		}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "units_sold_total",
			Help: "Unidades vendidas",
		}),
		SalesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_rejected_total",
			Help: "Ventas rechazadas por motivo",
		}, []string{"reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Peticiones HTTP por método, ruta y status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Latencia de peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registry.MustRegister(
		m.LotsReceived, m.UnitsReceived, m.SalesRecorded, m.UnitsSold,
		m.SalesRejected, m.HTTPRequests, m.HTTPDuration,
	)
	return m
}

// LotReceived implementa inventory.Observer.
func (m *Metrics) LotReceived(_ string, quantity int) {
	m.LotsReceived.Inc()
	m.UnitsReceived.Add(float64(quantity))
}

// SaleRecorded implementa inventory.Observer.
func (m *Metrics) SaleRecorded(_ string, quantity int) {
	m.SalesRecorded.Inc()
	m.UnitsSold.Add(float64(quantity))
}

// SaleRejected implementa inventory.Observer.
func (m *Metrics) SaleRejected(reason string) {
	m.SalesRejected.WithLabelValues(reason).Inc()
}

// ObserveHTTP registra una petición. route es el patrón (/api/stock/:code), no el path real.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler handler HTTP para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
