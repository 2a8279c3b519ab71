package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"foxyweb/events"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foxyweb"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP requests by route pattern, method and status
	RequestsTotal *prometheus.CounterVec
	// HTTP request latency by route pattern
	RequestDuration *prometheus.HistogramVec

	// Economy activity derived from bus events
	CakesCredited  *prometheus.CounterVec
	CakesDebited   *prometheus.CounterVec
	ItemsPurchased *prometheus.CounterVec
	EventsTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests handled",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route"},
		),
		CakesCredited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cakes_credited_total",
				Help:      "Cakes credited to users",
			},
			[]string{"type"},
		),
		CakesDebited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cakes_debited_total",
				Help:      "Cakes debited from users",
			},
			[]string{"type"},
		),
		ItemsPurchased: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_purchased_total",
				Help:      "Store purchases by item type",
			},
			[]string{"item_type"},
		),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Domain events emitted",
			},
			[]string{"event_type"},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.CakesCredited,
		m.CakesDebited,
		m.ItemsPurchased,
		m.EventsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry holding every collector
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SubscribeTo records economy counters from bus events
func (m *Metrics) SubscribeTo(bus *events.Bus) {
	bus.SubscribeAll(m.handleEvent)
}

func (m *Metrics) handleEvent(ctx context.Context, event events.Event) {
	m.EventsTotal.WithLabelValues(string(event.Type())).Inc()

	switch e := event.(type) {
	case events.BalanceChangeEvent:
		if e.ChangeAmount >= 0 {
			m.CakesCredited.WithLabelValues(string(e.TransactionType)).Add(float64(e.ChangeAmount))
		} else {
			m.CakesDebited.WithLabelValues(string(e.TransactionType)).Add(float64(-e.ChangeAmount))
		}
	case events.ItemPurchasedEvent:
		m.ItemsPurchased.WithLabelValues(string(e.ItemType)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
