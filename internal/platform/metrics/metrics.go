// internal/platform/metrics/metrics.go
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	uc "canteen/internal/application/usecase"
)

const namespace = "canteen"

// Registry owns the console's collectors. It implements usecase.Metrics.
type Registry struct {
	reg *prometheus.Registry

	cartOps       *prometheus.CounterVec
	stockWrites   *prometheus.CounterVec
	orderUpdates  *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

var _ uc.Metrics = (*Registry)(nil)

// New builds a registry with the process and Go runtime collectors attached.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart operations by kind.",
		}, []string{"op"}),
		stockWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_writes_total",
			Help:      "Stock ledger record writes during cart commits.",
		}, []string{"result"}),
		orderUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_updates_total",
			Help:      "Order status and priority writes.",
		}, []string{"op", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications emitted by level.",
		}, []string{"level"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.cartOps,
		r.stockWrites,
		r.orderUpdates,
		r.notifications,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// ============================================================
// usecase.Metrics
// ============================================================

func (r *Registry) CartOperation(op string) {
	r.cartOps.WithLabelValues(op).Inc()
}

func (r *Registry) StockWrites(written, failed int) {
	if written > 0 {
		r.stockWrites.WithLabelValues("ok").Add(float64(written))
	}
	if failed > 0 {
		r.stockWrites.WithLabelValues("failed").Add(float64(failed))
	}
}

func (r *Registry) OrderUpdate(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.orderUpdates.WithLabelValues(op, result).Inc()
}

// ============================================================
// Notifications
// ============================================================

// CountingNotifier counts notifications by level before passing them on.
type CountingNotifier struct {
	Next     uc.Notifier
	Registry *Registry
}

var _ uc.Notifier = CountingNotifier{}

func (n CountingNotifier) Notify(ctx context.Context, msg uc.Notification) {
	if n.Registry != nil {
		n.Registry.notifications.WithLabelValues(string(msg.Level)).Inc()
	}
	if n.Next != nil {
		n.Next.Notify(ctx, msg)
	}
}

// ============================================================
// HTTP
// ============================================================

// Middleware records request counts and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(code)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
