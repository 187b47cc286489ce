package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/playperu/millionaire/internal/millionaire"
)

const metricsNamespace = "millionaire"

// Metrics holds the Prometheus collectors for the service. Each instance
// owns its registry so tests can build several.
type Metrics struct {
	registry *prometheus.Registry

	GamesCreated    prometheus.Counter
	GamesFinished   *prometheus.CounterVec
	HelpsUsed       *prometheus.CounterVec
	PrizesPaid      prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		GamesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_created_total",
			Help:      "Games started.",
		}),
		GamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_finished_total",
			Help:      "Games finished, by final status.",
		}, []string{"status"}),
		HelpsUsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "helps_used_total",
			Help:      "Helps applied, by type.",
		}, []string{"type"}),
		PrizesPaid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "prizes_paid_total",
			Help:      "Sum of prizes credited to balances.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// GameUpdated counts committed transitions.
func (m *Metrics) GameUpdated(_ context.Context, u millionaire.Update) {
	switch {
	case u.Op == millionaire.OpCreate:
		m.GamesCreated.Inc()
	case u.Help != nil:
		m.HelpsUsed.WithLabelValues(string(u.Help.Type)).Inc()
	}
	if u.Game.Finished() {
		m.GamesFinished.WithLabelValues(string(u.Game.Status())).Inc()
	}
	if u.Credited {
		m.PrizesPaid.Add(float64(u.Game.Prize))
	}
}

// Middleware observes request duration labelled by the matched route
// pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
