// Package metrics holds the Prometheus instruments of the bot.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Rabscootle/internal/logger"
)

// Outcome labels for interactions.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeUnknown = "unknown"
)

// Metrics holds all Prometheus metrics for the bot. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	Interactions *prometheus.CounterVec // labels: command, outcome
	Autocomplete *prometheus.CounterVec // labels: command
	MarketFetch  *prometheus.HistogramVec
}

// New registers and returns all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rabscootle_interactions_total",
			Help: "Command interactions handled, by command and outcome",
		}, []string{"command", "outcome"}),
		Autocomplete: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rabscootle_autocomplete_total",
			Help: "Autocomplete requests answered, by command",
		}, []string{"command"}),
		MarketFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rabscootle_market_fetch_seconds",
			Help:    "Latency of market-data requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.Interactions, m.Autocomplete, m.MarketFetch)
	return m
}

func (m *Metrics) ObserveInteraction(command, outcome string) {
	if m == nil {
		return
	}
	m.Interactions.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) ObserveAutocomplete(command string) {
	if m == nil {
		return
	}
	m.Autocomplete.WithLabelValues(command).Inc()
}

func (m *Metrics) ObserveFetch(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.MarketFetch.WithLabelValues(kind).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	log := logger.New("metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
