// Package metrics exposes panebar activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"panebar/internal/diag"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one process. A nil *Metrics is a valid
// no-op recorder.
type Metrics struct {
	registry    *prometheus.Registry
	selections  *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	panes       *prometheus.GaugeVec
}

// New creates a registry with the panebar collectors plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panebar",
			Name:      "selections_total",
			Help:      "Committed pane selections.",
		}, []string{"manager"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panebar",
			Name:      "recovered_errors_total",
			Help:      "Errors recovered locally, by kind.",
		}, []string{"kind"}),
		panes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "panebar",
			Name:      "registered_panes",
			Help:      "Panes registered per manager.",
		}, []string{"manager"}),
	}

	m.registry.MustRegister(m.selections, m.diagnostics, m.panes)
	m.registry.MustRegister(prometheus.NewGoCollector())
	m.registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveSelection counts one committed selection.
func (m *Metrics) ObserveSelection(manager string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(manager).Inc()
}

// SetPanes records the number of registered panes for manager.
func (m *Metrics) SetPanes(manager string, n int) {
	if m == nil {
		return
	}
	m.panes.WithLabelValues(manager).Set(float64(n))
}

// ObserveDiagnostic counts one recovered error. It matches the signature
// expected by diag.WithObserver.
func (m *Metrics) ObserveDiagnostic(kind diag.Kind) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(string(kind)).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	if m == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
