package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/builderstore/pkg/host"
	"github.com/bft-labs/builderstore/pkg/log"
)

// Config holds configuration options for the metrics plugin.
type Config struct {
	// Addr is the listen address for /metrics. Empty collects metrics
	// without serving them.
	Addr string

	// ShutdownTimeout bounds the graceful HTTP shutdown.
	// Default: 5 seconds
	ShutdownTimeout time.Duration
}

// Plugin serves a Collector over HTTP.
type Plugin struct {
	host.BasePlugin

	cfg       Config
	collector *Collector

	mu   sync.Mutex
	addr string
}

// New creates a metrics plugin around c.
func New(cfg Config, c *Collector) *Plugin {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Plugin{cfg: cfg, collector: c}
}

// WithMetrics returns a host Option that registers a Collector for host
// events and serves it on cfg.Addr.
//
// Usage:
//
//	h, err := host.New(cfg, metrics.WithMetrics(metrics.Config{Addr: ":9464"}))
func WithMetrics(cfg Config) host.Option {
	c := NewCollector()
	return WithCollector(cfg, c)
}

// WithCollector is WithMetrics with a caller-owned collector.
func WithCollector(cfg Config, c *Collector) host.Option {
	return host.WithOptions(
		host.WithEventHandler(c),
		host.WithPlugin(New(cfg, c)),
	)
}

func (p *Plugin) Name() string { return "metrics" }

// Collector returns the collector the plugin serves.
func (p *Plugin) Collector() *Collector { return p.collector }

// Addr returns the bound listen address once initialized.
func (p *Plugin) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addr
}

// Handler returns the /metrics handler.
func (p *Plugin) Handler() http.Handler {
	return promhttp.HandlerFor(p.collector.Registry, promhttp.HandlerOpts{})
}

// Initialize binds the listen address and serves until the host stops.
func (p *Plugin) Initialize(_ context.Context, cfg host.PluginConfig) error {
	logger := log.OrNoop(cfg.Logger)
	if p.cfg.Addr == "" {
		logger.Debug("metrics collected but not served: no address configured")
		return nil
	}

	ln, err := net.Listen("tcp", p.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", p.cfg.Addr, err)
	}
	p.mu.Lock()
	p.addr = ln.Addr().String()
	p.mu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	cfg.Go(p.Name(), func(ctx context.Context) {
		errc := make(chan error, 1)
		go func() { errc <- srv.Serve(ln) }()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", log.Err(err))
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), p.cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown", log.Err(err))
			}
		}
	})
	logger.Info("serving metrics", log.String("addr", p.Addr()))
	return nil
}

var _ host.Plugin = (*Plugin)(nil)
