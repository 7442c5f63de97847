package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/lifecycle"
	"github.com/bft-labs/builderstore/pkg/log"
	"github.com/bft-labs/builderstore/pkg/store"
	"github.com/bft-labs/builderstore/pkg/views"
)

// Host runs the dashboard store and its plugins.
type Host struct {
	config    Config
	opts      options
	logger    log.Logger
	lifecycle *lifecycle.DefaultManager
	store     *dashboard.Store

	mu          sync.Mutex
	initialized []Plugin
	outlet      *views.Outlet
	stopped     bool
}

// New creates a Host in StateStopped. The store exists from here on and
// may be read before Start.
func New(cfg Config, opts ...Option) (*Host, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	storeOpts := []store.Option{store.WithLogger(o.logger.With(log.String("component", "store")))}
	if len(o.handlers) > 0 {
		storeOpts = append(storeOpts, store.WithEventHandler(o.handlers))
	}
	storeOpts = append(storeOpts, o.storeOpts...)

	return &Host{
		config:    cfg,
		opts:      o,
		logger:    o.logger,
		lifecycle: lifecycle.NewManager(o.logger, o.handlers),
		store:     dashboard.New(storeOpts...),
	}, nil
}

// Store returns the dashboard store.
func (h *Host) Store() *dashboard.Store { return h.store }

// Outlet returns the view outlet, or nil when WithViews was not given or
// the host is not running.
func (h *Host) Outlet() *views.Outlet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outlet
}

// Status returns the lifecycle state. Safe for concurrent use.
func (h *Host) Status() State { return h.lifecycle.State() }

// Start initializes plugins and mounts the view outlet. ctx bounds the
// lifetime of background work.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return ErrStopped
	}
	if !h.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := h.lifecycle.TransitionTo(StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	h.lifecycle.SetCancel(cancel)

	cfg := PluginConfig{
		Store:    h.store,
		StateDir: h.config.StateDir,
		Logger:   h.logger,
		Go: func(name string, fn func(ctx context.Context)) {
			h.goWorker(runCtx, name, fn)
		},
	}
	for _, p := range h.opts.plugins {
		pc := cfg
		pc.Logger = h.logger.With(log.String("plugin", p.Name()))
		if err := p.Initialize(runCtx, pc); err != nil {
			h.logger.Error("plugin initialization failed", log.String("plugin", p.Name()), log.Err(err))
			h.lifecycle.Cancel()
			_ = h.lifecycle.WaitWithTimeout(h.config.ShutdownTimeout)
			h.shutdownPlugins()
			_ = h.lifecycle.TransitionTo(StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("initialize %s: %w", p.Name(), err)
		}
		h.initialized = append(h.initialized, p)
		h.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	if h.opts.views != nil {
		h.outlet = views.NewOutlet(h.opts.views, h.store, h.logger.With(log.String("component", "views")))
	}

	return h.lifecycle.TransitionTo(StateRunning, "plugins initialized")
}

// Stop cancels background work, shuts plugins down in reverse order and
// closes the store. A stopped host cannot be started again.
// Returns ErrShutdownTimeout if background work outlived the timeout.
func (h *Host) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.lifecycle.CanStop() {
		return ErrNotRunning
	}
	if err := h.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		return err
	}

	h.lifecycle.Cancel()
	err := h.lifecycle.WaitWithTimeout(h.config.ShutdownTimeout)
	if errors.Is(err, lifecycle.ErrShutdownTimeout) {
		err = ErrShutdownTimeout
	}

	if h.outlet != nil {
		h.outlet.Close()
		h.outlet = nil
	}
	h.shutdownPlugins()
	h.store.Close()
	h.stopped = true

	if err != nil {
		_ = h.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
	} else {
		_ = h.lifecycle.TransitionTo(StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins shuts initialized plugins down in reverse order.
func (h *Host) shutdownPlugins() {
	ctx := context.Background()
	for i := len(h.initialized) - 1; i >= 0; i-- {
		p := h.initialized[i]
		if err := p.Shutdown(ctx); err != nil {
			h.logger.Error("plugin shutdown failed", log.String("plugin", p.Name()), log.Err(err))
			continue
		}
		h.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
	h.initialized = nil
}

// goWorker runs fn as tracked background work.
func (h *Host) goWorker(ctx context.Context, name string, fn func(ctx context.Context)) {
	h.lifecycle.AddWorker()
	go func() {
		defer h.lifecycle.WorkerDone()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("worker panicked", log.String("worker", name), log.Any("panic", r))
			}
		}()
		fn(ctx)
	}()
}
