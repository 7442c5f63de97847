// Package app wires the host, its plugins and the action script together
// for the builderstore command.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bft-labs/builderstore/internal/cliconfig"
	"github.com/bft-labs/builderstore/internal/script"
	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/host"
	"github.com/bft-labs/builderstore/pkg/log"
	"github.com/bft-labs/builderstore/pkg/store"
	"github.com/bft-labs/builderstore/pkg/views"
	"github.com/bft-labs/builderstore/plugins/metrics"
	"github.com/bft-labs/builderstore/plugins/sessionwatcher"
)

// Run starts a host configured from cfg, replays cfg.Script, and then
// either returns (cfg.Once) or waits for ctx to be canceled. cfg must
// already be validated.
func Run(ctx context.Context, cfg cliconfig.Config, zl zerolog.Logger, opts ...host.Option) error {
	logger := log.NewZerologAdapterWithLogger(zl)

	var actions []store.Action
	if cfg.Script != "" {
		var err error
		if actions, err = script.Load(cfg.Script); err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		logger.Info("script loaded", log.String("path", cfg.Script), log.Int("actions", len(actions)))
	}

	hostOpts := []host.Option{
		host.WithLogger(logger),
		host.WithViews(views.DefaultRegistry()),
		sessionwatcher.WithSessionWatcher(sessionwatcher.Config{
			Watch:         cfg.Watch,
			DebounceDelay: cfg.DebounceDelay,
		}),
		metrics.WithMetrics(metrics.Config{Addr: cfg.MetricsAddr}),
	}
	h, err := host.New(host.Config{
		StateDir:        cfg.StateDir,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, append(hostOpts, opts...)...)
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}

	if err := h.Start(ctx); err != nil {
		return fmt.Errorf("start host: %w", err)
	}

	st := h.Store()
	unsub := st.Subscribe(func(t *store.Tree) {
		logger.Info("state",
			log.Uint64("version", st.Version()),
			log.String("route", dashboard.UIOf(t).Route),
			log.Bool("signed_in", dashboard.SessionOf(t).SignedIn),
			log.Int("notifications", len(dashboard.NotificationsOf(t).Items)),
		)
	})

	runErr := script.Play(ctx, st, actions, cfg.StepDelay, func(i int, a store.Action) {
		logger.Debug("step", log.Int("step", i+1), log.String("kind", a.Kind))
	})
	if runErr == nil && !cfg.Once {
		logger.Info("running, press Ctrl+C to stop")
		<-ctx.Done()
	}
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	unsub()

	if err := h.Stop(); err != nil {
		return errors.Join(runErr, fmt.Errorf("stop host: %w", err))
	}
	return runErr
}
