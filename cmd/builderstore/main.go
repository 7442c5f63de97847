package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/builderstore"
	"github.com/bft-labs/builderstore/internal/cliconfig"
	"github.com/bft-labs/builderstore/pkg/dashboard"
)

const helpDescription = `
Run the build dashboard state store headless.

The store holds the dashboard state (session, origins, packages, projects,
builds, notifications and ui). Actions are replayed from a TOML or JSON
script; every accepted transition is logged. The session is persisted in
the state directory and, with --watch, reloaded when another process edits
it. Metrics are served on --metrics-addr.

Configuration is read from $HOME/.builderstore/config.toml, then
BUILDERSTORE_* environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  builderstore --script scripts/demo.toml --once
  builderstore --script scripts/demo.toml --step-delay 1s --watch --metrics-addr :9464
  builderstore kinds
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	if err := newRootCommand(&cfg).Execute(); err != nil {
		l := cliconfig.Logger(cfg.Level())
		l.Error().Err(err).Msg("builderstore")
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Flags are bound to cfg.
func newRootCommand(cfg *cliconfig.Config) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "builderstore",
		Short:         "Run the build dashboard state store",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := builderstore.Logger(*cfg)
			log.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return builderstore.Run(ctx, *cfg)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.builderstore/config.toml)")
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for session.json (default: $HOME/.builderstore/state)")
	root.Flags().StringVar(&cfg.Script, "script", cfg.Script, "action script to replay (.toml or .json)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the session when session.json changes on disk")
	root.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "delay before reloading a changed session file")
	root.Flags().DurationVar(&cfg.StepDelay, "step-delay", cfg.StepDelay, "delay between script steps")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "maximum time to wait for background work on exit")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "exit after the script has been replayed")

	root.AddCommand(&cobra.Command{
		Use:   "kinds",
		Short: "List the action kinds the dashboard handles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range dashboard.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	})

	return root
}
