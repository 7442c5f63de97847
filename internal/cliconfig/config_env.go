package cliconfig

import "os"

// EnvPrefix prefixes every environment variable builderstore reads.
const EnvPrefix = "BUILDERSTORE_"

// ApplyEnvConfig applies BUILDERSTORE_* variables to cfg, except for flags
// in changed.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("state-dir", env("STATE_DIR"), &cfg.StateDir)
	s.setString("script", env("SCRIPT"), &cfg.Script)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("metrics-addr", env("METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setDuration("debounce", env("DEBOUNCE_DELAY"), &cfg.DebounceDelay); err != nil {
		return err
	}
	if err := s.setDuration("step-delay", env("STEP_DELAY"), &cfg.StepDelay); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", env("SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", env("WATCH"), &cfg.Watch)
	s.setBoolFromString("once", env("ONCE"), &cfg.Once)
	return nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}
