// Package sessionwatcher keeps the dashboard session on disk.
//
// On Initialize the saved session is restored into the store. Every later
// change of the session slice is saved. With Watch enabled the session
// file is also watched, and edits made by other processes (a second
// dashboard signing in or out) are dispatched as SESSION_RESTORED.
package sessionwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/host"
	"github.com/bft-labs/builderstore/pkg/lifecycle"
	"github.com/bft-labs/builderstore/pkg/log"
	"github.com/bft-labs/builderstore/pkg/persist"
	"github.com/bft-labs/builderstore/pkg/store"
)

// Config holds configuration options for the session watcher plugin.
type Config struct {
	// Watch enables reloading on external edits.
	Watch bool

	// DebounceDelay is how long to wait after a file event before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// RetryInterval is the first delay between reload attempts when the
	// file cannot be parsed. Default: 50 milliseconds
	RetryInterval time.Duration

	// MaxRetries bounds reload attempts per event. Default: 3
	MaxRetries int
}

// DefaultConfig returns a Config with watching enabled.
func DefaultConfig() Config {
	return Config{
		Watch:         true,
		DebounceDelay: 100 * time.Millisecond,
		RetryInterval: 50 * time.Millisecond,
		MaxRetries:    3,
	}
}

// Plugin implements session persistence.
type Plugin struct {
	cfg Config

	mu       sync.Mutex
	repo     persist.Repository
	st       *dashboard.Store
	logger   log.Logger
	unsub    store.Unsubscribe
	saved    dashboard.Session
	debounce *time.Timer
	closed   bool

	newWatcher func() (*fsnotify.Watcher, error)
}

// New creates a session watcher plugin.
func New(cfg Config) *Plugin {
	d := DefaultConfig()
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = d.DebounceDelay
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = d.RetryInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = d.MaxRetries
	}
	return &Plugin{cfg: cfg, newWatcher: fsnotify.NewWatcher}
}

func (p *Plugin) Name() string { return "sessionwatcher" }

// Initialize restores the saved session and starts saving changes.
func (p *Plugin) Initialize(ctx context.Context, cfg host.PluginConfig) error {
	logger := log.OrNoop(cfg.Logger)
	if cfg.StateDir == "" {
		logger.Warn("session watcher disabled: no state directory configured")
		return nil
	}

	repo := persist.NewFileRepository(cfg.StateDir)
	snap, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	p.mu.Lock()
	p.repo = repo
	p.st = cfg.Store
	p.logger = logger
	p.saved = snap.Session
	p.closed = false
	p.mu.Unlock()

	if snap.Session != (dashboard.Session{}) {
		cfg.Store.Dispatch(dashboard.SessionRestored(snap.Session))
		logger.Info("session restored", log.String("user", snap.Session.Username))
	}

	var watcher *fsnotify.Watcher
	if p.cfg.Watch {
		if watcher, err = p.watch(cfg.StateDir); err != nil {
			return err
		}
	}

	unsub := cfg.Store.Subscribe(p.onState)
	p.mu.Lock()
	p.unsub = unsub
	p.mu.Unlock()

	if watcher != nil {
		cfg.Go(p.Name(), func(ctx context.Context) {
			p.watchLoop(ctx, watcher)
		})
		logger.Info("watching session file", log.String("path", repo.Path()))
	}
	return nil
}

// watch returns a watcher on dir, creating dir if needed.
func (p *Plugin) watch(dir string) (*fsnotify.Watcher, error) {
	newWatcher := p.newWatcher
	if newWatcher == nil {
		newWatcher = fsnotify.NewWatcher
	}
	watcher, err := newWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return watcher, nil
}

// Shutdown stops saving and cancels a pending reload.
func (p *Plugin) Shutdown(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.debounce != nil {
		p.debounce.Stop()
		p.debounce = nil
	}
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	return nil
}

// onState saves the session whenever it differs from what is on disk.
func (p *Plugin) onState(t *store.Tree) {
	s := dashboard.SessionOf(t)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || *s == p.saved {
		return
	}

	snap := persist.Snapshot{Session: *s, SavedAt: time.Now().UTC()}
	if err := p.repo.Save(context.Background(), snap); err != nil {
		p.logger.Error("failed to save session", log.Err(err))
		return
	}
	p.saved = *s
	p.logger.Debug("session saved", log.Bool("signed_in", s.SignedIn))
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != persist.FileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.scheduleReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) scheduleReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.cfg.DebounceDelay, func() {
		p.reload(ctx)
	})
}

// reload reads the file and dispatches its session. The writer may still
// be mid-rename, so parse failures are retried with backoff.
func (p *Plugin) reload(ctx context.Context) {
	backoff := lifecycle.NewBackoff(p.cfg.RetryInterval, 10*p.cfg.RetryInterval)

	var snap persist.Snapshot
	var err error
	for attempt := 0; attempt < p.cfg.MaxRetries; attempt++ {
		if snap, err = p.repo.Load(ctx); err == nil {
			break
		}
		if backoff.Wait(ctx) != nil {
			return
		}
	}
	if err != nil {
		p.logger.Error("failed to reload session", log.Err(err), log.Int("attempts", p.cfg.MaxRetries))
		return
	}

	p.mu.Lock()
	if p.closed || snap.Session == p.saved {
		p.mu.Unlock()
		return
	}
	p.saved = snap.Session
	p.mu.Unlock()

	p.logger.Info("session changed on disk", log.String("user", snap.Session.Username))
	p.st.Dispatch(dashboard.SessionRestored(snap.Session))
}

var _ host.Plugin = (*Plugin)(nil)
