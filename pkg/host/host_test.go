package host

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/store"
	"github.com/bft-labs/builderstore/pkg/views"
)

type recordingPlugin struct {
	BasePlugin
	name    string
	log     *[]string
	initErr error
	worker  bool
	cfg     PluginConfig
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(ctx context.Context, cfg PluginConfig) error {
	*p.log = append(*p.log, "init "+p.name)
	p.cfg = cfg
	if p.initErr != nil {
		return p.initErr
	}
	if p.worker {
		cfg.Go(p.name, func(ctx context.Context) {
			<-ctx.Done()
		})
	}
	return nil
}

func (p *recordingPlugin) Shutdown(context.Context) error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

type recordingHandler struct {
	BaseEventHandler
	mu       sync.Mutex
	states   []State
	changed  int
	failures int
}

func (h *recordingHandler) OnStateChange(e StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e.Current)
}

func (h *recordingHandler) OnDispatch(e store.DispatchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e.Changed {
		h.changed++
	}
}

func (h *recordingHandler) OnError(*store.DispatchError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures++
}

func TestHost_StartStop(t *testing.T) {
	var calls []string
	a := &recordingPlugin{name: "a", log: &calls, worker: true}
	b := &recordingPlugin{name: "b", log: &calls}
	rec := &recordingHandler{}

	h, err := New(Config{StateDir: t.TempDir()},
		WithPlugin(a), WithPlugin(b), WithEventHandler(rec))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if h.Status() != StateStopped {
		t.Fatalf("Status() = %s, want Stopped", h.Status())
	}

	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if h.Status() != StateRunning {
		t.Fatalf("Status() = %s, want Running", h.Status())
	}
	if err := h.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
	if a.cfg.Store != h.Store() {
		t.Error("plugin got a different store")
	}

	h.Store().Dispatch(dashboard.RouteChanged("/origins"))
	h.Store().Dispatch(store.NewAction(dashboard.KindRouteChanged, 42))

	if err := h.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if h.Status() != StateStopped {
		t.Errorf("Status() = %s, want Stopped", h.Status())
	}

	want := []string{"init a", "init b", "shutdown b", "shutdown a"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.changed != 1 || rec.failures != 1 {
		t.Errorf("changed = %d, failures = %d, want 1 and 1", rec.changed, rec.failures)
	}
	wantStates := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	if len(rec.states) != len(wantStates) {
		t.Fatalf("states = %v, want %v", rec.states, wantStates)
	}
}

func TestHost_StopClosesStore(t *testing.T) {
	h, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() before Start error = %v, want ErrNotRunning", err)
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := h.Stop(); err != nil {
		t.Fatal(err)
	}

	before := h.Store().GetState()
	h.Store().Dispatch(dashboard.SideNavToggle())
	if h.Store().GetState() != before {
		t.Error("closed store accepted a dispatch")
	}
	if err := h.Start(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("Start() after Stop error = %v, want ErrStopped", err)
	}
}

func TestHost_PluginInitFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	a := &recordingPlugin{name: "a", log: &calls, worker: true}
	b := &recordingPlugin{name: "b", log: &calls, initErr: boom}
	c := &recordingPlugin{name: "c", log: &calls}

	h, err := New(Config{ShutdownTimeout: time.Second}, WithPlugin(a), WithPlugin(b), WithPlugin(c))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, want boom", err)
	}
	if h.Status() != StateCrashed {
		t.Errorf("Status() = %s, want Crashed", h.Status())
	}

	want := []string{"init a", "init b", "shutdown a"}
	if len(calls) != len(want) || calls[2] != want[2] {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestHost_ShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	p := &stuckPlugin{release: release}
	h, err := New(Config{ShutdownTimeout: 20 * time.Millisecond}, WithPlugin(p))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := h.Stop(); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("Stop() error = %v, want ErrShutdownTimeout", err)
	}
	if h.Status() != StateCrashed {
		t.Errorf("Status() = %s, want Crashed", h.Status())
	}
}

type stuckPlugin struct {
	BasePlugin
	release chan struct{}
}

func (*stuckPlugin) Name() string { return "stuck" }

func (p *stuckPlugin) Initialize(_ context.Context, cfg PluginConfig) error {
	cfg.Go("stuck", func(context.Context) { <-p.release })
	return nil
}

func TestHost_Views(t *testing.T) {
	h, err := New(Config{}, WithViews(views.DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	if h.Outlet() != nil {
		t.Error("outlet mounted before Start")
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	h.Store().Dispatch(dashboard.RouteChanged("/packages"))
	if v := h.Outlet().Current(); v == nil || v.Kind() != views.KindPackages {
		t.Errorf("current view = %v", v)
	}

	if err := h.Stop(); err != nil {
		t.Fatal(err)
	}
	if h.Outlet() != nil {
		t.Error("outlet survived Stop")
	}
}

func TestConfig_Validate(t *testing.T) {
	if _, err := New(Config{ShutdownTimeout: -time.Second}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}
