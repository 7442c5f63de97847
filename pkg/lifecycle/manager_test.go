package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recorder struct {
	changes [][2]State
}

func (r *recorder) OnStateChange(prev, cur State, _ string) {
	r.changes = append(r.changes, [2]State{prev, cur})
}

func TestManager_FullCycle(t *testing.T) {
	rec := &recorder{}
	m := NewManager(nil, rec)

	if !m.CanStart() || m.CanStop() {
		t.Fatal("new manager should be startable and not stoppable")
	}
	for _, s := range []State{StateStarting, StateRunning, StateStopping, StateStopped} {
		if err := m.TransitionTo(s, "test"); err != nil {
			t.Fatalf("TransitionTo(%s) error = %v", s, err)
		}
	}
	if len(rec.changes) != 4 || rec.changes[3] != [2]State{StateStopping, StateStopped} {
		t.Errorf("changes = %v", rec.changes)
	}
}

func TestManager_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		path []State
		bad  State
		want error
	}{
		{"stopped to running", nil, StateRunning, ErrNotRunning},
		{"running to starting", []State{StateStarting, StateRunning}, StateStarting, ErrAlreadyRunning},
		{"crashed to running", []State{StateStarting, StateCrashed}, StateRunning, ErrNotRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil, nil)
			for _, s := range tt.path {
				if err := m.TransitionTo(s, ""); err != nil {
					t.Fatal(err)
				}
			}
			before := m.State()
			err := m.TransitionTo(tt.bad, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if m.State() != before {
				t.Errorf("state changed to %s on a refused transition", m.State())
			}
		})
	}
}

func TestManager_WaitWithTimeout(t *testing.T) {
	m := NewManager(nil, nil)
	m.AddWorker()
	if err := m.WaitWithTimeout(10 * time.Millisecond); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("error = %v, want ErrShutdownTimeout", err)
	}
	m.WorkerDone()
	if err := m.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("error = %v", err)
	}
}

func TestManager_Cancel(t *testing.T) {
	m := NewManager(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	m.SetCancel(cancel)
	m.Cancel()
	m.Cancel()
	if ctx.Err() == nil {
		t.Error("context not canceled")
	}
}

func TestBackoff(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, 300*time.Millisecond)
	for i, want := range []time.Duration{100, 200, 300, 300} {
		want *= time.Millisecond
		d := b.Next()
		if d < want*8/10 || d > want*12/10 {
			t.Errorf("step %d: delay %v outside ±20%% of %v", i, d, want)
		}
	}
	b.Reset()
	if b.Current() != 100*time.Millisecond {
		t.Errorf("Current() = %v after Reset", b.Current())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewBackoff(time.Hour, time.Hour).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v", err)
	}
}
