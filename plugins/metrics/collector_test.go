package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/host"
	"github.com/bft-labs/builderstore/pkg/store"
)

func TestCollector_CountsDispatches(t *testing.T) {
	c := NewCollector()
	h, err := host.New(host.Config{}, WithCollector(Config{}, c))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	st := h.Store()
	st.Dispatch(dashboard.RouteChanged("/origins"))
	st.Dispatch(dashboard.RouteChanged("/origins"))
	st.Dispatch(store.NewAction(dashboard.KindRouteChanged, 7))
	st.Subscribe(func(*store.Tree) { panic("render failed") })
	st.Dispatch(dashboard.SideNavToggle())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"route changed", testutil.ToFloat64(c.dispatches.WithLabelValues(dashboard.KindRouteChanged, "true")), 1},
		{"route unchanged", testutil.ToFloat64(c.dispatches.WithLabelValues(dashboard.KindRouteChanged, "false")), 2},
		{"reducer panic", testutil.ToFloat64(c.errors.WithLabelValues(dashboard.KindRouteChanged, "reducer_panic")), 1},
		{"subscriber panic", testutil.ToFloat64(c.errors.WithLabelValues(dashboard.KindSideNavToggle, "subscriber_panic")), 1},
		{"version", testutil.ToFloat64(c.version), 2},
		{"host running", testutil.ToFloat64(c.state), float64(host.StateRunning)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if err := h.Stop(); err != nil {
		t.Fatal(err)
	}
	st.Dispatch(dashboard.SideNavToggle())
	if got := testutil.ToFloat64(c.errors.WithLabelValues(dashboard.KindSideNavToggle, "closed")); got != 1 {
		t.Errorf("closed errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.state); got != float64(host.StateStopped) {
		t.Errorf("host state = %v, want stopped", got)
	}
}

func TestPlugin_Handler(t *testing.T) {
	c := NewCollector()
	c.OnDispatch(store.DispatchEvent{Kind: "PING", Changed: true, Version: 3})

	srv := httptest.NewServer(New(Config{}, c).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`builderstore_store_dispatches_total{changed="true",kind="PING"} 1`,
		`builderstore_store_version 3`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestPlugin_Serves(t *testing.T) {
	p := New(Config{Addr: "127.0.0.1:0"}, NewCollector())
	h, err := host.New(host.Config{}, host.WithEventHandler(p.Collector()), host.WithPlugin(p))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get("http://" + p.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	if err := h.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, err := http.Get("http://" + p.Addr() + "/metrics"); err == nil {
		t.Error("server still serving after Stop")
	}
}
