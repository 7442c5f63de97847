package views

import (
	"errors"
	"sync"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/log"
	"github.com/bft-labs/builderstore/pkg/store"
)

// Outlet keeps one view mounted for the route in the ui slice.
type Outlet struct {
	reg    *Registry
	src    Source
	logger log.Logger
	unsub  store.Unsubscribe

	mu      sync.Mutex
	started bool
	route   string
	current View
}

// NewOutlet mounts the view for the current route and remounts whenever
// the route changes. Routes with no registered view leave the outlet empty.
func NewOutlet(reg *Registry, src Source, logger log.Logger) *Outlet {
	o := &Outlet{reg: reg, src: src, logger: log.OrNoop(logger)}
	o.follow(src.GetState())
	o.unsub = src.Subscribe(o.follow)
	return o
}

func (o *Outlet) follow(t *store.Tree) {
	ui := dashboard.UIOf(t)
	if ui == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started && ui.Route == o.route {
		return
	}
	o.started = true
	o.route = ui.Route
	if o.current != nil {
		o.current.Close()
		o.current = nil
	}

	v, err := o.reg.Mount(ui.Route, o.src)
	if err != nil {
		if errors.Is(err, ErrUnknownRoute) {
			o.logger.Warn("no view for route", log.String("route", ui.Route))
			return
		}
		o.logger.Error("mount failed", log.String("route", ui.Route), log.Err(err))
		return
	}
	o.current = v
	o.logger.Debug("mounted view", log.String("route", ui.Route), log.String("view", v.Kind().String()))
}

// Current returns the mounted view, or nil.
func (o *Outlet) Current() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Close unmounts the current view and stops following the route.
func (o *Outlet) Close() {
	o.unsub()
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		o.current.Close()
		o.current = nil
	}
}
