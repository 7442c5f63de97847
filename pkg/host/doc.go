// Package host runs the dashboard store inside an application.
//
// A Host owns the one dashboard store of an application, the plugins that
// surround it (persistence, metrics, file watching) and an optional view
// outlet. Plugins are initialized in registration order on Start and shut
// down in reverse order on Stop; Stop then closes the store.
//
//	h, err := host.New(host.Config{StateDir: dir},
//	    host.WithLogger(logger),
//	    host.WithViews(views.DefaultRegistry()),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := h.Start(ctx); err != nil {
//	    return err
//	}
//	defer h.Stop()
//
//	h.Store().Dispatch(dashboard.RouteChanged("/origins"))
//
// # Version
//
// Current version: 1.0.0
package host
