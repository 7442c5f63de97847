// Package views maps dashboard routes to the page views that render them.
//
// Rendering is done elsewhere. A view here is the store-facing half of a
// page: it subscribes to the slice it renders, keeps the latest snapshot,
// and unsubscribes when closed.
//
//	reg := views.DefaultRegistry()
//	v, err := reg.Mount("/origins/core", st) // the origin page
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//
// Routes are patterns such as "projects/:origin/:name"; the pattern with
// the most literal segments wins, so "/projects/create" is the create page
// and not a project named "create".
//
// An Outlet follows the ui slice and keeps exactly one view mounted for the
// current route.
package views
