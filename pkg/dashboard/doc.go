// Package dashboard is the application state of the build-and-package
// dashboard: the slices every page reads and the actions pages dispatch.
//
// State is a [store.Tree] with these slices, reduced in this order:
//
//	session        signed-in user
//	origins        origins the user belongs to and the selected origin
//	packages       the visible package listing and the selected package
//	projects       build projects and the selected project
//	builds         builds per project
//	notifications  banner notifications
//	ui             current route and side navigation
//
// Every slice is a pointer to an immutable struct. Reducers copy before
// changing anything and return the slice untouched for actions they do not
// own, so subscribers can compare slices by identity.
//
// Long-running work stays outside the store: a page dispatches a *_FETCH_START
// action, runs its request, then dispatches *_FETCH_DONE or *_FETCH_FAILED.
package dashboard
