// Package persist saves the parts of the dashboard state that outlive a
// process, which today is the signed-in session.
//
//	repo := persist.NewFileRepository("/path/to/state/dir")
//
//	snap, err := repo.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	st.Dispatch(dashboard.SessionRestored(snap.Session))
//
// Files are JSON with snake_case field names and are replaced atomically.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package persist
