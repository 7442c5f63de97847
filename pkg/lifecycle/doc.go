// Package lifecycle guards the start/stop sequence of a host.
//
// A DefaultManager holds one State and refuses moves the table below does
// not allow:
//
//	Stopped  -> Starting
//	Starting -> Running | Crashed
//	Running  -> Stopping | Crashed
//	Stopping -> Stopped | Crashed
//	Crashed  -> Starting
//
// Workers started by the host call AddWorker before they run and
// WorkerDone when they return; Stop then bounds the wait with
// WaitWithTimeout. Backoff spaces out retries of flaky background work
// such as rereading a file that is still being written.
//
// Current version: 1.1.0
package lifecycle
