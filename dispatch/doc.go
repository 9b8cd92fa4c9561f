// Package dispatch executes built requests and hands back cancellable
// handles.
//
// Each Dispatch call runs on its own goroutine: it resolves credentials,
// sends the request through the transport and classifies the response. The
// returned Handle settles exactly once, either with that outcome or with a
// cancellation if Cancel wins the race.
package dispatch
