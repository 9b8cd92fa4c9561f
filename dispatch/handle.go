package dispatch

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/apiclient/errors"
	"github.com/kbukum/apiclient/result"
)

// State is the lifecycle state of a Handle.
type State int32

const (
	StatePending State = iota
	StateSettled
	StateCancelled

	// stateReceived marks a call whose response has arrived but is still
	// being classified. It reads as pending.
	stateReceived State = -1
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSettled:
		return "settled"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// errAborted is the cancellation cause installed by Handle.Cancel.
var errAborted = errors.Cancelled(nil)

// Handle is the caller's view of one in-flight call.
type Handle struct {
	state   atomic.Int32
	done    chan struct{}
	outcome result.Outcome
	abort   context.CancelCauseFunc
}

func newHandle(abort context.CancelCauseFunc) *Handle {
	return &Handle{
		done:  make(chan struct{}),
		abort: abort,
	}
}

// Cancel aborts the call if no response has been received yet and reports
// whether it did. Repeated or late calls are no-ops, including calls made
// while a received response is being classified.
func (h *Handle) Cancel() bool {
	if !h.state.CompareAndSwap(int32(StatePending), int32(StateCancelled)) {
		return false
	}
	h.settle(result.Cancelled(errors.Cancelled(nil)))
	h.abort(errAborted)
	return true
}

// Done is closed once the handle reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Outcome blocks until the handle settles and returns its outcome.
func (h *Handle) Outcome() result.Outcome {
	<-h.done
	return h.outcome
}

// Wait is Outcome bounded by ctx. It does not cancel the call when ctx ends.
func (h *Handle) Wait(ctx context.Context) (result.Outcome, error) {
	select {
	case <-h.done:
		return h.outcome, nil
	case <-ctx.Done():
		return result.Outcome{}, ctx.Err()
	}
}

// State returns the current state.
func (h *Handle) State() State {
	if s := State(h.state.Load()); s != stateReceived {
		return s
	}
	return StatePending
}

// receive records that the transport returned a response. After it succeeds
// Cancel can no longer win. It fails when the handle was already cancelled.
func (h *Handle) receive() bool {
	return h.state.CompareAndSwap(int32(StatePending), int32(stateReceived))
}

// finish moves the handle to its terminal state. Only the first caller wins.
func (h *Handle) finish(to State, o result.Outcome) bool {
	if !h.state.CompareAndSwap(int32(StatePending), int32(to)) &&
		!h.state.CompareAndSwap(int32(stateReceived), int32(to)) {
		return false
	}
	h.settle(o)
	return true
}

func (h *Handle) settle(o result.Outcome) {
	h.outcome = o
	close(h.done)
}
