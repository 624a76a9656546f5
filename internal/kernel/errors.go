package kernel

import "errors"

// Sentinel errors returned by the runtime's public operations. They mirror
// the named failure classes of the reference implementation (E_NO_SUCH,
// E_POLICY, E_BUSY) without carrying that naming into Go.
var (
	// ErrUnknownHandle is returned by Send or Release when the target
	// handle does not resolve to a live actor.
	ErrUnknownHandle = errors.New("hive: unknown handle")

	// ErrShuttingDown names the shutdown-reject condition. Create does not
	// return it: after Exit has been called, Create returns handle 0.
	ErrShuttingDown = errors.New("hive: runtime is shutting down")

	// ErrNoCallback is returned by Dispatch for a turn spent on an actor
	// that has no callback registered; the message is still consumed and
	// its payload freed.
	ErrNoCallback = errors.New("hive: actor has no callback")

	// ErrAskTimeout names the ask-timeout condition. Ask does not return
	// it: when the context passed to Ask ends before a reply, the Future
	// completes with ctx.Err() (for a deadline, context.DeadlineExceeded).
	ErrAskTimeout = errors.New("hive: ask timed out waiting for reply")

	// ErrActorReleased is the error every outstanding Ask Future completes
	// with when Asker.CancelAll is called. Ask itself does not detect that
	// the target was released.
	ErrActorReleased = errors.New("hive: actor released before reply")
)
