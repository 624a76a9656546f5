package kernel

import (
	"context"
	"sync"
	"sync/atomic"

	"hive/internal/util/future"
)

// Asker layers a request/reply convenience on top of Send, outside the
// strict core dispatch contract (spec.md §6 treats session purely as an
// opaque correlation id; Asker is the external collaborator that gives it
// meaning). A caller sends a message carrying a session id minted by
// NextSession, then Await's a Future that the target's callback completes
// by calling Reply with the same session.
//
// Grounded in the Ask/Future convention of a generic actor library
// elsewhere in this codebase's lineage; rebuilt here on
// util/future.NewPromise rather than a generic Actor[M,R] wrapper, since
// the core API is byte-payload, not typed-message.
type Asker struct {
	rt *Runtime

	nextSession atomic.Int64

	mu      sync.Mutex
	pending map[int64]func([]byte, error)
}

// NewAsker constructs an Asker bound to rt.
func NewAsker(rt *Runtime) *Asker {
	return &Asker{
		rt:      rt,
		pending: make(map[int64]func([]byte, error)),
	}
}

// Ask sends (msgType, data) from src to tgt and returns a Future that
// completes when Reply is called with the session Ask minted, or when ctx
// is cancelled. The caller's actor callback is responsible for routing
// reply payloads it receives back through Reply.
func (a *Asker) Ask(ctx context.Context, src, tgt Handle, msgType int32, data []byte) *future.Future[[]byte] {
	session := a.nextSession.Add(1)
	f, complete := future.NewPromise[[]byte]()

	a.mu.Lock()
	a.pending[session] = complete
	a.mu.Unlock()

	if err := a.rt.Send(src, tgt, msgType, session, data); err != nil {
		a.takePending(session)
		complete(nil, err)
		return f
	}

	if ctx != nil {
		go func() {
			select {
			case <-f.Done():
			case <-ctx.Done():
				if cb := a.takePending(session); cb != nil {
					cb(nil, ctx.Err())
				}
			}
		}()
	}

	return f
}

// Reply completes the pending Ask registered under session, if any. It
// returns false if no Ask is waiting on that session — not an error, since
// unsolicited messages carrying a stale or user-assigned session id are
// valid traffic at the core level.
func (a *Asker) Reply(session int64, data []byte, err error) bool {
	cb := a.takePending(session)
	if cb == nil {
		return false
	}
	cb(append([]byte(nil), data...), err)
	return true
}

// CancelAll fails every outstanding Ask with ErrActorReleased. Call this
// when the target side of an in-flight conversation is released so callers
// don't block forever.
func (a *Asker) CancelAll() {
	a.mu.Lock()
	pending := a.pending
	a.pending = make(map[int64]func([]byte, error))
	a.mu.Unlock()

	for _, cb := range pending {
		cb(nil, ErrActorReleased)
	}
}

func (a *Asker) takePending(session int64) func([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cb, ok := a.pending[session]
	if !ok {
		return nil
	}
	delete(a.pending, session)
	return cb
}
