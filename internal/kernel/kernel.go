// Package kernel implements the actor runtime: a handle registry, per-actor
// mailboxes, a ready queue, and the dispatcher loop that drains it. The
// mechanics follow the reference hive_actor.c implementation closely —
// open-addressed handle table, reserved-slot ready-queue publication, and a
// per-actor spinlock guarding the ready/release flags.
package kernel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DispatchStatus is the outcome of a single dispatcher turn.
type DispatchStatus int32

const (
	// StatusIdle means the ready queue had nothing to dequeue.
	StatusIdle DispatchStatus = 0
	// StatusDispatched means one message was delivered and the actor
	// remains alive (re-enqueued if it had more work).
	StatusDispatched DispatchStatus = 1
	// StatusReleased means the turn delivered the actor's terminal
	// RELEASE message and destroyed its record.
	StatusReleased DispatchStatus = 2
)

// Metrics receives counters from runtime operations. All methods must be
// safe for concurrent use. Config substitutes a no-op implementation when
// none is supplied.
type Metrics interface {
	ActorCreated()
	ActorReleased()
	MessageSent()
	MessageDispatched()
	ReadyQueueDepth(n int)
	RegistrySize(n int)
}

type noopMetrics struct{}

func (noopMetrics) ActorCreated()       {}
func (noopMetrics) ActorReleased()      {}
func (noopMetrics) MessageSent()        {}
func (noopMetrics) MessageDispatched()  {}
func (noopMetrics) ReadyQueueDepth(int) {}
func (noopMetrics) RegistrySize(int)    {}

// Config controls construction of a Runtime. The zero value is valid: it
// produces a disabled logger and a no-op Metrics sink.
type Config struct {
	Logger  zerolog.Logger
	Metrics Metrics
}

func (c Config) withDefaults() Config {
	if c.Metrics == nil {
		c.Metrics = noopMetrics{}
	}
	return c
}

// Runtime is the actor substrate: one registry, one ready queue, one exit
// flag. Every exported method is safe for concurrent use by multiple
// goroutines. There is deliberately no package-level singleton; callers own
// an instance and thread it through their own bootstrap path (spec.md §9
// prefers explicit ownership over hidden module state).
type Runtime struct {
	cfg      Config
	registry *registry
	ready    *readyQueue

	exitOnce sync.Once
}

// New constructs a Runtime.
func New(cfg Config) *Runtime {
	cfg = cfg.withDefaults()
	return &Runtime{
		cfg:      cfg,
		registry: newRegistry(),
		ready:    newReadyQueue(),
	}
}

// Create registers a new actor and enqueues its CREATE message as the first
// entry in its mailbox. It returns handle 0 if the runtime has already been
// asked to Exit.
func (rt *Runtime) Create(name string, cb Callback, userData any, bootstrapPayload []byte) Handle {
	a := newActor(name, 0, cb, userData)

	h := rt.registry.insert(a)
	if h == 0 {
		return 0
	}

	payload := append([]byte(nil), bootstrapPayload...)
	a.mailbox.push(message{
		source:  SysHandle,
		msgType: TypeCreate,
		session: 0,
		payload: payload,
	})

	rt.enqueue(a)
	rt.cfg.Metrics.ActorCreated()
	rt.cfg.Metrics.RegistrySize(rt.registry.count())
	rt.cfg.Logger.Debug().Uint32("handle", uint32(h)).Str("name", name).Msg("actor created")
	return h
}

// Release marks an actor for release. The actual RELEASE callback and
// destruction happen on a subsequent Dispatch turn. Returns
// ErrUnknownHandle if h does not resolve to a live actor.
func (rt *Runtime) Release(h Handle) error {
	a := rt.registry.lookup(h)
	if a == nil {
		return ErrUnknownHandle
	}

	a.lock.Lock()
	alreadyRelease := a.isRelease
	a.isRelease = true
	wasReady := a.isReady
	a.lock.Unlock()

	if !alreadyRelease && !wasReady {
		rt.enqueue(a)
	}
	return nil
}

// Send copies data into a new message and appends it to tgt's mailbox,
// enqueuing tgt on the ready queue if it was idle. Returns ErrUnknownHandle
// if tgt does not resolve to a live actor.
func (rt *Runtime) Send(src, tgt Handle, msgType int32, session int64, data []byte) error {
	a := rt.registry.lookup(tgt)
	if a == nil {
		return ErrUnknownHandle
	}

	payload := append([]byte(nil), data...)
	a.mailbox.push(message{
		source:  src,
		msgType: msgType,
		session: session,
		payload: payload,
	})

	rt.enqueue(a)
	rt.cfg.Metrics.MessageSent()
	return nil
}

// enqueue implements the Ready Queue Enqueue protocol (spec.md §4.3): set
// is_ready under the actor's spinlock, then publish into the ring. The
// spinlock makes repeated calls for the same actor idempotent.
func (rt *Runtime) enqueue(a *actor) {
	a.lock.Lock()
	if a.isReady {
		a.lock.Unlock()
		return
	}
	a.isReady = true
	a.lock.Unlock()

	rt.ready.push(a)
	rt.cfg.Metrics.ReadyQueueDepth(rt.ready.len())
}

// Dispatch performs one dispatcher turn: dequeue an actor, pop one message,
// invoke its callback, then either re-enqueue, destroy, or idle (spec.md
// §4.4). Safe for concurrent callers; a worker pool calls this in a tight
// loop via Run.
func (rt *Runtime) Dispatch() (DispatchStatus, error) {
	a, ok := rt.ready.pop()
	if !ok {
		return StatusIdle, nil
	}

	msg, ok := a.mailbox.pop()
	var turnErr error
	if ok {
		turnErr = rt.invoke(a, msg)
	}

	a.lock.Lock()
	release := a.isRelease
	a.lock.Unlock()

	if release {
		rt.deliverRelease(a)
		return StatusReleased, turnErr
	}

	// Clearing is_ready before re-checking the mailbox is load-bearing:
	// any push that races with this turn observes is_ready == false and
	// re-enqueues on its own, which is exactly what I3 requires (spec.md
	// §4.4 "Why this exact order"). isRelease is re-read under the same
	// lock: a Release that landed after the check above saw isReady ==
	// true and did not enqueue, so this turn re-enqueues for it.
	a.lock.Lock()
	a.isReady = false
	lateRelease := a.isRelease
	a.lock.Unlock()

	if lateRelease || a.mailbox.len() > 0 {
		rt.enqueue(a)
	}

	rt.cfg.Metrics.MessageDispatched()
	return StatusDispatched, turnErr
}

func (rt *Runtime) invoke(a *actor, msg message) error {
	if a.callback == nil {
		return ErrNoCallback
	}
	a.callback(msg.source, a.handle, msg.msgType, msg.session, msg.payload, a.userData)
	return nil
}

// deliverRelease synthesizes and delivers the terminal RELEASE message, then
// destroys the actor's record (spec.md §3 "Destroyed", §4.4 step 3).
func (rt *Runtime) deliverRelease(a *actor) {
	if a.callback != nil {
		a.callback(SysHandle, a.handle, TypeRelease, 0, nil, a.userData)
	}
	a.mailbox.drain()
	rt.registry.remove(a)
	rt.cfg.Metrics.ActorReleased()
	rt.cfg.Metrics.RegistrySize(rt.registry.count())
	rt.cfg.Logger.Debug().Uint32("handle", uint32(a.handle)).Str("name", a.name).Msg("actor released")
}

// Exit marks the runtime as shutting down (further Create calls return
// handle 0) and releases every currently registered actor. Workers must
// keep calling Dispatch until it returns StatusIdle to finish draining
// (spec.md §4.5).
func (rt *Runtime) Exit() {
	rt.exitOnce.Do(func() {
		live := rt.registry.beginExit()
		for _, a := range live {
			a.lock.Lock()
			alreadyRelease := a.isRelease
			a.isRelease = true
			wasReady := a.isReady
			a.lock.Unlock()

			if !alreadyRelease && !wasReady {
				rt.enqueue(a)
			}
		}
		rt.cfg.Logger.Info().Int("actor_count", len(live)).Msg("runtime exit: releasing all actors")
	})
}

// Free is the final teardown step, intended to run once Dispatch has
// returned StatusIdle with zero remaining actors after Exit. It exists as a
// distinct call, rather than folded into Exit, to mirror the two-phase
// init/free lifecycle external collaborators expect (spec.md §6).
func (rt *Runtime) Free() {
	rt.cfg.Logger.Info().Msg("runtime freed")
}

// Count returns the number of currently registered actors.
func (rt *Runtime) Count() int {
	return rt.registry.count()
}

// ReadyLen returns the approximate number of actors currently pending in
// the ready queue.
func (rt *Runtime) ReadyLen() int {
	return rt.ready.len()
}

// Run drives Dispatch with n worker goroutines until ctx is cancelled. Idle
// workers back off with a small sleep rather than busy-spinning; this
// backoff is the host-program policy spec.md §5 leaves unspecified at the
// core level.
func (rt *Runtime) Run(ctx context.Context, workers int, idleBackoff time.Duration) error {
	if workers < 1 {
		workers = 1
	}
	if idleBackoff <= 0 {
		idleBackoff = time.Millisecond
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				status, err := rt.Dispatch()
				if err != nil {
					rt.cfg.Logger.Warn().Err(err).Msg("dispatch turn error")
				}
				if status == StatusIdle {
					select {
					case <-ctx.Done():
						return
					case <-time.After(idleBackoff):
					}
				}
			}
		}()
	}

	wg.Wait()
	return ctx.Err()
}
