package kernel

// Handle is the 32-bit opaque identifier for an actor (spec.md §3). Handle 0
// is reserved as SysHandle, the source of runtime-generated lifecycle
// messages, and is never handed out by Create.
type Handle uint32

// SysHandle is the sentinel source used for runtime-generated CREATE/RELEASE
// messages. It is never a valid target.
const SysHandle Handle = 0

// Reserved message types. All other int32 values are user-defined.
const (
	// TypeCreate is always the first message delivered to a newly created
	// actor.
	TypeCreate int32 = 0

	// TypeRelease is always the last message delivered to an actor,
	// immediately before it is destroyed.
	TypeRelease int32 = 1
)

// Callback is the user function invoked for each message delivered to an
// actor. source is the sender's handle (SysHandle for CREATE/RELEASE), self
// is the receiving actor's own handle, payload is owned by the runtime and
// valid only for the duration of the call, and userData is the opaque value
// passed to Create.
//
// The callback contract is that it returns normally after consuming the
// message; errors raised by user code are outside the runtime's concern
// (spec.md §7).
type Callback func(source, self Handle, msgType int32, session int64, payload []byte, userData any)

// message is the internal wire representation pushed through a mailbox.
// Payloads are deep-copied at Send time: the sender retains ownership of its
// buffer, and the mailbox owns the copy until the callback returns.
type message struct {
	source  Handle
	msgType int32
	session int64
	payload []byte
}

// actor is the runtime's private bookkeeping record for one actor. Every
// field except mailbox is only ever touched while holding either the
// registry's lock (to find the actor) or the actor's own spinlock (to read
// or mutate isReady/isRelease). name and userData are immutable after
// construction.
type actor struct {
	name     string
	handle   Handle
	userData any
	callback Callback

	mailbox *mailbox

	// lock guards isReady/isRelease, matching spec.md's per-actor
	// spinlock + flag pattern (§3 invariants I2/I3, §9).
	lock      spinLock
	isReady   bool
	isRelease bool
}

func newActor(name string, handle Handle, cb Callback, ud any) *actor {
	return &actor{
		name:     name,
		handle:   handle,
		userData: ud,
		callback: cb,
		mailbox:  newMailbox(),
	}
}
