package kernel

import (
	"sync/atomic"
)

// readyQueueCapacity is the ring buffer size. It must be a power of two;
// spec.md §7 treats a full ready queue as resource exhaustion, which this
// runtime surfaces as a panic rather than a silently dropped actor.
const readyQueueCapacity = 1 << 16

// readyQueue is a multi-producer, multi-consumer ring buffer
// of *actor pointers, grounded directly on the reference
// _actor_progress_push/_actor_progress_pop ring buffer: each slot carries a
// "published" flag alongside its payload so a consumer never observes a
// slot a producer has reserved (advanced tail into) but not yet written.
//
// An actor is only ever present in the queue once at a time (spec.md I1);
// that invariant is enforced by callers via actor.isReady, not by the queue
// itself.
type readyQueue struct {
	slots     [readyQueueCapacity]*actor
	published [readyQueueCapacity]atomic.Bool

	head atomic.Uint64 // next slot to consume
	tail atomic.Uint64 // next slot to reserve for production
}

func newReadyQueue() *readyQueue {
	return &readyQueue{}
}

// push reserves the next slot and publishes a into it. It panics if the
// queue is full: with capacity fixed at readyQueueCapacity and at most one
// pending entry per live actor, this can only happen if the registry has
// grown far beyond what the queue was sized for (spec.md §7).
func (q *readyQueue) push(a *actor) {
	tail := q.tail.Add(1) - 1
	slot := tail % readyQueueCapacity

	if tail-q.head.Load() >= readyQueueCapacity {
		panic("hive: ready queue exhausted")
	}

	q.slots[slot] = a
	q.published[slot].Store(true)
}

// pop dequeues the oldest published actor, or returns (nil, false) if the
// queue is currently empty. Multiple dispatcher workers may call pop
// concurrently; the CAS on head arbitrates which one wins a given slot.
func (q *readyQueue) pop() (*actor, bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if head >= tail {
			return nil, false
		}

		slot := head % readyQueueCapacity
		if !q.published[slot].Load() {
			// A producer reserved this slot but hasn't stored into it
			// yet; nothing to consume until it does.
			return nil, false
		}

		if !q.head.CompareAndSwap(head, head+1) {
			continue
		}

		a := q.slots[slot]
		q.slots[slot] = nil
		q.published[slot].Store(false)
		return a, true
	}
}

// len reports an approximate queue depth for metrics; racy by construction.
func (q *readyQueue) len() int {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail < head {
		return 0
	}
	return int(tail - head)
}
