package kernel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskReplyRoundtrip(t *testing.T) {
	rt := New(Config{})
	asker := NewAsker(rt)

	var replyTo Handle
	cb := func(source, self Handle, msgType int32, session int64, payload []byte, userData any) {
		if msgType == TypeCreate {
			return
		}
		asker.Reply(session, append([]byte("echo:"), payload...), nil)
		replyTo = source
	}

	target := rt.Create("responder", cb, nil, nil)
	rt.Dispatch() // drain CREATE

	ctx := context.Background()
	f := asker.Ask(ctx, SysHandle, target, 7, []byte("hi"))

	status, err := rt.Dispatch()
	require.NoError(t, err)
	require.Equal(t, StatusDispatched, status)

	val, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, []byte("echo:hi"), val)
	assert.Equal(t, SysHandle, replyTo)
}

func TestAskTimesOutWithoutReply(t *testing.T) {
	rt := New(Config{})
	asker := NewAsker(rt)

	cb := func(source, self Handle, msgType int32, session int64, payload []byte, userData any) {
		// Never replies.
	}
	target := rt.Create("silent", cb, nil, nil)
	rt.Dispatch()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := asker.Ask(ctx, SysHandle, target, 1, nil)
	rt.Dispatch()

	_, err := f.Await()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAskUnknownTargetFailsImmediately(t *testing.T) {
	rt := New(Config{})
	asker := NewAsker(rt)

	f := asker.Ask(context.Background(), SysHandle, Handle(999), 1, nil)
	_, err := f.Await()
	assert.ErrorIs(t, err, ErrUnknownHandle)
}

func TestAskCancelAll(t *testing.T) {
	rt := New(Config{})
	asker := NewAsker(rt)

	cb := func(source, self Handle, msgType int32, session int64, payload []byte, userData any) {}
	target := rt.Create("n", cb, nil, nil)
	rt.Dispatch()

	f := asker.Ask(context.Background(), SysHandle, target, 1, nil)
	asker.CancelAll()

	_, err := f.Await()
	assert.ErrorIs(t, err, ErrActorReleased)
}
