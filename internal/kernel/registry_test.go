package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInsertAssignsMonotonicHandles(t *testing.T) {
	r := newRegistry()

	for i := 1; i <= 3; i++ {
		a := newActor("n", 0, nil, nil)
		h := r.insert(a)
		assert.Equal(t, Handle(i), h)
	}
}

func TestRegistryLookupRoundtrip(t *testing.T) {
	r := newRegistry()
	a := newActor("n", 0, nil, nil)
	h := r.insert(a)

	got := r.lookup(h)
	require.NotNil(t, got)
	assert.Same(t, a, got)

	assert.Nil(t, r.lookup(Handle(999)))
}

func TestRegistryRemove(t *testing.T) {
	r := newRegistry()
	a := newActor("n", 0, nil, nil)
	h := r.insert(a)

	r.remove(a)
	assert.Nil(t, r.lookup(h))
	assert.Equal(t, 0, r.count())
}

func TestRegistryGrowsOnExhaustion(t *testing.T) {
	r := newRegistry()
	require.Equal(t, uint32(registryInitialSize), r.size)

	var handles []Handle
	for i := 0; i < registryInitialSize+1; i++ {
		a := newActor("n", 0, nil, nil)
		handles = append(handles, r.insert(a))
	}

	assert.Greater(t, r.size, uint32(registryInitialSize))
	for _, h := range handles {
		assert.NotNil(t, r.lookup(h))
	}
}

func TestRegistryInsertRefusedAfterExit(t *testing.T) {
	r := newRegistry()
	r.beginExit()

	a := newActor("n", 0, nil, nil)
	h := r.insert(a)
	assert.Equal(t, Handle(0), h)
}

func TestRegistryBeginExitReturnsLiveActors(t *testing.T) {
	r := newRegistry()
	a1 := newActor("a1", 0, nil, nil)
	a2 := newActor("a2", 0, nil, nil)
	r.insert(a1)
	r.insert(a2)

	live := r.beginExit()
	assert.Len(t, live, 2)
}
