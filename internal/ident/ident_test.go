package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Allocate(t *testing.T) {
	a := New()

	ref1, row1 := a.Allocate()
	ref2, row2 := a.Allocate()

	assert.NotZero(t, ref1)
	assert.NotZero(t, ref2)
	assert.NotEqual(t, ref1, ref2)
	assert.NotEqual(t, row1, row2)

	got, ok := a.Row(ref1)
	require.True(t, ok)
	assert.Equal(t, row1, got)

	back, ok := a.Ref(row2)
	require.True(t, ok)
	assert.Equal(t, ref2, back)

	assert.Equal(t, 2, a.Len())
}

func TestArena_GlobalUniqueness(t *testing.T) {
	a := New()
	b := New()

	refA, _ := a.Allocate()
	refB, _ := b.Allocate()

	// Two arenas never mint the same handle.
	assert.NotEqual(t, refA, refB)
}

func TestArena_ReleaseRecyclesRow(t *testing.T) {
	a := New()

	ref1, row1 := a.Allocate()
	ref2, _ := a.Allocate()

	freed, ok := a.Release(ref1)
	require.True(t, ok)
	assert.Equal(t, row1, freed)
	assert.Equal(t, 1, a.Len())

	_, ok = a.Row(ref1)
	assert.False(t, ok)
	_, ok = a.Ref(row1)
	assert.False(t, ok)

	// The freed row is reused, the released handle is not.
	ref3, row3 := a.Allocate()
	assert.Equal(t, row1, row3)
	assert.NotEqual(t, ref1, ref3)

	// Survivor is untouched.
	_, ok = a.Row(ref2)
	assert.True(t, ok)
}

func TestArena_ReleaseUnknown(t *testing.T) {
	a := New()
	_, ok := a.Release(12345)
	assert.False(t, ok)
	_, ok = a.Release(0)
	assert.False(t, ok)
}

func TestArena_Bind(t *testing.T) {
	a := New()
	b := New()

	ref, _ := a.Allocate()

	row, ok := b.Bind(ref)
	require.True(t, ok)

	got, ok := b.Row(ref)
	require.True(t, ok)
	assert.Equal(t, row, got)

	// Rebinding the same handle fails.
	_, ok = b.Bind(ref)
	assert.False(t, ok)

	// Zero is never bindable.
	_, ok = b.Bind(0)
	assert.False(t, ok)
}

func TestArena_BindReservesSequence(t *testing.T) {
	a := New()

	ahead := refSeq.Load() + 1000
	_, ok := a.Bind(ahead)
	require.True(t, ok)

	// Fresh allocations must jump past the bound handle.
	ref, _ := a.Allocate()
	assert.Greater(t, ref, ahead)
}

func TestArena_All(t *testing.T) {
	a := New()

	refs := make(map[uint64]uint32)
	for range 5 {
		ref, row := a.Allocate()
		refs[ref] = row
	}

	seen := make(map[uint64]uint32)
	for ref, row := range a.All() {
		seen[ref] = row
	}
	assert.Equal(t, refs, seen)

	// Released handles disappear from iteration.
	for ref := range refs {
		a.Release(ref)
		break
	}
	count := 0
	for range a.All() {
		count++
	}
	assert.Equal(t, 4, count)
}
