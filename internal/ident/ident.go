package ident

import (
	"iter"
	"sync/atomic"
)

// refSeq is the process-wide handle sequence. Handle 0 is never issued, so
// the zero value is always invalid.
var refSeq atomic.Uint64

// next returns a fresh, never before issued handle.
func next() uint64 {
	return refSeq.Add(1)
}

// reserve advances the sequence so that future allocations mint handles
// strictly greater than ref. Needed when a caller binds a handle it obtained
// elsewhere (e.g. a snapshot) that may be ahead of the local sequence.
func reserve(ref uint64) {
	for {
		cur := refSeq.Load()
		if cur >= ref {
			return
		}
		if refSeq.CompareAndSwap(cur, ref) {
			return
		}
	}
}

// Arena maps handles to rows and back. It is not safe for concurrent use;
// the owning structure serializes access.
type Arena struct {
	rows map[uint64]uint32
	refs []uint64 // row -> handle, 0 when the row is free
	free []uint32
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		rows: make(map[uint64]uint32),
	}
}

// Allocate mints a fresh handle and binds it to a row.
func (a *Arena) Allocate() (ref uint64, row uint32) {
	ref = next()
	return ref, a.bind(ref)
}

// Bind interns an existing handle. It reports false if the handle is zero or
// already bound in this arena.
func (a *Arena) Bind(ref uint64) (row uint32, ok bool) {
	if ref == 0 {
		return 0, false
	}
	if _, bound := a.rows[ref]; bound {
		return 0, false
	}
	reserve(ref)
	return a.bind(ref), true
}

func (a *Arena) bind(ref uint64) uint32 {
	var row uint32
	if n := len(a.free); n > 0 {
		row = a.free[n-1]
		a.free = a.free[:n-1]
		a.refs[row] = ref
	} else {
		row = uint32(len(a.refs))
		a.refs = append(a.refs, ref)
	}
	a.rows[ref] = row
	return row
}

// Row returns the row bound to ref.
func (a *Arena) Row(ref uint64) (uint32, bool) {
	row, ok := a.rows[ref]
	return row, ok
}

// Ref returns the handle bound to row.
func (a *Arena) Ref(row uint32) (uint64, bool) {
	if int(row) >= len(a.refs) || a.refs[row] == 0 {
		return 0, false
	}
	return a.refs[row], true
}

// Release unbinds ref and recycles its row. It reports false if ref is not
// bound.
func (a *Arena) Release(ref uint64) (uint32, bool) {
	row, ok := a.rows[ref]
	if !ok {
		return 0, false
	}
	delete(a.rows, ref)
	a.refs[row] = 0
	a.free = append(a.free, row)
	return row, true
}

// Len returns the number of bound handles.
func (a *Arena) Len() int {
	return len(a.rows)
}

// Cap returns the number of rows ever allocated, i.e. the row universe size.
func (a *Arena) Cap() int {
	return len(a.refs)
}

// All iterates over every bound (ref, row) pair in unspecified order.
func (a *Arena) All() iter.Seq2[uint64, uint32] {
	return func(yield func(uint64, uint32) bool) {
		for row, ref := range a.refs {
			if ref == 0 {
				continue
			}
			if !yield(ref, uint32(row)) {
				return
			}
		}
	}
}
