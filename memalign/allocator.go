package memalign

import (
	"sync"

	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/errors"
)

// GoAllocator satisfies the root Allocator interface with one aligned heap
// allocation per request. Free is a no-op; the garbage collector reclaims
// blocks once unreferenced.
type GoAllocator struct{}

var _ alignprobe.Allocator = (*GoAllocator)(nil)

func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

func (a *GoAllocator) Alloc(size, align uint32) ([]byte, error) {
	buf, err := Alloc(size, align)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *GoAllocator) Free(b []byte) {}

// Arena is a bump allocator over a single aligned buffer. Blocks are freed
// wholesale with Reset; individual Free calls are no-ops.
type Arena struct {
	buf *Buffer
	off uint32
}

var _ alignprobe.Allocator = (*Arena)(nil)

// NewArena creates an arena of capacity bytes. maxAlign bounds the alignment
// of the arena base and therefore of every block the arena can serve.
func NewArena(capacity, maxAlign uint32) (*Arena, error) {
	buf, err := Alloc(capacity, maxAlign)
	if err != nil {
		return nil, err
	}
	return &Arena{buf: buf}, nil
}

func (a *Arena) Alloc(size, align uint32) ([]byte, error) {
	if !alignprobe.IsPowerOfTwo(align) {
		return nil, errors.InvalidAlign(errors.PhaseAlloc, "", "", align)
	}
	if align > a.buf.Align() {
		return nil, errors.New(errors.PhaseAlloc, errors.KindInvalidAlign).
			Value(align).
			Detail("alignment %d exceeds arena alignment %d", align, a.buf.Align()).
			Build()
	}
	if size == 0 {
		return nil, errors.AllocationFailed(size, align, "size is zero")
	}

	off := alignprobe.AlignTo(a.off, align)
	if uint64(off)+uint64(size) > uint64(a.buf.Len()) {
		return nil, errors.AllocationFailed(size, align, "arena exhausted")
	}

	a.off = off + size
	return a.buf.Bytes()[off : off+size : off+size], nil
}

func (a *Arena) Free(b []byte) {}

// Reset discards all blocks. Previously returned slices still reference the
// backing memory and must not be used after Reset.
func (a *Arena) Reset() {
	a.off = 0
}

// Remaining returns how many bytes are left before the arena is exhausted,
// ignoring alignment padding future requests may need.
func (a *Arena) Remaining() uint32 {
	return uint32(a.buf.Len()) - a.off
}

const (
	pooledArenaCapacity = 4096
	pooledArenaAlign    = 64
)

// Pooled arenas for short probe runs
var arenaPool = sync.Pool{
	New: func() any {
		a, err := NewArena(pooledArenaCapacity, pooledArenaAlign)
		if err != nil {
			// Fixed constants make this unreachable.
			panic(err)
		}
		return a
	},
}

// GetArena returns a pooled arena with capacity 4096 and alignment 64.
func GetArena() *Arena {
	return arenaPool.Get().(*Arena)
}

// PutArena resets the arena and returns it to the pool. Non-pooled arenas
// are rejected to keep the pool homogeneous.
func PutArena(a *Arena) {
	if a == nil || a.buf.Len() != pooledArenaCapacity || a.buf.Align() != pooledArenaAlign {
		return
	}
	a.Reset()
	arenaPool.Put(a)
}
