package memalign

import (
	"unsafe"

	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/errors"
)

// MaxAlloc caps a single aligned allocation at 1 GB.
const MaxAlloc = 1 << 30

// Addr returns the address of the first byte of b, or 0 for an empty slice.
func Addr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// Buffer is a block of memory whose base address is aligned.
type Buffer struct {
	backing []byte
	data    []byte
	align   uint32
}

// Alloc returns a Buffer of size bytes whose base address is a multiple of
// align. align must be a power of two; size must be nonzero and at most
// MaxAlloc.
func Alloc(size, align uint32) (*Buffer, error) {
	if !alignprobe.IsPowerOfTwo(align) {
		return nil, errors.InvalidAlign(errors.PhaseAlloc, "", "", align)
	}
	if align > MaxAlloc {
		return nil, errors.New(errors.PhaseAlloc, errors.KindInvalidAlign).
			Value(align).
			Detail("alignment %d exceeds limit", align).
			Build()
	}
	if size == 0 {
		return nil, errors.AllocationFailed(size, align, "size is zero")
	}
	if size > MaxAlloc {
		return nil, errors.AllocationFailed(size, align, "size exceeds limit")
	}

	// Slack equal to the alignment guarantees an aligned base exists
	// somewhere in the backing slice.
	backing := make([]byte, size+align)

	data := backing
	if rem := alignprobe.Remainder(Addr(backing), align); rem != 0 {
		shift := uintptr(align) - rem
		data = backing[shift:]
	}
	data = data[:size:size]

	return &Buffer{backing: backing, data: data, align: align}, nil
}

// Bytes returns the aligned region.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Base returns the address of the first aligned byte.
func (b *Buffer) Base() uintptr {
	return Addr(b.data)
}

// Len returns the usable size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Align returns the alignment the buffer was allocated with.
func (b *Buffer) Align() uint32 {
	return b.align
}
