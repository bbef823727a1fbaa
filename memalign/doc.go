// Package memalign allocates host memory at explicit alignments.
//
// Go offers no aligned allocation primitive, so buffers are over-allocated
// by the requested alignment and the usable region starts at the first
// aligned byte:
//
//	backing  [ . . . base . . . . . . . . . ]
//	data           [ size bytes, base%align == 0 ]
//
// Buffer is a one-shot aligned allocation. Arena carves many aligned blocks
// out of a single Buffer with a bump pointer; arenas are recyclable through
// a pool. GoAllocator adapts plain aligned allocation to the root Allocator
// interface and leaves reclamation to the garbage collector.
package memalign
