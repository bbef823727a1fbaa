// Package wasmmem probes the host-side placement of WebAssembly linear
// memory.
//
// The original alignment diagnostic ran as a wasm guest; its guarantees hold
// only if the runtime backs linear memory with sensibly placed host memory.
// This package instantiates a minimal module (one exported memory, nothing
// else) under wazero, takes a view of the memory's first bytes, and reports
// the view's base address modulo 4, 8, 16, 32, and the 64 KiB wasm page
// size.
//
// wazero allocates linear memory on the Go heap, so page alignment of the
// base is not guaranteed; the page remainder is informational.
package wasmmem
