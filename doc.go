// Package alignprobe provides memory alignment diagnostics for host memory
// and WebAssembly linear memory.
//
// The toolkit answers one question in several settings: does a value's
// starting address satisfy the alignment its declaration demands? It grew
// out of a compiler regression check for per-field alignment attributes and
// generalizes it to arbitrary records, aligned allocators, and wasm memory.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	alignprobe/      Root package with the Allocator interface and helpers
//	├── layout/      Record layout calculation and Go struct inspection
//	├── memalign/    Aligned host-memory allocation (buffers, arenas)
//	├── probe/       Alignment probes and report formatting
//	├── canonical/   Canonical ABI layout cross-checks via WIT types
//	├── wasmmem/     wazero linear-memory base alignment probe
//	├── config/      YAML probe spec files
//	└── errors/      Structured error types for diagnostics
//
// # Quick Start
//
// Run the classic stack-alignment probe and print its five-line report:
//
//	report, err := probe.Run(os.Stdout, probe.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !report.OK() {
//	    // a field landed on a misaligned address
//	}
//
// Probe a record of your own:
//
//	rec := layout.Record{Name: "header", Fields: []layout.Field{
//	    {Name: "tag", Size: 1, Align: 4},
//	    {Name: "seq", Size: 8, Align: 8},
//	}}
//	report, err := probe.Record(os.Stdout, rec, probe.Options{})
//
// # Alignment Model
//
// All alignments are powers of two. A field with alignment N must start at
// an address divisible by N; a record's alignment is the maximum of its
// field alignments and its size is rounded up to that alignment. These are
// the same placement rules the Component Model's Canonical ABI uses, with
// one extension: a field may be over-aligned (alignment larger than its
// size), which the Canonical ABI cannot express.
//
// # Failure Model
//
// A misaligned address is a diagnostic result, not an error. Probes return
// reports and write human-readable lines; they fail only on impossible
// requests (zero sizes, non-power-of-two alignments, allocation limits).
package alignprobe
