// Package layout computes memory layouts for records with explicit per-field
// alignment requirements, and inspects the layout of native Go structs.
//
// # Layout Rules
//
// Fields are placed sequentially in declaration order. Each field's offset is
// rounded up to its alignment, the record's alignment is the maximum field
// alignment, and the record's size is rounded up to the record alignment:
//
//	Field   Size  Align  Offset
//	──────────────────────────
//	a4      1     4      0
//	a8      1     8      8
//	a16     1     16     16
//	a32     1     32     32
//	                     size 64, align 32
//
// These are the Canonical ABI placement rules with one extension: a field may
// demand an alignment larger than its size.
//
// All alignments must be powers of two and all sizes nonzero; Calculate
// returns structured errors otherwise.
package layout
