// Package probe places records at their required alignments and reports
// what the allocator actually delivered.
//
// The classic probe exercises a record of four one-byte fields requiring 4,
// 8, 16, and 32 byte alignment and writes five lines:
//
//	align 4: 0
//	align 8: 0
//	align 16: 0
//	align 32: 0
//	base align: 0, 0, 0, 0
//
// Each of the first four lines is a field's address modulo its requirement;
// the last line is the record base address modulo 4, 8, 16, and 32. A
// nonzero field remainder means the allocation contract was broken. That is
// a diagnostic for the reader, not an error: probes report it and exit
// cleanly either way.
//
// Options.Trunc32 reproduces the original diagnostic's quirk of narrowing
// the base address through a signed 32-bit integer, under which the base
// moduli use truncated division and can be negative for addresses at or
// above 2³¹.
package probe
