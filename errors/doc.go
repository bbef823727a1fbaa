// Package errors provides structured error types for the align-probe toolkit.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the record and field under inspection and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindInvalidAlign).
//		Record("header").
//		Field("seq").
//		Detail("alignment 12 is not a power of two").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidAlign(errors.PhaseLayout, "header", "seq", 12)
//	err := errors.AllocationFailed(64, 32, "size exceeds limit")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
