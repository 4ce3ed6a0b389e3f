// Package errors provides structured error types for the unbundle toolkit.
//
// Errors are categorized by Phase (where in the pipeline the error occurred)
// and Kind (error category). The Error type includes rich context: the input
// file, a path into the bundle structure, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExtract, errors.KindInvalidShape).
//		File("app.bundle.js").
//		Path("moduleTable", "7").
//		Detail("entry is not a two-element array").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoBundle("app.bundle.js")
//	err := errors.NameConflict("7", "util", "Util")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
