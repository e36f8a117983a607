package enuminject

import "errors"

// Sentinel errors for the runtime surface. Generation-time diagnostics live
// in internal/descriptor and internal/codegen and never reach a running
// program.
var (
	// ErrNotInjected is the panic value raised by Injected.Get when the cell
	// has never been populated. Reading a missing dependency is a programming
	// error, not a recoverable condition.
	ErrNotInjected = errors.New("injected value read before injection")

	// ErrProducerNil is returned when a nil producer is registered.
	ErrProducerNil = errors.New("producer cannot be nil")

	// ErrTargetNil is returned when a nil target is registered.
	ErrTargetNil = errors.New("target cannot be nil")
)
