package buffer

import "errors"

// Errors returned by buffer mutations.
var (
	// ErrOutOfRange indicates a line or column outside the current buffer
	// bounds was supplied to a mutation. Mutations never clamp; clamping is
	// the caller's job on read paths.
	ErrOutOfRange = errors.New("position out of range")
)
