package editor

import "errors"

var (
	// ErrNotFound is returned by definition providers when no definition
	// exists for the queried position. Callers leave the cursor where it
	// is; jumping to an arbitrary position would be worse than doing
	// nothing.
	ErrNotFound = errors.New("definition not found")

	// ErrNoSession indicates an operation that needs an active document
	// was invoked with none open.
	ErrNoSession = errors.New("no active session")
)
