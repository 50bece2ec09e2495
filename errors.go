package vframe

import "errors"

// Errors returned by Surface and Compositor construction.
var (
	// ErrInvalidDimensions indicates a Surface was requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("vframe: surface dimensions must be positive")

	// ErrNilSurface indicates a Compositor was constructed without a
	// destination surface. Construction is fatal by contract: no
	// partially-initialized compositor is ever returned.
	ErrNilSurface = errors.New("vframe: compositor requires a destination surface")
)
