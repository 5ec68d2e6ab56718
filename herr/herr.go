// Package herr defines a shared set of sentinel error values for
// decode/validate failures, comparable with errors.Is. The other packages
// of this module do not return them: each declares its own errors.New
// values.
package herr

import "errors"

var (
	// ErrNonCanonical is returned when a byte encoding is not the unique
	// canonical representative of the value it decodes to (bit 255 set,
	// or the integer is >= the field/scalar modulus).
	ErrNonCanonical = errors.New("helioselene: encoding is not canonical")

	// ErrNotOnCurve is returned when a decoded (x, y) pair does not
	// satisfy the curve equation.
	ErrNotOnCurve = errors.New("helioselene: point is not on curve")

	// ErrOverflow is returned when an input exceeds a size this module
	// is willing to allocate for (polynomial degree, ECFFT domain size,
	// divisor evaluation-point count).
	ErrOverflow = errors.New("helioselene: input exceeds maximum size")
)
