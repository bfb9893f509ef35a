package field

import "errors"

// ErrDivideByZero is returned when a division or inversion has a zero
// denominator.
var ErrDivideByZero = errors.New("field: divide by zero")

// Field provides closed arithmetic over a binary finite field GF(2^w).
// Elements are the low w bits of a uint32; callers must pass in-range
// values. Implementations are immutable and safe for concurrent use.
type Field interface {
	// Bits returns the element width w in bits.
	Bits() int

	// ElemSize returns the number of bytes occupied by one element when
	// packed into a byte slice.
	ElemSize() int

	// Order returns the number of elements in the field, 1 << Bits().
	Order() int

	// Generator returns a primitive element of the field.
	Generator() uint32

	// Add returns a + b. In a binary field this is bitwise XOR and also
	// serves as subtraction.
	Add(a, b uint32) uint32

	// Mul returns a * b.
	Mul(a, b uint32) uint32

	// Div returns a / b, or ErrDivideByZero if b is zero.
	Div(a, b uint32) (uint32, error)

	// Inv returns the multiplicative inverse of a, or ErrDivideByZero if
	// a is zero.
	Inv(a uint32) (uint32, error)

	// Pow returns a raised to the n-th power by repeated multiplication,
	// n >= 0. Pow(a, 0) is 1 for every a.
	Pow(a uint32, n int) uint32

	// MulAdd multiplies every element of src by c and xors the products
	// into dst. Elements are packed big-endian, ElemSize bytes each; dst
	// and src must hold the same whole number of elements.
	MulAdd(dst, src []byte, c uint32)
}
