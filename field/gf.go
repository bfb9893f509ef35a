package field

import "sync"

// GF is a table-backed binary field GF(2^w). Multiplication, division and
// inversion go through logarithm/exponent tables built once per width from
// the field's irreducible polynomial; addition is XOR. The tables are
// shared, read-only process state, so every GF value of the same width is
// backed by the same memory.
type GF struct {
	w        int // element width in bits
	order    int // number of elements, 1 << w
	elemSize int // bytes per packed element
	gen      uint32
	log      []uint32 // log[a] for a != 0
	exp      []uint32 // doubled: exp[i] for i in [0, 2*(order-1))
}

const (
	// x^8 + x^4 + x^3 + x^2 + 1, primitive over GF(2) with root 2.
	poly8 = 0x11D
	// x^16 + x^12 + x^3 + x + 1, primitive over GF(2) with root 2.
	poly16 = 0x1100B
)

var (
	gf8Once  sync.Once
	gf8      *GF
	gf16Once sync.Once
	gf16     *GF
)

// NewGF8 returns the GF(2^8) field backed by the shared 8-bit tables.
func NewGF8() *GF {
	gf8Once.Do(func() {
		gf8 = newGF(8, poly8, 2)
	})
	return gf8
}

// NewGF16 returns the GF(2^16) field backed by the shared 16-bit tables.
func NewGF16() *GF {
	gf16Once.Do(func() {
		gf16 = newGF(16, poly16, 2)
	})
	return gf16
}

// newGF builds the log/exp tables for GF(2^w). The generator must be a
// primitive root of the polynomial so that its powers enumerate every
// non-zero element exactly once.
func newGF(w int, poly, gen uint32) *GF {
	order := 1 << w
	f := &GF{
		w:        w,
		order:    order,
		elemSize: (w + 7) / 8,
		gen:      gen,
		log:      make([]uint32, order),
		exp:      make([]uint32, 2*(order-1)),
	}

	x := uint32(1)
	for i := 0; i < order-1; i++ {
		f.exp[i] = x
		f.log[x] = uint32(i)
		x <<= 1
		if x&uint32(order) != 0 {
			x ^= poly
		}
	}
	// Double the exponent table so Mul can index log[a]+log[b] without a
	// modulo reduction.
	for i := order - 1; i < 2*(order-1); i++ {
		f.exp[i] = f.exp[i-(order-1)]
	}
	return f
}

// Bits returns the element width in bits.
func (f *GF) Bits() int { return f.w }

// ElemSize returns the number of bytes per packed element.
func (f *GF) ElemSize() int { return f.elemSize }

// Order returns the number of elements in the field.
func (f *GF) Order() int { return f.order }

// Generator returns the primitive element the tables were built from.
func (f *GF) Generator() uint32 { return f.gen }

// Add returns a + b, which in a binary field is XOR.
func (f *GF) Add(a, b uint32) uint32 { return a ^ b }

// Mul returns a * b via the log/exp tables.
func (f *GF) Mul(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[f.log[a]+f.log[b]]
}

// Div returns a / b, or ErrDivideByZero if b is zero.
func (f *GF) Div(a, b uint32) (uint32, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	if a == 0 {
		return 0, nil
	}
	n := uint32(f.order - 1)
	return f.exp[f.log[a]+n-f.log[b]], nil
}

// Inv returns the multiplicative inverse of a, or ErrDivideByZero if a is
// zero.
func (f *GF) Inv(a uint32) (uint32, error) {
	if a == 0 {
		return 0, ErrDivideByZero
	}
	return f.exp[uint32(f.order-1)-f.log[a]], nil
}

// Pow returns a^n for n >= 0, with Pow(a, 0) == 1 for every a.
func (f *GF) Pow(a uint32, n int) uint32 {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	// The multiplicative group has order f.order-1, so exponents reduce
	// modulo that.
	m := int64(f.order - 1)
	return f.exp[(int64(f.log[a])*int64(n%int(m)))%m]
}

// MulAdd multiplies every element of src by c and xors the products into
// dst. Elements are packed big-endian, ElemSize bytes each.
func (f *GF) MulAdd(dst, src []byte, c uint32) {
	if c == 0 {
		return
	}
	if f.elemSize == 1 {
		if c == 1 {
			for i := range src {
				dst[i] ^= src[i]
			}
			return
		}
		lc := f.log[c]
		for i := range src {
			if src[i] != 0 {
				dst[i] ^= byte(f.exp[lc+f.log[src[i]]])
			}
		}
		return
	}
	if c == 1 {
		for i := 0; i+1 < len(src); i += 2 {
			dst[i] ^= src[i]
			dst[i+1] ^= src[i+1]
		}
		return
	}
	lc := f.log[c]
	for i := 0; i+1 < len(src); i += 2 {
		v := uint32(src[i])<<8 | uint32(src[i+1])
		if v == 0 {
			continue
		}
		p := f.exp[lc+f.log[v]]
		dst[i] ^= byte(p >> 8)
		dst[i+1] ^= byte(p)
	}
}
