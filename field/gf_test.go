package field

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGFShape(t *testing.T) {
	tests := []struct {
		name     string
		f        *GF
		bits     int
		order    int
		elemSize int
	}{
		{"GF(2^8)", NewGF8(), 8, 256, 1},
		{"GF(2^16)", NewGF16(), 16, 65536, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.f.Bits() != tt.bits {
				t.Errorf("Bits() = %d, want %d", tt.f.Bits(), tt.bits)
			}
			if tt.f.Order() != tt.order {
				t.Errorf("Order() = %d, want %d", tt.f.Order(), tt.order)
			}
			if tt.f.ElemSize() != tt.elemSize {
				t.Errorf("ElemSize() = %d, want %d", tt.f.ElemSize(), tt.elemSize)
			}
		})
	}
}

func TestGFTablesShared(t *testing.T) {
	if NewGF8() != NewGF8() {
		t.Error("NewGF8 should return the shared instance")
	}
	if NewGF16() != NewGF16() {
		t.Error("NewGF16 should return the shared instance")
	}
}

func TestGFAdd(t *testing.T) {
	f := NewGF8()
	if got := f.Add(0x12, 0x9A); got != 0x88 {
		t.Errorf("Add(0x12, 0x9A) = %#x, want 0x88", got)
	}
	// Every element is its own additive inverse.
	for a := uint32(0); a < 256; a++ {
		if f.Add(a, a) != 0 {
			t.Fatalf("Add(%#x, %#x) != 0", a, a)
		}
	}
}

func TestGF8KnownProducts(t *testing.T) {
	f := NewGF8()
	tests := []struct{ a, b, want uint32 }{
		{0, 0x47, 0},
		{0x47, 0, 0},
		{1, 0x47, 0x47},
		{2, 2, 4},
		{2, 4, 8},
		{3, 3, 5},       // (x+1)^2 = x^2+1
		{16, 16, 0x1D},  // x^8 reduced by 0x11D
		{2, 0x80, 0x1D}, // same reduction, reached by doubling
	}
	for _, tt := range tests {
		if got := f.Mul(tt.a, tt.b); got != tt.want {
			t.Errorf("Mul(%#x, %#x) = %#x, want %#x", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGF16KnownProducts(t *testing.T) {
	f := NewGF16()
	tests := []struct{ a, b, want uint32 }{
		{0, 0x1234, 0},
		{1, 0x1234, 0x1234},
		{2, 2, 4},
		{2, 0x8000, 0x100B}, // x^16 reduced by 0x1100B
	}
	for _, tt := range tests {
		if got := f.Mul(tt.a, tt.b); got != tt.want {
			t.Errorf("Mul(%#x, %#x) = %#x, want %#x", tt.a, tt.b, got, tt.want)
		}
	}
	if got := f.Pow(2, 16); got != 0x100B {
		t.Errorf("Pow(2, 16) = %#x, want 0x100B", got)
	}
}

func TestGFInverse(t *testing.T) {
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		for a := uint32(1); a < uint32(f.Order()); a++ {
			inv, err := f.Inv(a)
			if err != nil {
				t.Fatalf("GF(2^%d): Inv(%#x) failed: %v", f.Bits(), a, err)
			}
			if got := f.Mul(a, inv); got != 1 {
				t.Fatalf("GF(2^%d): %#x * Inv(%#x) = %#x, want 1", f.Bits(), a, a, got)
			}
		}
	}
}

func TestGFDivideByZero(t *testing.T) {
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		if _, err := f.Inv(0); !errors.Is(err, ErrDivideByZero) {
			t.Errorf("GF(2^%d): Inv(0) error = %v, want ErrDivideByZero", f.Bits(), err)
		}
		if _, err := f.Div(5, 0); !errors.Is(err, ErrDivideByZero) {
			t.Errorf("GF(2^%d): Div(5, 0) error = %v, want ErrDivideByZero", f.Bits(), err)
		}
		got, err := f.Div(0, 5)
		if err != nil || got != 0 {
			t.Errorf("GF(2^%d): Div(0, 5) = %#x, %v, want 0, nil", f.Bits(), got, err)
		}
	}
}

func TestGFDivMulRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		max := uint32(f.Order())
		for i := 0; i < 1000; i++ {
			a := rng.Uint32() % max
			b := rng.Uint32()%(max-1) + 1 // non-zero divisor
			q, err := f.Div(f.Mul(a, b), b)
			if err != nil {
				t.Fatalf("GF(2^%d): Div failed: %v", f.Bits(), err)
			}
			if q != a {
				t.Fatalf("GF(2^%d): (%#x*%#x)/%#x = %#x, want %#x", f.Bits(), a, b, b, q, a)
			}
		}
	}
}

func TestGFPow(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		if got := f.Pow(0, 0); got != 1 {
			t.Errorf("GF(2^%d): Pow(0, 0) = %#x, want 1", f.Bits(), got)
		}
		if got := f.Pow(0, 7); got != 0 {
			t.Errorf("GF(2^%d): Pow(0, 7) = %#x, want 0", f.Bits(), got)
		}
		for i := 0; i < 200; i++ {
			a := rng.Uint32() % uint32(f.Order())
			n := rng.Intn(300)
			want := uint32(1)
			for j := 0; j < n; j++ {
				want = f.Mul(want, a)
			}
			if got := f.Pow(a, n); got != want {
				t.Fatalf("GF(2^%d): Pow(%#x, %d) = %#x, want %#x", f.Bits(), a, n, got, want)
			}
		}
	}
}

func TestGFGeneratorOrder(t *testing.T) {
	// The generator's powers must enumerate every non-zero element before
	// cycling back to one; that is what makes the log/exp tables valid.
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		seen := make(map[uint32]bool, f.Order()-1)
		x := uint32(1)
		for i := 0; i < f.Order()-1; i++ {
			if seen[x] {
				t.Fatalf("GF(2^%d): generator cycles after %d powers", f.Bits(), i)
			}
			seen[x] = true
			x = f.Mul(x, f.Generator())
		}
		if x != 1 {
			t.Fatalf("GF(2^%d): generator^(order-1) = %#x, want 1", f.Bits(), x)
		}
	}
}

func TestGFMulAdd(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("GF(2^8)", func(t *testing.T) {
		f := NewGF8()
		src := make([]byte, 64)
		rng.Read(src)
		for _, c := range []uint32{0, 1, 2, 0x1D, 0xFF} {
			dst := make([]byte, 64)
			rng.Read(dst)
			want := make([]byte, 64)
			for i := range want {
				want[i] = dst[i] ^ byte(f.Mul(c, uint32(src[i])))
			}
			f.MulAdd(dst, src, c)
			for i := range want {
				if dst[i] != want[i] {
					t.Fatalf("c=%#x: dst[%d] = %#x, want %#x", c, i, dst[i], want[i])
				}
			}
		}
	})

	t.Run("GF(2^16)", func(t *testing.T) {
		f := NewGF16()
		src := make([]byte, 64)
		rng.Read(src)
		for _, c := range []uint32{0, 1, 2, 0x100B, 0xFFFF} {
			dst := make([]byte, 64)
			rng.Read(dst)
			want := make([]byte, 64)
			copy(want, dst)
			for i := 0; i < 64; i += 2 {
				v := uint32(src[i])<<8 | uint32(src[i+1])
				p := f.Mul(c, v)
				want[i] ^= byte(p >> 8)
				want[i+1] ^= byte(p)
			}
			f.MulAdd(dst, src, c)
			for i := range want {
				if dst[i] != want[i] {
					t.Fatalf("c=%#x: dst[%d] = %#x, want %#x", c, i, dst[i], want[i])
				}
			}
		}
	})
}

func TestGFDistributive(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, f := range []*GF{NewGF8(), NewGF16()} {
		max := uint32(f.Order())
		for i := 0; i < 500; i++ {
			a, b, c := rng.Uint32()%max, rng.Uint32()%max, rng.Uint32()%max
			left := f.Mul(a, f.Add(b, c))
			right := f.Add(f.Mul(a, b), f.Mul(a, c))
			if left != right {
				t.Fatalf("GF(2^%d): %#x*(%#x+%#x): %#x != %#x", f.Bits(), a, b, c, left, right)
			}
			if f.Mul(a, b) != f.Mul(b, a) {
				t.Fatalf("GF(2^%d): Mul not commutative for %#x, %#x", f.Bits(), a, b)
			}
		}
	}
}
