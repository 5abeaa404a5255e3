package algebra

import (
	"fmt"
	"io"
)

// IntMod is a small field Z/nZ for n a prime < 256, used exclusively by
// the property-based law-checking test suites in this module and its
// dependents, where a cheap, exhaustively-checkable field is more useful
// than the production one of order about 2^252.
//
// Unlike Scalar, the modulus travels with the value itself rather than
// being a package-level constant, since tests exercise several distinct
// small primes in the same process.
type IntMod struct {
	v uint8
	n uint8
}

// NewIntMod builds an IntMod element of value v modulo the prime n.
func NewIntMod(n, v uint8) IntMod {
	return IntMod{v: v % n, n: n}
}

func (m IntMod) checkCompatible(o IntMod) {
	if m.n != o.n {
		panic(fmt.Sprintf("algebra: IntMod modulus mismatch: %d vs %d", m.n, o.n))
	}
}

func (m IntMod) Zero() IntMod { return IntMod{v: 0, n: m.n} }
func (m IntMod) One() IntMod  { return IntMod{v: 1 % m.n, n: m.n} }

func (m IntMod) Add(o IntMod) IntMod {
	m.checkCompatible(o)
	return IntMod{v: uint8((uint16(m.v) + uint16(o.v)) % uint16(m.n)), n: m.n}
}

func (m IntMod) Sub(o IntMod) IntMod {
	m.checkCompatible(o)
	return IntMod{v: uint8((uint16(m.v) + uint16(m.n) - uint16(o.v)) % uint16(m.n)), n: m.n}
}

func (m IntMod) Neg() IntMod {
	return IntMod{v: (m.n - m.v) % m.n, n: m.n}
}

func (m IntMod) Mul(o IntMod) IntMod {
	m.checkCompatible(o)
	return IntMod{v: uint8((uint16(m.v) * uint16(o.v)) % uint16(m.n)), n: m.n}
}

// Invert returns the multiplicative inverse via Fermat's little theorem
// (n is prime). Panics if m is zero.
func (m IntMod) Invert() IntMod {
	if m.v == 0 {
		panic("algebra: mul_invert of zero IntMod element")
	}
	// a^(n-2) mod n
	result := IntMod{v: 1 % m.n, n: m.n}
	base := m
	exp := m.n - 2
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

func (m IntMod) Equal(o IntMod) bool {
	return m.n == o.n && m.v == o.v
}

// OrderBig returns the modulus as a plain uint8, named distinctly from the
// Group interface's Order to avoid importing math/big solely for an 8-bit
// toy value; IntMod is not wired to the Group interface for this reason.
func (m IntMod) OrderBig() uint8 { return m.n }

func (m IntMod) Value() uint8 { return m.v }

// SampleFrom draws a uniform element of Z/nZ by rejection sampling a
// single byte from r.
func (m IntMod) SampleFrom(r io.Reader) IntMod {
	n := m.n
	limit := uint8(256 - (256 % int(n)))
	var b [1]byte
	for {
		if _, err := r.Read(b[:]); err != nil {
			panic(fmt.Sprintf("algebra: sampling IntMod: %v", err))
		}
		if b[0] < limit || limit == 0 {
			return IntMod{v: b[0] % n, n: n}
		}
	}
}
