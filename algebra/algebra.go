// Package algebra defines the Monoid/Group/Field capability levels used
// throughout the Spectrum cryptographic core, plus the two concrete
// instances the rest of the core builds on: the production scalar field
// Scalar and the production group Point, both over the prime order ℓ
// (the Ed25519/Ristretto base-point order). A small parameterized toy
// field, IntMod, is also provided purely for property-style law checking
// of higher-level constructions (see DESIGN.md).
package algebra

import "math/big"

// Monoid is a set with an associative, zero-identitied "+".
type Monoid[T any] interface {
	// Zero returns the additive identity. It may be called on any value
	// of T, including a zero Go value, and must ignore the receiver's
	// own state.
	Zero() T
	Add(T) T
	Equal(T) bool
}

// Group is a Monoid with negation and a known, exact prime order.
type Group[T any] interface {
	Monoid[T]
	Neg() T
	Sub(T) T
	// Order returns the exact order of the group as an arbitrary
	// precision integer.
	Order() *big.Int
	// OrderSizeInBytes is the width of the canonical fixed-size encoding.
	OrderSizeInBytes() int
}

// Field is a Group with a commutative multiplication, a one-identity, and
// inverses for nonzero elements.
type Field[T any] interface {
	Group[T]
	One() T
	Mul(T) T
	// Invert returns the multiplicative inverse. Panics if called on the
	// zero element.
	Invert() T
}

// Exponentiable captures the Point.Pow(Scalar) Point relationship: a
// group element that can be raised to a Scalar exponent such that
// g.Pow(a+b) == g.Pow(a) + g.Pow(b), g.Pow(a*b) == g.Pow(a).Pow(b), and
// (g+h).Pow(a) == g.Pow(a) + h.Pow(a).
type Exponentiable[T any] interface {
	Group[T]
	Pow(Scalar) T
}
