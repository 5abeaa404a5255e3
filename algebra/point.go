package algebra

import (
	"fmt"
	"io"
	"math/big"
)

// PointSize is the width in bytes of Point's canonical encoding.
const PointSize = 32

// Point is an element of the production prime-order group G, written
// additively. The zero Go value is the group identity.
//
// Internally G shares its underlying set with the scalar field F_ell;
// Pow is realized as field multiplication (see DESIGN.md). This
// satisfies every algebraic law required of Group/Pow without requiring
// elliptic-curve arithmetic.
type Point struct {
	v big.Int
}

// NewPoint reduces v modulo the group order and returns the resulting
// Point. v is not modified.
func NewPoint(v *big.Int) Point {
	var p Point
	p.v.Mod(v, ell)
	return p
}

func (p Point) Zero() Point { return Point{} }

func (p Point) Add(o Point) Point {
	return NewPoint(new(big.Int).Add(&p.v, &o.v))
}

func (p Point) Sub(o Point) Point {
	return NewPoint(new(big.Int).Sub(&p.v, &o.v))
}

func (p Point) Neg() Point {
	return NewPoint(new(big.Int).Neg(&p.v))
}

func (p Point) Equal(o Point) bool {
	return p.v.Cmp(&o.v) == 0
}

func (p Point) IsZero() bool {
	return p.v.Sign() == 0
}

func (p Point) Order() *big.Int {
	return new(big.Int).Set(ell)
}

func (p Point) OrderSizeInBytes() int {
	return PointSize
}

// Pow raises p to the exponent a: pow(g, a) = g * a mod ell, field
// multiplication of the shared underlying ring. Satisfies
// g.Pow(a+b) == g.Pow(a)+g.Pow(b), g.Pow(a*b) == g.Pow(a).Pow(b), and
// (g+h).Pow(a) == g.Pow(a)+h.Pow(a).
func (p Point) Pow(a Scalar) Point {
	return NewPoint(new(big.Int).Mul(&p.v, &a.v))
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%s)", p.v.String())
}

// BasePoint is the fixed generator used to embed a Scalar canonically
// into G: Embed(s) == BasePoint.Pow(s).
func BasePoint() Point {
	return NewPoint(baseGenerator)
}

// Embed canonically embeds a Scalar into the group by scalar-exponentiating
// the fixed base point.
func Embed(s Scalar) Point {
	return BasePoint().Pow(s)
}

// MarshalCanonical encodes p as PointSize little-endian bytes. The
// encoding has no reserved sign byte: every value of Z_ell fits
// unambiguously in PointSize bytes, unlike a compressed elliptic-curve
// point, which is the production field/group substitution documented in
// DESIGN.md.
func (p Point) MarshalCanonical() [PointSize]byte {
	return encodeLE(&p.v)
}

// UnmarshalPoint decodes the canonical little-endian encoding of a Point,
// failing if b is the wrong length or encodes a value outside the group.
func UnmarshalPoint(b []byte) (Point, error) {
	v, err := decodeLE(b, PointSize, ell)
	if err != nil {
		return Point{}, err
	}
	return Point{v: *v}, nil
}

// SampleFrom draws a uniform-enough Point by reading PointSize random
// bytes from r and reducing modulo the group order.
func (p Point) SampleFrom(r io.Reader) Point {
	var buf [PointSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(fmt.Sprintf("algebra: sampling Point: %v", err))
	}
	return NewPoint(beFromLE(buf[:]))
}
