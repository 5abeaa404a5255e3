package algebra

import (
	"fmt"
	"io"
	"math/big"
)

// ScalarSize is the width in bytes of Scalar's canonical encoding.
const ScalarSize = 32

// Scalar is an element of the production prime field F_ell. The zero
// Go value is the additive identity.
type Scalar struct {
	v big.Int
}

// NewScalar reduces v modulo the field order and returns the resulting
// Scalar. v is not modified.
func NewScalar(v *big.Int) Scalar {
	var s Scalar
	s.v.Mod(v, ell)
	return s
}

// ScalarFromUint64 embeds a uint64 into the field.
func ScalarFromUint64(x uint64) Scalar {
	return NewScalar(new(big.Int).SetUint64(x))
}

func (s Scalar) Zero() Scalar { return Scalar{} }
func (s Scalar) One() Scalar  { return NewScalar(big.NewInt(1)) }

func (s Scalar) Add(o Scalar) Scalar {
	return NewScalar(new(big.Int).Add(&s.v, &o.v))
}

func (s Scalar) Sub(o Scalar) Scalar {
	return NewScalar(new(big.Int).Sub(&s.v, &o.v))
}

func (s Scalar) Neg() Scalar {
	return NewScalar(new(big.Int).Neg(&s.v))
}

func (s Scalar) Mul(o Scalar) Scalar {
	return NewScalar(new(big.Int).Mul(&s.v, &o.v))
}

// Invert returns the multiplicative inverse of s. Panics if s is zero.
func (s Scalar) Invert() Scalar {
	if s.v.Sign() == 0 {
		panic("algebra: mul_invert of zero scalar")
	}
	var out Scalar
	out.v.ModInverse(&s.v, ell)
	return out
}

func (s Scalar) Equal(o Scalar) bool {
	return s.v.Cmp(&o.v) == 0
}

func (s Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

func (s Scalar) Order() *big.Int {
	return new(big.Int).Set(ell)
}

func (s Scalar) OrderSizeInBytes() int {
	return ScalarSize
}

func (s Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.v.String())
}

// MarshalCanonical encodes s as ScalarSize little-endian bytes.
func (s Scalar) MarshalCanonical() [ScalarSize]byte {
	return encodeLE(&s.v)
}

// UnmarshalScalar decodes the canonical little-endian encoding of a
// Scalar, failing if b is the wrong length or encodes a value >= the
// field order.
func UnmarshalScalar(b []byte) (Scalar, error) {
	v, err := decodeLE(b, ScalarSize, ell)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{v: *v}, nil
}

// SampleFrom draws a uniform-enough Scalar by reading ScalarSize random
// bytes from r and reducing modulo the field order. r is expected to be
// either the process CSPRNG or a deterministic seeded stream.
func (s Scalar) SampleFrom(r io.Reader) Scalar {
	var buf [ScalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(fmt.Sprintf("algebra: sampling Scalar: %v", err))
	}
	return NewScalar(beFromLE(buf[:]))
}

// encodeLE encodes a nonnegative big.Int as ScalarSize little-endian bytes.
func encodeLE(v *big.Int) [ScalarSize]byte {
	var out [ScalarSize]byte
	be := v.Bytes()
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// decodeLE decodes `size` little-endian bytes as a big.Int, requiring the
// result to be strictly less than modulus.
func decodeLE(b []byte, size int, modulus *big.Int) (*big.Int, error) {
	if len(b) != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecode, size, len(b))
	}
	v := beFromLE(b)
	if v.Cmp(modulus) >= 0 {
		return nil, fmt.Errorf("%w: value out of range", ErrDecode)
	}
	return v, nil
}

func beFromLE(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}
