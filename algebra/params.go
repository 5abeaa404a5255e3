package algebra

import (
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// ell is the order of the production scalar field and production group:
// the well-known Ed25519/Ristretto base-point order, reused here as an
// ordinary big.Int modulus (see DESIGN.md's Open Question resolution for
// why this is not an elliptic-curve implementation).
//
//	ell = 2^252 + 27742317777372353535851937790883648493
var ell = mustParseDecimal("7237005577332262213973186563042994240857116359379907606001950938285454250989")

// baseGenerator is the fixed nonzero constant used to embed a Scalar into
// Point via Pow. Any nonzero element of Z_ell generates the whole group,
// since ell is prime. It is derived deterministically from a fixed
// domain-separation string via blake2b rather than hand-picked, so the
// constant is reproducibly "nothing up my sleeve".
var baseGenerator = deriveGenerator("spectrum/algebra/base-point")

func deriveGenerator(domain string) *big.Int {
	h := blake2b.Sum256([]byte(domain))
	v := new(big.Int).Mod(new(big.Int).SetBytes(h[:]), ell)
	if v.Sign() == 0 {
		v.SetInt64(1)
	}
	return v
}

func mustParseDecimal(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("algebra: invalid decimal constant " + s)
	}
	return v
}
