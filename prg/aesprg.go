// Package prg implements the two pseudorandom generators used by the DPF
// constructions: AesPrg over raw bytes and GroupPrg, a seed-homomorphic
// generator over any exponentiable algebraic group, grounded on
// constructions/aes_prg.rs and prg/group.rs.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// AesSeedSize is the width in bytes of an AesPrg seed, matching
// sampling.SeedSize since both key AES-128.
const AesSeedSize = sampling.SeedSize

// AesPrg deterministically expands a 16-byte seed to EvalSize bytes by
// encrypting an all-zero plaintext under AES-128-CTR with a zero IV, using
// the seed as the key, then truncating to EvalSize (constructions/aes_prg.rs).
type AesPrg struct {
	EvalSize int
}

// NewAesPrg builds an AesPrg with the given output size. Panics if
// evalSize is smaller than the seed size, since the construction relies on
// treating the seed as a full AES-128 key.
func NewAesPrg(evalSize int) AesPrg {
	if evalSize < AesSeedSize {
		panic(fmt.Sprintf("prg: eval size must be at least %d bytes, got %d", AesSeedSize, evalSize))
	}
	return AesPrg{EvalSize: evalSize}
}

// NewSeed draws a fresh random seed for this PRG.
func (p AesPrg) NewSeed() sampling.Seed {
	return sampling.RandomSeed()
}

// Eval deterministically expands seed to a ByteBuf of length p.EvalSize.
func (p AesPrg) Eval(seed sampling.Seed) buffer.ByteBuf {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		panic(fmt.Sprintf("prg: aes cipher: %v", err))
	}
	iv := make([]byte, aes.BlockSize)
	stream := cipher.NewCTR(block, iv)

	out := buffer.NewByteBuf(p.EvalSize)
	stream.XORKeyStream(out.Bytes(), out.Bytes())
	return out
}

// NullOutput is the additive (XOR) identity of AesPrg's output domain.
func (p AesPrg) NullOutput() buffer.ByteBuf {
	return buffer.NewByteBuf(p.EvalSize)
}

// OutputSize returns the number of bytes produced by Eval.
func (p AesPrg) OutputSize() int {
	return p.EvalSize
}
