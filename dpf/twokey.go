// Package dpf implements the two distributed point function constructions:
// a two-key XOR-based DPF over any byte PRG, and a multi-key
// seed-homomorphic DPF over any exponentiable group PRG, grounded on
// dpf/two_key.rs and dpf/multi_key.rs.
package dpf

import (
	"crypto/rand"
	"fmt"

	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// BytePRG is the PRG interface the two-key DPF is built over. prg.AesPrg
// satisfies it.
type BytePRG interface {
	NewSeed() sampling.Seed
	Eval(seed sampling.Seed) buffer.ByteBuf
	NullOutput() buffer.ByteBuf
	OutputSize() int
}

// TwoKeyKey is one party's share of a two-key DPF instance: an encoded
// message plus, per logical channel, a bit and a PRG seed.
type TwoKeyKey struct {
	EncodedMsg buffer.ByteBuf
	Bits       []uint8
	Seeds      []sampling.Seed
}

// TwoKeyDPF is the two-server DPF construction of dpf/two_key.rs,
// generalized over any BytePRG.
type TwoKeyDPF struct {
	prg       BytePRG
	numPoints int
}

// NewTwoKeyDPF builds a TwoKeyDPF with numPoints logical channels,
// evaluated through prg.
func NewTwoKeyDPF(prg BytePRG, numPoints int) *TwoKeyDPF {
	return &TwoKeyDPF{prg: prg, numPoints: numPoints}
}

// Points returns the number of logical channels.
func (d *TwoKeyDPF) Points() int { return d.numPoints }

// Keys returns the number of DPF keys this construction produces: always 2.
func (d *TwoKeyDPF) Keys() int { return 2 }

// MsgSize returns the per-channel message size in bytes.
func (d *TwoKeyDPF) MsgSize() int { return d.prg.OutputSize() }

// NullMessage is the additive (XOR) identity of the message domain.
func (d *TwoKeyDPF) NullMessage() buffer.ByteBuf { return d.prg.NullOutput() }

// Gen produces the two keys that, when evaluated and combined, reproduce
// msg at channel idx and the null message everywhere else.
func (d *TwoKeyDPF) Gen(msg buffer.ByteBuf, idx int) [2]TwoKeyKey {
	seedsA := make([]sampling.Seed, d.numPoints)
	bitsA := make([]uint8, d.numPoints)
	for i := range seedsA {
		seedsA[i] = d.prg.NewSeed()
		bitsA[i] = randomBit()
	}

	seedsB := make([]sampling.Seed, d.numPoints)
	copy(seedsB, seedsA)
	seedsB[idx] = d.prg.NewSeed()

	bitsB := make([]uint8, d.numPoints)
	copy(bitsB, bitsA)
	bitsB[idx] = 1 - bitsB[idx]

	encodedMsg := d.prg.Eval(seedsA[idx])
	encodedMsg.XorAssign(d.prg.Eval(seedsB[idx]))
	encodedMsg.XorAssign(msg)

	return [2]TwoKeyKey{
		{EncodedMsg: encodedMsg.Clone(), Bits: bitsA, Seeds: seedsA},
		{EncodedMsg: encodedMsg, Bits: bitsB, Seeds: seedsB},
	}
}

// GenEmpty produces a "cover" pair of keys carrying no hidden message: both
// keys are identical, so eval+combine yields the all-null vector.
func (d *TwoKeyDPF) GenEmpty() [2]TwoKeyKey {
	seeds := make([]sampling.Seed, d.numPoints)
	bits := make([]uint8, d.numPoints)
	for i := range seeds {
		seeds[i] = d.prg.NewSeed()
		bits[i] = randomBit()
	}
	encodedMsg := d.prg.Eval(d.prg.NewSeed())

	return [2]TwoKeyKey{
		{EncodedMsg: encodedMsg.Clone(), Bits: bits, Seeds: seeds},
		{EncodedMsg: encodedMsg.Clone(), Bits: append([]uint8(nil), bits...), Seeds: append([]sampling.Seed(nil), seeds...)},
	}
}

// Eval evaluates key at every channel, returning one server's share of the
// output vector.
func (d *TwoKeyDPF) Eval(key TwoKeyKey) []buffer.ByteBuf {
	out := make([]buffer.ByteBuf, len(key.Seeds))
	for i, seed := range key.Seeds {
		v := d.prg.Eval(seed)
		if key.Bits[i] == 1 {
			v.XorAssign(key.EncodedMsg)
		}
		out[i] = v
	}
	return out
}

// Combine XORs the per-server output vectors together, channel by channel.
func (d *TwoKeyDPF) Combine(parts [][]buffer.ByteBuf) []buffer.ByteBuf {
	if len(parts) == 0 {
		panic("dpf: need at least one part to combine")
	}
	out := make([]buffer.ByteBuf, len(parts[0]))
	for i := range out {
		out[i] = parts[0][i].Clone()
	}
	for _, part := range parts[1:] {
		for i := range out {
			out[i].XorAssign(part[i])
		}
	}
	return out
}

func randomBit() uint8 {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("dpf: random bit: %v", err))
	}
	return b[0] & 1
}
