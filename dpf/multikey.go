package dpf

import (
	"fmt"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/prg"
)

// GroupPRG is the seed-homomorphic PRG interface the multi-key DPF is
// built over. *prg.GroupPrg[G] satisfies it.
type GroupPRG[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] interface {
	NewSeed() algebra.Scalar
	Eval(seed algebra.Scalar) prg.ElementVec[G]
	NullOutput() prg.ElementVec[G]
	NullSeed() algebra.Scalar
	CombineSeeds(seeds []algebra.Scalar) algebra.Scalar
	CombineOutputs(outputs []prg.ElementVec[G]) prg.ElementVec[G]
	OutputSize() int
}

// MultiKeyKey is one server's share of a multi-key DPF instance.
type MultiKeyKey[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	EncodedMsg prg.ElementVec[G]
	Bits       []uint8
	Seeds      []algebra.Scalar
}

// MultiKeyDPF is the k-server seed-homomorphic DPF construction of
// dpf/multi_key.rs, generalized over any GroupPRG.
//
// dpf/multi_key.rs's eval never collects its per-channel results into the
// returned vector (it evaluates combine_outputs/eval for side effect only
// and always returns an empty vec). Eval below fixes that: it builds and
// returns one output element per channel, as every caller (Combine,
// completeness tests) requires.
type MultiKeyDPF[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	prg       GroupPRG[G]
	numPoints int
	numKeys   int
}

// NewMultiKeyDPF builds a MultiKeyDPF with numPoints logical channels and
// numKeys servers, evaluated through groupPrg.
func NewMultiKeyDPF[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}](groupPrg GroupPRG[G], numPoints, numKeys int) *MultiKeyDPF[G] {
	if numKeys < 2 {
		panic(fmt.Sprintf("dpf: multi-key DPF needs at least two keys, got %d", numKeys))
	}
	return &MultiKeyDPF[G]{prg: groupPrg, numPoints: numPoints, numKeys: numKeys}
}

func (d *MultiKeyDPF[G]) Points() int { return d.numPoints }
func (d *MultiKeyDPF[G]) Keys() int   { return d.numKeys }
func (d *MultiKeyDPF[G]) MsgSize() int { return d.prg.OutputSize() }

// NullMessage is the additive identity of the message domain.
func (d *MultiKeyDPF[G]) NullMessage() prg.ElementVec[G] { return d.prg.NullOutput() }

// GenEmpty produces numKeys keys whose seed columns sum to the null seed
// and whose bit columns XOR to zero at every channel, so that Eval+Combine
// of the resulting keys yields the all-null vector: a "cover" generation.
func (d *MultiKeyDPF[G]) GenEmpty() []MultiKeyKey[G] {
	seeds := make([][]algebra.Scalar, d.numKeys)
	for i := 0; i < d.numKeys-1; i++ {
		col := make([]algebra.Scalar, d.numPoints)
		for j := range col {
			col[j] = d.prg.NewSeed()
		}
		seeds[i] = col
	}
	lastSeeds := make([]algebra.Scalar, d.numPoints)
	for j := range lastSeeds {
		acc := d.prg.NullSeed()
		for i := 0; i < d.numKeys-1; i++ {
			acc = acc.Sub(seeds[i][j])
		}
		lastSeeds[j] = acc
	}
	seeds[d.numKeys-1] = lastSeeds

	bits := make([][]uint8, d.numKeys)
	for i := 0; i < d.numKeys; i++ {
		bits[i] = make([]uint8, d.numPoints)
	}
	lastBits := make([]uint8, d.numPoints)
	for i := 0; i < d.numKeys-1; i++ {
		for j := range lastBits {
			lastBits[j] ^= bits[i][j]
		}
	}
	bits[d.numKeys-1] = lastBits

	encodedMsg := d.prg.Eval(d.prg.NewSeed())

	keys := make([]MultiKeyKey[G], d.numKeys)
	for i := range keys {
		keys[i] = MultiKeyKey[G]{
			EncodedMsg: encodedMsg,
			Bits:       bits[i],
			Seeds:      seeds[i],
		}
	}
	return keys
}

// Gen produces numKeys keys that, when evaluated and combined, reproduce
// msg at channel idx and the null message everywhere else.
func (d *MultiKeyDPF[G]) Gen(msg prg.ElementVec[G], idx int) []MultiKeyKey[G] {
	keys := d.GenEmpty()

	specialSeed := d.prg.NewSeed()
	keys[0].Seeds[idx] = keys[0].Seeds[idx].Add(specialSeed)
	keys[0].Bits[idx] ^= 1

	neg := d.prg.NullSeed().Sub(specialSeed)
	encodedMsg := d.prg.CombineOutputs([]prg.ElementVec[G]{msg, d.prg.Eval(neg)})

	for i := range keys {
		keys[i].EncodedMsg = encodedMsg
	}
	return keys
}

// Eval evaluates key at every channel, returning one server's share of the
// output vector.
func (d *MultiKeyDPF[G]) Eval(key MultiKeyKey[G]) []prg.ElementVec[G] {
	out := make([]prg.ElementVec[G], len(key.Seeds))
	for i, seed := range key.Seeds {
		evaluated := d.prg.Eval(seed)
		if key.Bits[i] == 1 {
			out[i] = d.prg.CombineOutputs([]prg.ElementVec[G]{key.EncodedMsg, evaluated})
		} else {
			out[i] = evaluated
		}
	}
	return out
}

// Combine sums the per-server output vectors together, channel by channel:
// combine([[a,b],[c,d],[e,f]]) == [a+c+e, b+d+f].
func (d *MultiKeyDPF[G]) Combine(parts [][]prg.ElementVec[G]) []prg.ElementVec[G] {
	if len(parts) == 0 {
		panic("dpf: need at least one part to combine")
	}
	numPoints := len(parts[0])
	out := make([]prg.ElementVec[G], numPoints)
	for j := 0; j < numPoints; j++ {
		column := make([]prg.ElementVec[G], len(parts))
		for i, part := range parts {
			column[i] = part[j]
		}
		out[j] = d.prg.CombineOutputs(column)
	}
	return out
}
