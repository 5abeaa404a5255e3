package prg

import (
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// GroupPrg is a seed-homomorphic PRG over an exponentiable group: its
// seed is a Scalar, its output an ElementVec of a fixed list of
// generators, and Eval is pointwise Pow (prg/group.rs's GroupPrg).
type GroupPrg[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	generators ElementVec[G]
}

// NewGroupPrg builds a GroupPrg over the given (fixed) generator vector.
func NewGroupPrg[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}](generators ElementVec[G]) *GroupPrg[G] {
	return &GroupPrg[G]{generators: generators}
}

// NewGroupPrgFromSeed derives n generators deterministically from seed, so
// that every party can independently reconstruct the same public
// generator vector (prg/group.rs's GroupPrg::from_seed).
func NewGroupPrgFromSeed[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
	sampling.Sampleable[G]
}](n int, seed sampling.Seed) *GroupPrg[G] {
	var zero G
	generators := sampling.SampleManyFromSeed(zero, seed, n)
	return &GroupPrg[G]{generators: NewElementVec(generators)}
}

// OutputSize is the number of generators (and hence the length of Eval's
// output vector).
func (p *GroupPrg[G]) OutputSize() int {
	return p.generators.Len()
}

// NewSeed draws a fresh random Scalar seed.
func (p *GroupPrg[G]) NewSeed() algebra.Scalar {
	var zero algebra.Scalar
	return sampling.Sample(zero)
}

// Eval raises every generator to seed, the group-PRG analogue of AesPrg's
// byte expansion: generators[i].Pow(seed) for each i.
func (p *GroupPrg[G]) Eval(seed algebra.Scalar) ElementVec[G] {
	out := make([]G, p.generators.Len())
	for i, g := range p.generators.Elements() {
		out[i] = g.Pow(seed)
	}
	return NewElementVec(out)
}

// NullOutput is the vector of group identities, one per generator.
func (p *GroupPrg[G]) NullOutput() ElementVec[G] {
	return NullElementVec[G](p.generators.Len())
}

// NullSeed is the additive identity of the seed field: Scalar zero.
func (p *GroupPrg[G]) NullSeed() algebra.Scalar {
	var zero algebra.Scalar
	return zero
}

// CombineSeeds sums a set of seeds. The critical seed-homomorphism law
// this enables is: combine_outputs(eval(s_i)) == eval(combine_seeds(s_i)),
// which follows from Point.Pow's distributivity over scalar addition.
func (p *GroupPrg[G]) CombineSeeds(seeds []algebra.Scalar) algebra.Scalar {
	sum := p.NullSeed()
	for _, s := range seeds {
		sum = sum.Add(s)
	}
	return sum
}

// CombineOutputs sums a set of output vectors pointwise.
func (p *GroupPrg[G]) CombineOutputs(outputs []ElementVec[G]) ElementVec[G] {
	combined := p.NullOutput()
	for _, out := range outputs {
		combined = combined.Add(out)
	}
	return combined
}
