package prg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/prg"
	"github.com/spectrum-go/spectrumcore/sampling"
)

func TestAesPrgDeterministic(t *testing.T) {
	p := prg.NewAesPrg(64)
	seed := p.NewSeed()

	a := p.Eval(seed)
	b := p.Eval(seed)
	assert.True(t, a.Equal(b))
}

func TestAesPrgDistinctSeedsDiverge(t *testing.T) {
	p := prg.NewAesPrg(64)
	a := p.Eval(p.NewSeed())
	b := p.Eval(p.NewSeed())
	assert.False(t, a.Equal(b))
}

func TestAesPrgRejectsSmallEvalSize(t *testing.T) {
	assert.Panics(t, func() { prg.NewAesPrg(prg.AesSeedSize - 1) })
}

func TestAesPrgNullOutputIsZero(t *testing.T) {
	p := prg.NewAesPrg(32)
	null := p.NullOutput()
	assert.Equal(t, make([]byte, 32), null.Bytes())
}

func newTestGroupPrg(n int) *prg.GroupPrg[algebra.Point] {
	var zero algebra.Point
	gens := sampling.SampleMany(zero, n)
	return prg.NewGroupPrg(prg.NewElementVec(gens))
}

func TestGroupPrgDeterministic(t *testing.T) {
	p := newTestGroupPrg(4)
	seed := p.NewSeed()
	a := p.Eval(seed)
	b := p.Eval(seed)
	assert.True(t, a.Equal(b))
}

func TestGroupPrgDistinctSeedsDiverge(t *testing.T) {
	p := newTestGroupPrg(4)
	a := p.Eval(p.NewSeed())
	b := p.Eval(p.NewSeed())
	assert.False(t, a.Equal(b))
}

func TestGroupPrgSeedHomomorphism(t *testing.T) {
	p := newTestGroupPrg(3)
	s1 := p.NewSeed()
	s2 := p.NewSeed()

	combinedSeed := p.CombineSeeds([]algebra.Scalar{s1, s2})
	lhs := p.Eval(combinedSeed)

	rhs := p.CombineOutputs([]prg.ElementVec[algebra.Point]{p.Eval(s1), p.Eval(s2)})

	assert.True(t, lhs.Equal(rhs))
}

func TestGroupPrgNullSeedIdentity(t *testing.T) {
	p := newTestGroupPrg(3)
	s := p.NewSeed()

	combined := p.CombineSeeds([]algebra.Scalar{s, p.NullSeed()})
	assert.True(t, combined.Equal(s))
}

func TestGroupPrgNullOutputIdentity(t *testing.T) {
	p := newTestGroupPrg(3)
	s := p.NewSeed()
	out := p.Eval(s)

	combined := p.CombineOutputs([]prg.ElementVec[algebra.Point]{out, p.NullOutput()})
	assert.True(t, combined.Equal(out))
}

func TestGroupPrgFromSeedReproducible(t *testing.T) {
	seed := sampling.RandomSeed()
	a := prg.NewGroupPrgFromSeed[algebra.Point](5, seed)
	b := prg.NewGroupPrgFromSeed[algebra.Point](5, seed)

	s := a.NewSeed()
	require.True(t, a.Eval(s).Equal(b.Eval(s)))
}

func TestElementVecMarshalCanonicalLength(t *testing.T) {
	var zero algebra.Point
	vals := sampling.SampleMany(zero, 3)
	vec := prg.NewElementVec(vals)
	assert.Len(t, vec.MarshalCanonical(), 3*algebra.PointSize)
}
