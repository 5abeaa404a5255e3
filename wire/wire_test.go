package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/prg"
	"github.com/spectrum-go/spectrumcore/sampling"
	"github.com/spectrum-go/spectrumcore/vdpf"
	"github.com/spectrum-go/spectrumcore/wire"
)

func TestScalarRoundTrip(t *testing.T) {
	var zero algebra.Scalar
	s := sampling.Sample(zero)

	buf := buffer.NewBuffer(nil)
	wire.EncodeScalar(buf, s)

	decoded, err := wire.DecodeScalar(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))
}

func TestPointRoundTrip(t *testing.T) {
	var zero algebra.Point
	p := sampling.Sample(zero)

	buf := buffer.NewBuffer(nil)
	wire.EncodePoint(buf, p)

	decoded, err := wire.DecodePoint(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, p.Equal(decoded))
}

func TestScalarDecodeRejectsWrongLength(t *testing.T) {
	_, err := wire.DecodeScalar(buffer.NewBuffer(make([]byte, 10)))
	assert.Error(t, err)
}

func TestDecodeBitsRejectsTruncatedPacking(t *testing.T) {
	buf := buffer.NewBuffer(nil)
	buf.WriteUint32(100)
	_, err := wire.DecodeBits(buffer.NewBuffer(buf.Bytes()))
	assert.Error(t, err)
}

func TestBitsRoundTripArbitraryLength(t *testing.T) {
	bits := []uint8{1, 0, 1, 1, 0, 0, 0, 1, 1, 0, 1}

	buf := buffer.NewBuffer(nil)
	wire.EncodeBits(buf, bits)

	decoded, err := wire.DecodeBits(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, bits, decoded)
}

func TestTwoKeyKeyRoundTrip(t *testing.T) {
	const numPoints, idx, msgLen = 4, 1, 32
	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	msg := buffer.RandomByteBufCSPRNG(msgLen)
	keys := d.Gen(msg, idx)

	buf := buffer.NewBuffer(nil)
	wire.EncodeTwoKeyKey(buf, keys[0])

	decoded, err := wire.DecodeTwoKeyKey(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, decoded.EncodedMsg.Equal(keys[0].EncodedMsg))
	assert.Equal(t, keys[0].Bits, decoded.Bits)
	assert.Equal(t, keys[0].Seeds, decoded.Seeds)
}

func TestFieldProofShareRoundTrip(t *testing.T) {
	const numPoints, idx, msgLen = 4, 0, 32
	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewFieldVDPF(d)
	accessKeys := v.NewAccessKeys()
	msg := buffer.RandomByteBufCSPRNG(msgLen)
	keys := d.Gen(msg, idx)
	proofs := v.GenProofs(accessKeys[idx], idx, keys)

	buf := buffer.NewBuffer(nil)
	wire.EncodeFieldProofShare(buf, proofs[0])

	decoded, err := wire.DecodeFieldProofShare(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, proofs[0].Bit.Equal(decoded.Bit))
	assert.True(t, proofs[0].Seed.Equal(decoded.Seed))
}

func TestFieldAuditTokenRoundTripAndConcatenation(t *testing.T) {
	const numPoints, idx, msgLen = 4, 0, 32
	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewFieldVDPF(d)
	accessKeys := v.NewAccessKeys()
	msg := buffer.RandomByteBufCSPRNG(msgLen)
	keys := d.Gen(msg, idx)
	proofs := v.GenProofs(accessKeys[idx], idx, keys)
	tokenA := v.GenAudit(accessKeys, keys[0], proofs[0])
	tokenB := v.GenAudit(accessKeys, keys[1], proofs[1])

	buf := buffer.NewBuffer(nil)
	wire.EncodeFieldAuditToken(buf, tokenA)
	wire.EncodeFieldAuditToken(buf, tokenB)

	cursor := buffer.NewBuffer(buf.Bytes())
	decodedA, err := wire.DecodeFieldAuditToken(cursor)
	require.NoError(t, err)
	decodedB, err := wire.DecodeFieldAuditToken(cursor)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor.Len())
	assert.True(t, v.CheckAudit([2]vdpf.FieldAuditToken{decodedA, decodedB}))
}

func TestPubKeyProofShareRoundTrip(t *testing.T) {
	const numPoints, idx, msgLen = 4, 2, 32
	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewPubKeyTwoKeyVDPF(d)
	accessKeys := v.NewAccessKeys()
	msg := buffer.RandomByteBufCSPRNG(msgLen)
	keys := d.Gen(msg, idx)
	proofs := v.GenProofs(accessKeys[idx], idx, keys)

	buf := buffer.NewBuffer(nil)
	wire.EncodePubKeyProofShare(buf, proofs[0])

	decoded, err := wire.DecodePubKeyProofShare(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, proofs[0].Seed.Equal(decoded.Seed))
	assert.True(t, proofs[0].Bit.Equal(decoded.Bit))
}

func newTestGroupPrg(n int) *prg.GroupPrg[algebra.Point] {
	var zero algebra.Point
	gens := sampling.SampleMany(zero, n)
	return prg.NewGroupPrg(prg.NewElementVec(gens))
}

func TestMultiKeyKeyRoundTrip(t *testing.T) {
	const numPoints, numKeys, idx = 3, 3, 2
	groupPrg := newTestGroupPrg(numPoints)
	d := dpf.NewMultiKeyDPF[algebra.Point](groupPrg, numPoints, numKeys)

	var zeroPoint algebra.Point
	msgElems := sampling.SampleMany(zeroPoint, numPoints)
	msg := prg.NewElementVec(msgElems)
	keys := d.Gen(msg, idx)

	buf := buffer.NewBuffer(nil)
	wire.EncodeMultiKeyKey(buf, keys[0])

	decoded, err := wire.DecodeMultiKeyKey(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, decoded.EncodedMsg.Equal(keys[0].EncodedMsg))
	assert.Equal(t, keys[0].Bits, decoded.Bits)
	require.Len(t, decoded.Seeds, len(keys[0].Seeds))
	for i := range keys[0].Seeds {
		assert.True(t, keys[0].Seeds[i].Equal(decoded.Seeds[i]))
	}
}

func TestMultiKeyAuditTokenRoundTrip(t *testing.T) {
	const numPoints, numKeys, idx = 3, 3, 1
	groupPrg := newTestGroupPrg(numPoints)
	d := dpf.NewMultiKeyDPF[algebra.Point](groupPrg, numPoints, numKeys)
	v := vdpf.NewMultiKeyFieldVDPF(d)
	accessKeys := v.NewAccessKeys()

	var zeroPoint algebra.Point
	msgElems := sampling.SampleMany(zeroPoint, numPoints)
	msg := prg.NewElementVec(msgElems)
	keys := d.Gen(msg, idx)
	proofs := v.GenProofs(accessKeys[idx], idx, keys)
	token := v.GenAudit(accessKeys, keys[0], proofs[0])

	buf := buffer.NewBuffer(nil)
	wire.EncodeMultiKeyAuditToken(buf, token)

	decoded, err := wire.DecodeMultiKeyAuditToken(buffer.NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, token.Bit.Equal(decoded.Bit))
	assert.True(t, token.Seed.Equal(decoded.Seed))
	assert.Equal(t, token.DataHash, decoded.DataHash)
}
