package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-go/spectrumcore/accumulator"
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/prg"
	"github.com/spectrum-go/spectrumcore/protocol"
	"github.com/spectrum-go/spectrumcore/sampling"
	"github.com/spectrum-go/spectrumcore/vdpf"
)

func TestInsecureProtocolBroadcastPassesAudit(t *testing.T) {
	const parties, channels, msgLen = 3, 4, 8
	p := protocol.NewInsecureProtocol(parties, channels, msgLen)

	keys := make([]protocol.InsecureChannelKey, channels)
	for i := range keys {
		keys[i] = protocol.InsecureChannelKey{Idx: i, Password: "correct-horse"}
	}

	msg := buffer.RandomByteBufCSPRNG(msgLen)
	tokens := p.Broadcast(msg, 2, keys[2])
	require.Len(t, tokens, parties)

	shares := make([][]bool, parties)
	for i, tok := range tokens {
		shares[i] = p.GenAudit(keys, tok)
	}
	for party := 0; party < parties; party++ {
		column := make([]bool, parties)
		for i := range shares {
			column[i] = shares[i][party]
		}
		assert.True(t, p.CheckAudit(column))
	}
}

func TestInsecureProtocolWrongPasswordFailsAudit(t *testing.T) {
	const parties, channels, msgLen = 2, 2, 8
	p := protocol.NewInsecureProtocol(parties, channels, msgLen)

	keys := []protocol.InsecureChannelKey{{Idx: 0, Password: "a"}, {Idx: 1, Password: "b"}}
	badKey := protocol.InsecureChannelKey{Idx: 1, Password: "wrong"}

	msg := buffer.RandomByteBufCSPRNG(msgLen)
	tokens := p.Broadcast(msg, 1, badKey)

	share := p.GenAudit(keys, tokens[parties-1])
	assert.False(t, p.CheckAudit(share))
}

func TestInsecureProtocolCoverPassesAuditAndAccumulatesNothing(t *testing.T) {
	const parties, channels, msgLen = 3, 3, 8
	p := protocol.NewInsecureProtocol(parties, channels, msgLen)
	keys := []protocol.InsecureChannelKey{{Idx: 0, Password: "a"}, {Idx: 1, Password: "b"}, {Idx: 2, Password: "c"}}

	tokens := p.Cover()
	for _, tok := range tokens {
		assert.True(t, p.CheckAudit(p.GenAudit(keys, tok)))
		contribution := p.ToAccumulator(tok)
		for _, c := range contribution {
			assert.True(t, c.Equal(buffer.NewByteBuf(msgLen)))
		}
	}
}

func TestInsecureProtocolToAccumulatorRecoversMessage(t *testing.T) {
	const parties, channels, msgLen = 2, 3, 8
	p := protocol.NewInsecureProtocol(parties, channels, msgLen)
	key := protocol.InsecureChannelKey{Idx: 1, Password: "p"}
	msg := buffer.RandomByteBufCSPRNG(msgLen)

	tokens := p.Broadcast(msg, 1, key)
	store := accumulator.New(p.NewAccumulator())
	for _, tok := range tokens {
		store.Accumulate(p.ToAccumulator(tok))
	}

	values, _ := store.Snapshot()
	assert.True(t, values[1].Equal(msg))
	assert.True(t, values[0].Equal(buffer.NewByteBuf(msgLen)))
	assert.True(t, values[2].Equal(buffer.NewByteBuf(msgLen)))
}

func TestTwoKeyProtocolBroadcastRoundTrip(t *testing.T) {
	const numPoints, idx, msgLen = 4, 2, 32

	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewFieldVDPF(d)
	p := protocol.NewTwoKeyProtocol(v)

	accessKeys := v.NewAccessKeys()
	msg := buffer.RandomByteBufCSPRNG(msgLen)

	tokens := p.Broadcast(msg, idx, accessKeys[idx])
	require.Len(t, tokens, 2)

	shares := make([]vdpf.FieldAuditToken, 2)
	for i, tok := range tokens {
		shares[i] = p.GenAudit(accessKeys, tok)[i]
	}
	assert.True(t, p.CheckAudit(shares))

	store := accumulator.New(p.NewAccumulator())
	for _, tok := range tokens {
		store.Accumulate(p.ToAccumulator(tok))
	}
	values, _ := store.Snapshot()
	assert.True(t, values[idx].Equal(msg))
}

func TestTwoKeyProtocolCoverRoundTrip(t *testing.T) {
	const numPoints, msgLen = 4, 32

	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewFieldVDPF(d)
	p := protocol.NewTwoKeyProtocol(v)

	accessKeys := v.NewAccessKeys()
	tokens := p.Cover()

	shares := make([]vdpf.FieldAuditToken, 2)
	for i, tok := range tokens {
		shares[i] = p.GenAudit(accessKeys, tok)[i]
	}
	assert.True(t, p.CheckAudit(shares))

	store := accumulator.New(p.NewAccumulator())
	for _, tok := range tokens {
		store.Accumulate(p.ToAccumulator(tok))
	}
	values, _ := store.Snapshot()
	for _, v := range values {
		assert.True(t, v.Equal(buffer.NewByteBuf(msgLen)))
	}
}

func newTestGroupPrg(n int) *prg.GroupPrg[algebra.Point] {
	var zero algebra.Point
	gens := sampling.SampleMany(zero, n)
	return prg.NewGroupPrg(prg.NewElementVec(gens))
}

func TestMultiKeyProtocolBroadcastRoundTrip(t *testing.T) {
	const numPoints, numKeys, idx = 3, 3, 1

	groupPrg := newTestGroupPrg(numPoints)
	d := dpf.NewMultiKeyDPF[algebra.Point](groupPrg, numPoints, numKeys)
	v := vdpf.NewMultiKeyFieldVDPF(d)
	p := protocol.NewMultiKeyProtocol(v)

	accessKeys := v.NewAccessKeys()
	var zeroPoint algebra.Point
	msgElems := sampling.SampleMany(zeroPoint, numPoints)
	msg := prg.NewElementVec(msgElems)

	tokens := p.Broadcast(msg, idx, accessKeys[idx])
	require.Len(t, tokens, numKeys)

	var auditTokens []vdpf.MultiKeyAuditToken
	for _, tok := range tokens {
		auditTokens = append(auditTokens, p.GenAudit(accessKeys, tok)...)
	}
	assert.True(t, p.CheckAudit(auditTokens))

	store := accumulator.New(p.NewAccumulator())
	for _, tok := range tokens {
		store.Accumulate(p.ToAccumulator(tok))
	}
	values, _ := store.Snapshot()
	assert.True(t, values[idx].Equal(msg))
}

func TestPubKeyProtocolBroadcastRoundTrip(t *testing.T) {
	const numPoints, idx, msgLen = 4, 3, 32

	d := dpf.NewTwoKeyDPF(prg.NewAesPrg(msgLen), numPoints)
	v := vdpf.NewPubKeyTwoKeyVDPF(d)
	p := protocol.NewPubKeyProtocol(v)

	accessKeys := v.NewAccessKeys()
	msg := buffer.RandomByteBufCSPRNG(msgLen)

	tokens := p.Broadcast(msg, idx, accessKeys[idx])
	shares := make([]vdpf.PubKeyAuditToken, 2)
	for i, tok := range tokens {
		shares[i] = p.GenAudit(accessKeys, tok)[i]
	}
	assert.True(t, p.CheckAudit(shares))

	store := accumulator.New(p.NewAccumulator())
	for _, tok := range tokens {
		store.Accumulate(p.ToAccumulator(tok))
	}
	values, _ := store.Snapshot()
	assert.True(t, values[idx].Equal(msg))
}
