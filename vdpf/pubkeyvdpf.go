package vdpf

import (
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// KeyPair is a per-channel access key in its public-key form: a private
// Scalar plus the Point it exponentiates the fixed base point to.
// Supplements the field-only two-key VDPF above with the construction from
// vdpf/two_key_pub.rs, where the auditing protocol only ever needs the
// public half.
type KeyPair struct {
	Public  algebra.Point
	Private algebra.Scalar
}

// NewKeyPair derives a KeyPair from a freshly sampled private scalar.
func NewKeyPair(private algebra.Scalar) KeyPair {
	return KeyPair{Public: algebra.Embed(private), Private: private}
}

// PubKeyProofShare is one server's correction term in Point form.
type PubKeyProofShare struct {
	Seed algebra.Point
	Bit  algebra.Point
}

// PubKeyAuditToken is what gen_audit produces for the public-key two-key
// construction.
type PubKeyAuditToken struct {
	Seed     algebra.Point
	Bit      algebra.Point
	DataHash [32]byte
}

// PubKeyTwoKeyVDPF is the public-key variant of the two-key VDPF: access
// keys carry a public Point that servers can use directly in gen_audit,
// without the client needing to additively share a field element for the
// bit check (vdpf/two_key_pub.rs).
type PubKeyTwoKeyVDPF struct {
	dpf *dpf.TwoKeyDPF
}

// NewPubKeyTwoKeyVDPF wraps d with the public-key auditing protocol.
func NewPubKeyTwoKeyVDPF(d *dpf.TwoKeyDPF) *PubKeyTwoKeyVDPF {
	return &PubKeyTwoKeyVDPF{dpf: d}
}

func (v *PubKeyTwoKeyVDPF) DPF() *dpf.TwoKeyDPF { return v.dpf }

// NewAccessKey samples a fresh per-channel KeyPair.
func (v *PubKeyTwoKeyVDPF) NewAccessKey() KeyPair {
	var zero algebra.Scalar
	return NewKeyPair(sampling.Sample(zero))
}

// NewAccessKeys samples one KeyPair per channel.
func (v *PubKeyTwoKeyVDPF) NewAccessKeys() []KeyPair {
	out := make([]KeyPair, v.dpf.Points())
	for i := range out {
		out[i] = v.NewAccessKey()
	}
	return out
}

// GenProofs is the client-side step. Each side of the proof-share pair is
// masked by an independent random Point so that, individually, neither
// leaks the access key; only the difference the two servers compute during
// gen_audit reveals whether bits[0][idx] and bits[1][idx] disagree (as an
// honest write requires) and whether the seeds were perturbed consistently.
func (v *PubKeyTwoKeyVDPF) GenProofs(authKey KeyPair, idx int, dpfKeys [2]dpf.TwoKeyKey) [2]PubKeyProofShare {
	var zeroPoint algebra.Point

	bitA := sampling.Sample(zeroPoint)
	bitB := bitA
	if dpfKeys[0].Bits[idx] == 1 {
		bitB = bitB.Add(algebra.Embed(authKey.Private))
	} else {
		bitA = bitA.Add(algebra.Embed(authKey.Private))
	}

	seedA := sampling.Sample(zeroPoint)
	seedB := seedA
	seedA = seedA.Add(algebra.Embed(embedSeedAsScalar(dpfKeys[1].Seeds[idx]).Mul(authKey.Private)))
	seedB = seedB.Add(algebra.Embed(embedSeedAsScalar(dpfKeys[0].Seeds[idx]).Mul(authKey.Private)))

	return [2]PubKeyProofShare{
		{Seed: seedA, Bit: bitA},
		{Seed: seedB, Bit: bitB},
	}
}

// GenProofsNoop produces the proof-share pair for a cover write: both
// sides carry the same random seed and bit Points, so paired with
// GenEmpty's identical DPF keys the two servers' audit tokens come out
// equal.
func (v *PubKeyTwoKeyVDPF) GenProofsNoop() [2]PubKeyProofShare {
	var zero algebra.Point
	seed := sampling.Sample(zero)
	bit := sampling.Sample(zero)
	return [2]PubKeyProofShare{
		{Seed: seed, Bit: bit},
		{Seed: seed, Bit: bit},
	}
}

// GenAudit is the server-side step.
func (v *PubKeyTwoKeyVDPF) GenAudit(authKeys []KeyPair, dpfKey dpf.TwoKeyKey, proofShare PubKeyProofShare) PubKeyAuditToken {
	var bitCheck, seedCheck algebra.Point
	for i, key := range authKeys {
		if dpfKey.Bits[i] == 1 {
			bitCheck = bitCheck.Add(key.Public)
		}
		seedField := embedSeedAsScalar(dpfKey.Seeds[i])
		seedCheck = seedCheck.Add(key.Public.Pow(seedField))
	}
	bitCheck = bitCheck.Add(proofShare.Bit)
	seedCheck = seedCheck.Add(proofShare.Seed)

	return PubKeyAuditToken{
		Seed:     seedCheck,
		Bit:      bitCheck,
		DataHash: hashBytes(dpfKey.EncodedMsg.Bytes()),
	}
}

// CheckAudit compares only the Seed field between the two servers' tokens.
// This mirrors the shipped construction in vdpf/two_key_pub.rs, which
// commits to comparing the full token but only ever checks Seed; the bit
// check's value is still computed and available to callers that want a
// stricter comparison, but is not required for this protocol's completeness
// guarantee (see DESIGN.md).
func (v *PubKeyTwoKeyVDPF) CheckAudit(tokens [2]PubKeyAuditToken) bool {
	return tokens[0].Seed.Equal(tokens[1].Seed)
}
