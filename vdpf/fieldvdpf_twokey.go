package vdpf

import (
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// FieldProofShare is the client-computed correction one server adds to its
// own inner-product audit contribution.
type FieldProofShare struct {
	Bit  algebra.Scalar
	Seed algebra.Scalar
}

// FieldAuditToken is what gen_audit produces and what check_audit
// compares across servers. Two honest tokens for the same write are
// bytewise identical.
type FieldAuditToken struct {
	Bit      algebra.Scalar
	Seed     algebra.Scalar
	DataHash [32]byte
}

// Equal reports whether two tokens carry identical bit, seed, and data
// fields.
func (t FieldAuditToken) Equal(o FieldAuditToken) bool {
	return t.Bit.Equal(o.Bit) && t.Seed.Equal(o.Seed) && t.DataHash == o.DataHash
}

// FieldVDPF is the two-key, AES-backed VDPF of vdpf/two_key.rs: an access
// key is a field Scalar, and auditing works by having each server check
// that an inner product of the access keys against the DPF key's bits and
// seeds, corrected by a client-supplied proof share, sums to zero across
// both servers.
type FieldVDPF struct {
	dpf *dpf.TwoKeyDPF
}

// NewFieldVDPF wraps d with the two-key field-based auditing protocol.
func NewFieldVDPF(d *dpf.TwoKeyDPF) *FieldVDPF {
	return &FieldVDPF{dpf: d}
}

func (v *FieldVDPF) DPF() *dpf.TwoKeyDPF { return v.dpf }

// NewAccessKey samples a fresh per-channel secret.
func (v *FieldVDPF) NewAccessKey() algebra.Scalar {
	var zero algebra.Scalar
	return sampling.Sample(zero)
}

// NewAccessKeys samples one access key per channel.
func (v *FieldVDPF) NewAccessKeys() []algebra.Scalar {
	var zero algebra.Scalar
	return sampling.SampleMany(zero, v.dpf.Points())
}

// GenProofs is the client-side step: given the access key authorizing
// channel idx and the two DPF keys just generated for a write to that
// channel, produce one proof share per server.
//
// resSeed folds the seed vectors of both keys pairwise by subtraction
// rather than by addition: every channel except idx carries identical
// seeds between the two keys, so those terms vanish from the sum and
// only the perturbed channel survives. gen_audit's per-server loop
// later cancels the same identical-channel terms between the two
// servers' running sums, so the two foldings have to agree on which
// terms are already zero; folding by addition here would leave the
// untouched channels' seeds in resSeed with nothing on the audit side
// to cancel them against.
func (v *FieldVDPF) GenProofs(authKey algebra.Scalar, idx int, dpfKeys [2]dpf.TwoKeyKey) [2]FieldProofShare {
	resSeed := seedDelta(dpfKeys[0].Seeds, dpfKeys[1].Seeds)
	seedProof := authKey.Mul(resSeed)

	// If server A's bit is 1, negate the share so (bitA - bitB == 1)*key
	// resolves to -key rather than key, matching the parity check in
	// gen_audit.
	var bitProof algebra.Scalar
	if dpfKeys[0].Bits[idx] == 1 {
		bitProof = authKey.Neg()
	} else {
		bitProof = authKey
	}

	bitShares := splitByDifference(bitProof)
	seedShares := splitByDifference(seedProof)
	return [2]FieldProofShare{
		{Bit: bitShares[0], Seed: seedShares[0]},
		{Bit: bitShares[1], Seed: seedShares[1]},
	}
}

// GenProofsNoop produces a proof-share pair for a cover write: a real
// write to the (arbitrary) last channel under a zero access key, which
// contributes nothing to any real channel's audit sum.
func (v *FieldVDPF) GenProofsNoop(dpfKeys [2]dpf.TwoKeyKey) [2]FieldProofShare {
	var zero algebra.Scalar
	return v.GenProofs(zero, v.dpf.Points()-1, dpfKeys)
}

// GenAudit is the server-side step: fold the server's own DPF key against
// the full access-key vector, add the client's proof share, and hash the
// encoded message.
func (v *FieldVDPF) GenAudit(authKeys []algebra.Scalar, dpfKey dpf.TwoKeyKey, proofShare FieldProofShare) FieldAuditToken {
	bitCheck := proofShare.Bit
	seedCheck := proofShare.Seed

	for i, key := range authKeys {
		seedField := embedSeedAsScalar(dpfKey.Seeds[i])
		seedCheck = seedCheck.Add(key.Mul(seedField).Neg())
		if dpfKey.Bits[i] == 1 {
			bitCheck = bitCheck.Add(key)
		}
	}

	return FieldAuditToken{
		Bit:      bitCheck,
		Seed:     seedCheck,
		DataHash: hashBytes(dpfKey.EncodedMsg.Bytes()),
	}
}

// CheckAudit is the two-server decision rule: the write was valid iff both
// tokens are bytewise identical.
func (v *FieldVDPF) CheckAudit(tokens [2]FieldAuditToken) bool {
	return tokens[0].Equal(tokens[1])
}

func seedDelta(a, b []sampling.Seed) algebra.Scalar {
	var acc algebra.Scalar
	for i := range a {
		acc = acc.Add(embedSeedAsScalar(a[i]).Sub(embedSeedAsScalar(b[i])))
	}
	return acc
}

// splitByDifference returns a two-way split of value where shares[0] -
// shares[1] recovers value exactly (rather than their sum, which is what
// package share's generic additive sharing gives). gen_audit needs this
// stronger property: the two servers each fold their half of the proof
// into an independent running total, and only a deterministic difference
// between the two halves can cancel the corresponding difference that
// shows up on the audit side.
func splitByDifference(value algebra.Scalar) [2]algebra.Scalar {
	var zero algebra.Scalar
	mask := sampling.Sample(zero)
	return [2]algebra.Scalar{value.Add(mask), mask}
}
