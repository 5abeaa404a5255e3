package vdpf

import (
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/sampling"
	"github.com/spectrum-go/spectrumcore/share"
)

// MultiKeyProofShare is one server's share of the correction term for the
// multi-key auditing protocol.
type MultiKeyProofShare struct {
	Bit  algebra.Scalar
	Seed algebra.Scalar
}

// MultiKeyAuditToken is what gen_audit produces for the multi-key
// construction. check_audit requires every server's DataHash to agree and
// the recovered bit/seed corrections to both be zero.
type MultiKeyAuditToken struct {
	Bit      algebra.Scalar
	Seed     algebra.Scalar
	DataHash [32]byte
}

// MultiKeyFieldVDPF is the k-server, group-PRG-backed VDPF of
// vdpf/multi_key.rs. Unlike the two-key flavor, auditing here doesn't rely
// on byte-for-byte equality of server tokens: the bit/seed checks are
// additively shared across all k servers and must recover to zero.
type MultiKeyFieldVDPF[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	dpf *dpf.MultiKeyDPF[G]
}

// NewMultiKeyFieldVDPF wraps d with the multi-key field auditing protocol.
func NewMultiKeyFieldVDPF[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}](d *dpf.MultiKeyDPF[G]) *MultiKeyFieldVDPF[G] {
	return &MultiKeyFieldVDPF[G]{dpf: d}
}

func (v *MultiKeyFieldVDPF[G]) DPF() *dpf.MultiKeyDPF[G] { return v.dpf }

// NewAccessKey samples a fresh per-channel secret.
func (v *MultiKeyFieldVDPF[G]) NewAccessKey() algebra.Scalar {
	var zero algebra.Scalar
	return sampling.Sample(zero)
}

// NewAccessKeys samples one access key per channel.
func (v *MultiKeyFieldVDPF[G]) NewAccessKeys() []algebra.Scalar {
	var zero algebra.Scalar
	return sampling.SampleMany(zero, v.dpf.Points())
}

// GenProofs produces one proof share per server. The bit vector is zero
// everywhere except at idx (where it is 1) so the inner product of bits
// against access keys reduces to authKey; the seed vector is similarly
// zero everywhere except idx, so its inner product is authKey times the
// summed seed column at idx. The shared correction negates both.
func (v *MultiKeyFieldVDPF[G]) GenProofs(authKey algebra.Scalar, idx int, dpfKeys []dpf.MultiKeyKey[G]) []MultiKeyProofShare {
	var seed algebra.Scalar
	for _, k := range dpfKeys {
		seed = seed.Add(k.Seeds[idx])
	}

	bitShares := share.Share(authKey.Neg(), v.dpf.Keys())
	seedShares := share.Share(seed.Mul(authKey).Neg(), v.dpf.Keys())

	out := make([]MultiKeyProofShare, v.dpf.Keys())
	for i := range out {
		out[i] = MultiKeyProofShare{Bit: bitShares[i], Seed: seedShares[i]}
	}
	return out
}

// GenProofsNoop shares a zero correction across all servers: a cover
// write needs no correction since it never perturbs any channel.
func (v *MultiKeyFieldVDPF[G]) GenProofsNoop() []MultiKeyProofShare {
	var zero algebra.Scalar
	bitShares := share.Share(zero, v.dpf.Keys())
	seedShares := share.Share(zero, v.dpf.Keys())

	out := make([]MultiKeyProofShare, v.dpf.Keys())
	for i := range out {
		out[i] = MultiKeyProofShare{Bit: bitShares[i], Seed: seedShares[i]}
	}
	return out
}

// GenAudit is the server-side step: inner-product the access keys against
// this server's bit and seed vectors, add the client's proof share, and
// hash the encoded message.
func (v *MultiKeyFieldVDPF[G]) GenAudit(authKeys []algebra.Scalar, dpfKey dpf.MultiKeyKey[G], proofShare MultiKeyProofShare) MultiKeyAuditToken {
	bitCheck := proofShare.Bit
	seedCheck := proofShare.Seed

	for i, key := range authKeys {
		bit := dpfKey.Seeds[i].Zero()
		if dpfKey.Bits[i] == 1 {
			bit = bit.One()
		}
		bitCheck = bitCheck.Add(bit.Mul(key))
		seedCheck = seedCheck.Add(dpfKey.Seeds[i].Mul(key))
	}

	return MultiKeyAuditToken{
		Bit:      bitCheck,
		Seed:     seedCheck,
		DataHash: hashBytes(dpfKey.EncodedMsg.MarshalCanonical()),
	}
}

// CheckAudit requires every token's DataHash to agree and the recovered
// bit/seed corrections to both vanish.
func (v *MultiKeyFieldVDPF[G]) CheckAudit(tokens []MultiKeyAuditToken) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens[1:] {
		if t.DataHash != tokens[0].DataHash {
			return false
		}
	}

	bits := make([]algebra.Scalar, len(tokens))
	seeds := make([]algebra.Scalar, len(tokens))
	for i, t := range tokens {
		bits[i] = t.Bit
		seeds[i] = t.Seed
	}
	return share.Recover(bits).IsZero() && share.Recover(seeds).IsZero()
}
