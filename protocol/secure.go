package protocol

import (
	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/prg"
	"github.com/spectrum-go/spectrumcore/vdpf"
)

// TwoKeyWriteToken pairs one server's DPF key share with the
// corresponding proof share for the two-key, AES-PRG-backed VDPF.
type TwoKeyWriteToken struct {
	Key   dpf.TwoKeyKey
	Proof vdpf.FieldProofShare
}

// TwoKeyProtocol adapts vdpf.FieldVDPF to Protocol, grounded on
// spectrum_protocol/src/secure.rs's blanket `impl<V: Vdpf> Protocol for V`.
type TwoKeyProtocol struct {
	v *vdpf.FieldVDPF
}

// NewTwoKeyProtocol wraps v as a Protocol.
func NewTwoKeyProtocol(v *vdpf.FieldVDPF) *TwoKeyProtocol {
	return &TwoKeyProtocol{v: v}
}

func (p *TwoKeyProtocol) NumParties() int  { return p.v.DPF().Keys() }
func (p *TwoKeyProtocol) NumChannels() int { return p.v.DPF().Points() }
func (p *TwoKeyProtocol) MessageLen() int  { return p.v.DPF().MsgSize() }

func (p *TwoKeyProtocol) Broadcast(message buffer.ByteBuf, idx int, key algebra.Scalar) []TwoKeyWriteToken {
	keys := p.v.DPF().Gen(message, idx)
	proofs := p.v.GenProofs(key, idx, keys)
	return []TwoKeyWriteToken{{Key: keys[0], Proof: proofs[0]}, {Key: keys[1], Proof: proofs[1]}}
}

func (p *TwoKeyProtocol) Cover() []TwoKeyWriteToken {
	keys := p.v.DPF().GenEmpty()
	proofs := p.v.GenProofsNoop(keys)
	return []TwoKeyWriteToken{{Key: keys[0], Proof: proofs[0]}, {Key: keys[1], Proof: proofs[1]}}
}

// GenAudit computes the single audit token a write token entails and
// replicates it once per party: both parties must arrive at identical
// tokens for an honest write, so there is only one token to check, not
// one per recipient.
func (p *TwoKeyProtocol) GenAudit(keys []algebra.Scalar, token TwoKeyWriteToken) []vdpf.FieldAuditToken {
	t := p.v.GenAudit(keys, token.Key, token.Proof)
	out := make([]vdpf.FieldAuditToken, p.NumParties())
	for i := range out {
		out[i] = t
	}
	return out
}

func (p *TwoKeyProtocol) CheckAudit(tokens []vdpf.FieldAuditToken) bool {
	if len(tokens) != 2 {
		return false
	}
	return p.v.CheckAudit([2]vdpf.FieldAuditToken{tokens[0], tokens[1]})
}

func (p *TwoKeyProtocol) NewAccumulator() []buffer.ByteBuf {
	out := make([]buffer.ByteBuf, p.NumChannels())
	for i := range out {
		out[i] = p.v.DPF().NullMessage()
	}
	return out
}

func (p *TwoKeyProtocol) ToAccumulator(token TwoKeyWriteToken) []buffer.ByteBuf {
	return p.v.DPF().Eval(token.Key)
}

var _ Protocol[algebra.Scalar, TwoKeyWriteToken, vdpf.FieldAuditToken, buffer.ByteBuf] = (*TwoKeyProtocol)(nil)

// PubKeyWriteToken is the public-key two-key VDPF's write token.
type PubKeyWriteToken struct {
	Key   dpf.TwoKeyKey
	Proof vdpf.PubKeyProofShare
}

// PubKeyProtocol adapts vdpf.PubKeyTwoKeyVDPF to Protocol.
type PubKeyProtocol struct {
	v *vdpf.PubKeyTwoKeyVDPF
}

// NewPubKeyProtocol wraps v as a Protocol.
func NewPubKeyProtocol(v *vdpf.PubKeyTwoKeyVDPF) *PubKeyProtocol {
	return &PubKeyProtocol{v: v}
}

func (p *PubKeyProtocol) NumParties() int  { return p.v.DPF().Keys() }
func (p *PubKeyProtocol) NumChannels() int { return p.v.DPF().Points() }
func (p *PubKeyProtocol) MessageLen() int  { return p.v.DPF().MsgSize() }

func (p *PubKeyProtocol) Broadcast(message buffer.ByteBuf, idx int, key vdpf.KeyPair) []PubKeyWriteToken {
	keys := p.v.DPF().Gen(message, idx)
	proofs := p.v.GenProofs(key, idx, keys)
	return []PubKeyWriteToken{{Key: keys[0], Proof: proofs[0]}, {Key: keys[1], Proof: proofs[1]}}
}

func (p *PubKeyProtocol) Cover() []PubKeyWriteToken {
	keys := p.v.DPF().GenEmpty()
	proofs := p.v.GenProofsNoop()
	return []PubKeyWriteToken{{Key: keys[0], Proof: proofs[0]}, {Key: keys[1], Proof: proofs[1]}}
}

func (p *PubKeyProtocol) GenAudit(keys []vdpf.KeyPair, token PubKeyWriteToken) []vdpf.PubKeyAuditToken {
	t := p.v.GenAudit(keys, token.Key, token.Proof)
	out := make([]vdpf.PubKeyAuditToken, p.NumParties())
	for i := range out {
		out[i] = t
	}
	return out
}

func (p *PubKeyProtocol) CheckAudit(tokens []vdpf.PubKeyAuditToken) bool {
	if len(tokens) != 2 {
		return false
	}
	return p.v.CheckAudit([2]vdpf.PubKeyAuditToken{tokens[0], tokens[1]})
}

func (p *PubKeyProtocol) NewAccumulator() []buffer.ByteBuf {
	out := make([]buffer.ByteBuf, p.NumChannels())
	for i := range out {
		out[i] = p.v.DPF().NullMessage()
	}
	return out
}

func (p *PubKeyProtocol) ToAccumulator(token PubKeyWriteToken) []buffer.ByteBuf {
	return p.v.DPF().Eval(token.Key)
}

var _ Protocol[vdpf.KeyPair, PubKeyWriteToken, vdpf.PubKeyAuditToken, buffer.ByteBuf] = (*PubKeyProtocol)(nil)

// MultiKeyWriteToken pairs a multi-key DPF key share with its proof share.
type MultiKeyWriteToken[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	Key   dpf.MultiKeyKey[G]
	Proof vdpf.MultiKeyProofShare
}

// MultiKeyProtocol adapts vdpf.MultiKeyFieldVDPF[G] to Protocol.
type MultiKeyProtocol[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}] struct {
	v *vdpf.MultiKeyFieldVDPF[G]
}

// NewMultiKeyProtocol wraps v as a Protocol.
func NewMultiKeyProtocol[G interface {
	algebra.Group[G]
	algebra.Exponentiable[G]
}](v *vdpf.MultiKeyFieldVDPF[G]) *MultiKeyProtocol[G] {
	return &MultiKeyProtocol[G]{v: v}
}

func (p *MultiKeyProtocol[G]) NumParties() int  { return p.v.DPF().Keys() }
func (p *MultiKeyProtocol[G]) NumChannels() int { return p.v.DPF().Points() }
func (p *MultiKeyProtocol[G]) MessageLen() int  { return p.v.DPF().MsgSize() }

func (p *MultiKeyProtocol[G]) Broadcast(message prg.ElementVec[G], idx int, key algebra.Scalar) []MultiKeyWriteToken[G] {
	keys := p.v.DPF().Gen(message, idx)
	proofs := p.v.GenProofs(key, idx, keys)
	out := make([]MultiKeyWriteToken[G], len(keys))
	for i := range out {
		out[i] = MultiKeyWriteToken[G]{Key: keys[i], Proof: proofs[i]}
	}
	return out
}

func (p *MultiKeyProtocol[G]) Cover() []MultiKeyWriteToken[G] {
	keys := p.v.DPF().GenEmpty()
	proofs := p.v.GenProofsNoop()
	out := make([]MultiKeyWriteToken[G], len(keys))
	for i := range out {
		out[i] = MultiKeyWriteToken[G]{Key: keys[i], Proof: proofs[i]}
	}
	return out
}

// GenAudit computes one server's own audit token only: unlike the
// two-key flavor, the multi-key protocol's audit shares are not all
// identical (each server folds its own key share), so there is nothing
// to replicate here. A caller driving all parties calls GenAudit once
// per party with that party's own token.
func (p *MultiKeyProtocol[G]) GenAudit(keys []algebra.Scalar, token MultiKeyWriteToken[G]) []vdpf.MultiKeyAuditToken {
	return []vdpf.MultiKeyAuditToken{p.v.GenAudit(keys, token.Key, token.Proof)}
}

func (p *MultiKeyProtocol[G]) CheckAudit(tokens []vdpf.MultiKeyAuditToken) bool {
	return p.v.CheckAudit(tokens)
}

func (p *MultiKeyProtocol[G]) NewAccumulator() []prg.ElementVec[G] {
	out := make([]prg.ElementVec[G], p.NumChannels())
	for i := range out {
		out[i] = p.v.DPF().NullMessage()
	}
	return out
}

func (p *MultiKeyProtocol[G]) ToAccumulator(token MultiKeyWriteToken[G]) []prg.ElementVec[G] {
	return p.v.DPF().Eval(token.Key)
}

var _ Protocol[algebra.Scalar, MultiKeyWriteToken[algebra.Point], vdpf.MultiKeyAuditToken, prg.ElementVec[algebra.Point]] = (*MultiKeyProtocol[algebra.Point])(nil)
