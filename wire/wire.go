// Package wire implements the canonical byte encodings for the core's
// key/proof/token types, built on package buffer's length-prefixed and
// fixed-width cursor primitives and applied here to the full DPF/VDPF
// object table.
package wire

import (
	"fmt"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/buffer"
	"github.com/spectrum-go/spectrumcore/dpf"
	"github.com/spectrum-go/spectrumcore/prg"
	"github.com/spectrum-go/spectrumcore/sampling"
	"github.com/spectrum-go/spectrumcore/vdpf"
)

// EncodeScalar appends s's canonical 32-byte little-endian encoding.
func EncodeScalar(buf *buffer.Buffer, s algebra.Scalar) {
	enc := s.MarshalCanonical()
	buf.WriteRawBytes(enc[:])
}

// DecodeScalar consumes the next 32 bytes as a Scalar.
func DecodeScalar(buf *buffer.Buffer) (algebra.Scalar, error) {
	raw, err := buf.ReadRawBytes(algebra.ScalarSize)
	if err != nil {
		return algebra.Scalar{}, fmt.Errorf("wire: decode Scalar: %w", err)
	}
	return algebra.UnmarshalScalar(raw)
}

// EncodePoint appends p's canonical 32-byte encoding.
func EncodePoint(buf *buffer.Buffer, p algebra.Point) {
	enc := p.MarshalCanonical()
	buf.WriteRawBytes(enc[:])
}

// DecodePoint consumes the next 32 bytes as a Point.
func DecodePoint(buf *buffer.Buffer) (algebra.Point, error) {
	raw, err := buf.ReadRawBytes(algebra.PointSize)
	if err != nil {
		return algebra.Point{}, fmt.Errorf("wire: decode Point: %w", err)
	}
	return algebra.UnmarshalPoint(raw)
}

// EncodeSeed appends seed's 16 raw bytes.
func EncodeSeed(buf *buffer.Buffer, seed sampling.Seed) {
	buf.WriteRawBytes(seed[:])
}

// DecodeSeed consumes the next 16 bytes as a Seed.
func DecodeSeed(buf *buffer.Buffer) (sampling.Seed, error) {
	raw, err := buf.ReadRawBytes(sampling.SeedSize)
	if err != nil {
		return sampling.Seed{}, fmt.Errorf("wire: decode Seed: %w", err)
	}
	return sampling.NewSeedFromBytes(raw)
}

// EncodeByteBuf writes b as a length-prefixed byte blob.
func EncodeByteBuf(buf *buffer.Buffer, b buffer.ByteBuf) {
	buf.WriteBytesWithLength(b.Bytes())
}

// DecodeByteBuf reads a length-prefixed byte blob as a ByteBuf. The
// result owns a fresh copy of the bytes, independent of buf.
func DecodeByteBuf(buf *buffer.Buffer) (buffer.ByteBuf, error) {
	raw, err := buf.ReadBytesWithLength()
	if err != nil {
		return buffer.ByteBuf{}, fmt.Errorf("wire: decode ByteBuf: %w", err)
	}
	return buffer.NewByteBufFromBytes(append([]byte(nil), raw...)), nil
}

// EncodeBits writes a direction-bit vector as a uint32 count followed by
// the bits packed 8 per byte.
func EncodeBits(buf *buffer.Buffer, bits []uint8) {
	buf.WriteUint32(uint32(len(bits)))
	buf.WriteRawBytes(packBits(bits))
}

// DecodeBits reads a packed direction-bit vector.
func DecodeBits(buf *buffer.Buffer) ([]uint8, error) {
	n, err := buf.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("wire: decode bit vector length: %w", err)
	}
	packed, err := buf.ReadRawBytes((int(n) + 7) / 8)
	if err != nil {
		return nil, fmt.Errorf("wire: decode bit vector: %w", err)
	}
	return unpackBits(packed, int(n)), nil
}

func packBits(bits []uint8) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func unpackBits(packed []byte, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		if packed[i/8]&(1<<uint(i%8)) != 0 {
			out[i] = 1
		}
	}
	return out
}

// EncodeTwoKeyKey writes k as encoded_msg‖bits_packed‖seeds, the two-key
// DpfKey encoding.
func EncodeTwoKeyKey(buf *buffer.Buffer, k dpf.TwoKeyKey) {
	EncodeByteBuf(buf, k.EncodedMsg)
	EncodeBits(buf, k.Bits)
	buf.WriteUint32(uint32(len(k.Seeds)))
	for _, s := range k.Seeds {
		EncodeSeed(buf, s)
	}
}

// DecodeTwoKeyKey reads a two-key DpfKey.
func DecodeTwoKeyKey(buf *buffer.Buffer) (dpf.TwoKeyKey, error) {
	msg, err := DecodeByteBuf(buf)
	if err != nil {
		return dpf.TwoKeyKey{}, fmt.Errorf("wire: decode two-key DpfKey.EncodedMsg: %w", err)
	}
	bits, err := DecodeBits(buf)
	if err != nil {
		return dpf.TwoKeyKey{}, fmt.Errorf("wire: decode two-key DpfKey.Bits: %w", err)
	}
	n, err := buf.ReadUint32()
	if err != nil {
		return dpf.TwoKeyKey{}, fmt.Errorf("wire: decode two-key DpfKey seed count: %w", err)
	}
	seeds := make([]sampling.Seed, n)
	for i := range seeds {
		s, err := DecodeSeed(buf)
		if err != nil {
			return dpf.TwoKeyKey{}, fmt.Errorf("wire: decode two-key DpfKey seed %d: %w", i, err)
		}
		seeds[i] = s
	}
	return dpf.TwoKeyKey{EncodedMsg: msg, Bits: bits, Seeds: seeds}, nil
}

// EncodeFieldProofShare writes the two-key field VDPF's proof share as
// bit‖seed.
func EncodeFieldProofShare(buf *buffer.Buffer, s vdpf.FieldProofShare) {
	EncodeScalar(buf, s.Bit)
	EncodeScalar(buf, s.Seed)
}

// DecodeFieldProofShare reads a two-key field VDPF proof share.
func DecodeFieldProofShare(buf *buffer.Buffer) (vdpf.FieldProofShare, error) {
	bit, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.FieldProofShare{}, fmt.Errorf("wire: decode FieldProofShare.Bit: %w", err)
	}
	seed, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.FieldProofShare{}, fmt.Errorf("wire: decode FieldProofShare.Seed: %w", err)
	}
	return vdpf.FieldProofShare{Bit: bit, Seed: seed}, nil
}

// EncodeFieldAuditToken writes bit‖seed‖data_hash(32), the AuditToken
// encoding.
func EncodeFieldAuditToken(buf *buffer.Buffer, t vdpf.FieldAuditToken) {
	EncodeScalar(buf, t.Bit)
	EncodeScalar(buf, t.Seed)
	buf.WriteRawBytes(t.DataHash[:])
}

// DecodeFieldAuditToken reads a two-key field VDPF audit token.
func DecodeFieldAuditToken(buf *buffer.Buffer) (vdpf.FieldAuditToken, error) {
	bit, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.FieldAuditToken{}, fmt.Errorf("wire: decode FieldAuditToken.Bit: %w", err)
	}
	seed, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.FieldAuditToken{}, fmt.Errorf("wire: decode FieldAuditToken.Seed: %w", err)
	}
	raw, err := buf.ReadRawBytes(32)
	if err != nil {
		return vdpf.FieldAuditToken{}, fmt.Errorf("wire: decode FieldAuditToken.DataHash: %w", err)
	}
	var hash [32]byte
	copy(hash[:], raw)
	return vdpf.FieldAuditToken{Bit: bit, Seed: seed, DataHash: hash}, nil
}

// EncodeMultiKeyProofShare writes the multi-key field VDPF's proof share
// as bit‖seed.
func EncodeMultiKeyProofShare(buf *buffer.Buffer, s vdpf.MultiKeyProofShare) {
	EncodeScalar(buf, s.Bit)
	EncodeScalar(buf, s.Seed)
}

// DecodeMultiKeyProofShare reads a multi-key field VDPF proof share.
func DecodeMultiKeyProofShare(buf *buffer.Buffer) (vdpf.MultiKeyProofShare, error) {
	bit, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.MultiKeyProofShare{}, fmt.Errorf("wire: decode MultiKeyProofShare.Bit: %w", err)
	}
	seed, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.MultiKeyProofShare{}, fmt.Errorf("wire: decode MultiKeyProofShare.Seed: %w", err)
	}
	return vdpf.MultiKeyProofShare{Bit: bit, Seed: seed}, nil
}

// EncodeMultiKeyAuditToken writes bit‖seed‖data_hash(32).
func EncodeMultiKeyAuditToken(buf *buffer.Buffer, t vdpf.MultiKeyAuditToken) {
	EncodeScalar(buf, t.Bit)
	EncodeScalar(buf, t.Seed)
	buf.WriteRawBytes(t.DataHash[:])
}

// DecodeMultiKeyAuditToken reads a multi-key field VDPF audit token.
func DecodeMultiKeyAuditToken(buf *buffer.Buffer) (vdpf.MultiKeyAuditToken, error) {
	bit, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.MultiKeyAuditToken{}, fmt.Errorf("wire: decode MultiKeyAuditToken.Bit: %w", err)
	}
	seed, err := DecodeScalar(buf)
	if err != nil {
		return vdpf.MultiKeyAuditToken{}, fmt.Errorf("wire: decode MultiKeyAuditToken.Seed: %w", err)
	}
	raw, err := buf.ReadRawBytes(32)
	if err != nil {
		return vdpf.MultiKeyAuditToken{}, fmt.Errorf("wire: decode MultiKeyAuditToken.DataHash: %w", err)
	}
	var hash [32]byte
	copy(hash[:], raw)
	return vdpf.MultiKeyAuditToken{Bit: bit, Seed: seed, DataHash: hash}, nil
}

// EncodePubKeyProofShare writes the public-key two-key VDPF's proof
// share as seed‖bit, both Points.
func EncodePubKeyProofShare(buf *buffer.Buffer, s vdpf.PubKeyProofShare) {
	EncodePoint(buf, s.Seed)
	EncodePoint(buf, s.Bit)
}

// DecodePubKeyProofShare reads a public-key two-key VDPF proof share.
func DecodePubKeyProofShare(buf *buffer.Buffer) (vdpf.PubKeyProofShare, error) {
	seed, err := DecodePoint(buf)
	if err != nil {
		return vdpf.PubKeyProofShare{}, fmt.Errorf("wire: decode PubKeyProofShare.Seed: %w", err)
	}
	bit, err := DecodePoint(buf)
	if err != nil {
		return vdpf.PubKeyProofShare{}, fmt.Errorf("wire: decode PubKeyProofShare.Bit: %w", err)
	}
	return vdpf.PubKeyProofShare{Seed: seed, Bit: bit}, nil
}

// EncodePubKeyAuditToken writes seed‖bit‖data_hash(32), both Points plus
// the 32-byte digest.
func EncodePubKeyAuditToken(buf *buffer.Buffer, t vdpf.PubKeyAuditToken) {
	EncodePoint(buf, t.Seed)
	EncodePoint(buf, t.Bit)
	buf.WriteRawBytes(t.DataHash[:])
}

// DecodePubKeyAuditToken reads a public-key two-key VDPF audit token.
func DecodePubKeyAuditToken(buf *buffer.Buffer) (vdpf.PubKeyAuditToken, error) {
	seed, err := DecodePoint(buf)
	if err != nil {
		return vdpf.PubKeyAuditToken{}, fmt.Errorf("wire: decode PubKeyAuditToken.Seed: %w", err)
	}
	bit, err := DecodePoint(buf)
	if err != nil {
		return vdpf.PubKeyAuditToken{}, fmt.Errorf("wire: decode PubKeyAuditToken.Bit: %w", err)
	}
	raw, err := buf.ReadRawBytes(32)
	if err != nil {
		return vdpf.PubKeyAuditToken{}, fmt.Errorf("wire: decode PubKeyAuditToken.DataHash: %w", err)
	}
	var hash [32]byte
	copy(hash[:], raw)
	return vdpf.PubKeyAuditToken{Seed: seed, Bit: bit, DataHash: hash}, nil
}

// EncodeMultiKeyKey writes a multi-key DpfKey over algebra.Point, the
// only group this module instantiates the multi-key construction with,
// as encoded_msg‖bits_packed‖scalars.
func EncodeMultiKeyKey(buf *buffer.Buffer, k dpf.MultiKeyKey[algebra.Point]) {
	elems := k.EncodedMsg.Elements()
	buf.WriteUint32(uint32(len(elems)))
	for _, e := range elems {
		EncodePoint(buf, e)
	}
	EncodeBits(buf, k.Bits)
	buf.WriteUint32(uint32(len(k.Seeds)))
	for _, s := range k.Seeds {
		EncodeScalar(buf, s)
	}
}

// DecodeMultiKeyKey reads a multi-key DpfKey over algebra.Point.
func DecodeMultiKeyKey(buf *buffer.Buffer) (dpf.MultiKeyKey[algebra.Point], error) {
	n, err := buf.ReadUint32()
	if err != nil {
		return dpf.MultiKeyKey[algebra.Point]{}, fmt.Errorf("wire: decode MultiKeyKey.EncodedMsg length: %w", err)
	}
	elems := make([]algebra.Point, n)
	for i := range elems {
		p, err := DecodePoint(buf)
		if err != nil {
			return dpf.MultiKeyKey[algebra.Point]{}, fmt.Errorf("wire: decode MultiKeyKey.EncodedMsg[%d]: %w", i, err)
		}
		elems[i] = p
	}
	bits, err := DecodeBits(buf)
	if err != nil {
		return dpf.MultiKeyKey[algebra.Point]{}, fmt.Errorf("wire: decode MultiKeyKey.Bits: %w", err)
	}
	numSeeds, err := buf.ReadUint32()
	if err != nil {
		return dpf.MultiKeyKey[algebra.Point]{}, fmt.Errorf("wire: decode MultiKeyKey.Seeds length: %w", err)
	}
	seeds := make([]algebra.Scalar, numSeeds)
	for i := range seeds {
		s, err := DecodeScalar(buf)
		if err != nil {
			return dpf.MultiKeyKey[algebra.Point]{}, fmt.Errorf("wire: decode MultiKeyKey.Seeds[%d]: %w", i, err)
		}
		seeds[i] = s
	}
	return dpf.MultiKeyKey[algebra.Point]{
		EncodedMsg: prg.NewElementVec(elems),
		Bits:       bits,
		Seeds:      seeds,
	}, nil
}
