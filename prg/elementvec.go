package prg

import (
	"fmt"

	"github.com/spectrum-go/spectrumcore/algebra"
)

// GroupElement is any algebra element an ElementVec can hold: it must
// support the group operations and canonical encoding used by combine and
// by audit-token hashing.
type GroupElement[T any] interface {
	algebra.Group[T]
}

// ElementVec is a fixed-length vector of group elements, the output type
// of GroupPrg (prg/group.rs's ElementVector).
type ElementVec[G GroupElement[G]] struct {
	elements []G
}

// NewElementVec wraps elements as an ElementVec. elements is not copied.
func NewElementVec[G GroupElement[G]](elements []G) ElementVec[G] {
	return ElementVec[G]{elements: elements}
}

// NullElementVec returns the vector of n group identities.
func NullElementVec[G GroupElement[G]](n int) ElementVec[G] {
	var zero G
	out := make([]G, n)
	for i := range out {
		out[i] = zero.Zero()
	}
	return ElementVec[G]{elements: out}
}

// Len returns the number of elements in the vector.
func (v ElementVec[G]) Len() int {
	return len(v.elements)
}

// Elements returns the underlying slice. Callers must not mutate it.
func (v ElementVec[G]) Elements() []G {
	return v.elements
}

// Add returns the pointwise group sum of v and o. Panics if lengths differ.
func (v ElementVec[G]) Add(o ElementVec[G]) ElementVec[G] {
	if len(v.elements) != len(o.elements) {
		panic(fmt.Sprintf("prg: ElementVec length mismatch: %d vs %d", len(v.elements), len(o.elements)))
	}
	out := make([]G, len(v.elements))
	for i := range out {
		out[i] = v.elements[i].Add(o.elements[i])
	}
	return ElementVec[G]{elements: out}
}

// Combine is Add under another name, satisfying accumulator.Accumulatable:
// the seed-homomorphic protocol's per-channel accumulator combines write
// contributions by the group operation, matching the multi-key DPF's
// additive structure over G.
func (v ElementVec[G]) Combine(o ElementVec[G]) ElementVec[G] {
	return v.Add(o)
}

// Equal reports whether v and o hold pointwise-equal elements.
func (v ElementVec[G]) Equal(o ElementVec[G]) bool {
	if len(v.elements) != len(o.elements) {
		return false
	}
	for i := range v.elements {
		if !v.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// MarshalCanonical concatenates each element's canonical encoding, in
// order. Used by VDPF audit tokens to hash a GroupPrg's output
// (prg/group.rs's hash_all, adapted: here the hash itself lives in
// package vdpf, this just supplies the canonical bytes).
func (v ElementVec[G]) MarshalCanonical() []byte {
	if len(v.elements) == 0 {
		return nil
	}
	out := make([]byte, 0, len(v.elements)*32)
	for _, e := range v.elements {
		enc := any(e).(interface{ MarshalCanonical() [32]byte }).MarshalCanonical()
		out = append(out, enc[:]...)
	}
	return out
}
