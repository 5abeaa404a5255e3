// Package share implements n-of-n additive linear secret sharing over any
// algebra.Group element, plus Boolean XOR sharing and the vector-of-shares
// transpose.
package share

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// Shareable is any group element that can be additively split into shares
// and recombined. algebra.Scalar and algebra.Point satisfy this.
type Shareable[T any] interface {
	algebra.Group[T]
	sampling.Sampleable[T]
}

// Share splits value into n additive shares: n-1 random elements plus
// value minus their sum. Summing all n shares recovers value. Panics if
// n < 2, since a single share would leak the secret outright.
func Share[T Shareable[T]](value T, n int) []T {
	if n < 2 {
		panic(fmt.Sprintf("share: cannot split a secret into fewer than two shares (n=%d)", n))
	}
	shares := make([]T, n)
	sum := value.Zero()
	for i := 0; i < n-1; i++ {
		shares[i] = sampling.Sample(value)
		sum = sum.Add(shares[i])
	}
	shares[n-1] = value.Sub(sum)
	return shares
}

// Recover sums shares to reconstruct the original secret. Panics if fewer
// than two shares are given.
func Recover[T Shareable[T]](shares []T) T {
	if len(shares) < 2 {
		panic(fmt.Sprintf("share: need at least two shares to recover a secret (got %d)", len(shares)))
	}
	sum := shares[0].Zero()
	for _, s := range shares {
		sum = sum.Add(s)
	}
	return sum
}

// ShareVector splits each element of values independently into n shares
// and returns the transpose: shares[i] is the i-th share of every element,
// suitable for distributing share i to server i.
func ShareVector[T Shareable[T]](values []T, n int) [][]T {
	if n < 2 {
		panic(fmt.Sprintf("share: cannot split a secret into fewer than two shares (n=%d)", n))
	}
	perElement := make([][]T, len(values))
	for i, v := range values {
		perElement[i] = Share(v, n)
	}
	return Transpose(perElement)
}

// RecoverVector recovers a vector of secrets from n share-vectors,
// applying Recover element-wise after transposing back.
func RecoverVector[T Shareable[T]](shares [][]T) []T {
	byElement := Transpose(shares)
	out := make([]T, len(byElement))
	for i, s := range byElement {
		out[i] = Recover(s)
	}
	return out
}

// Transpose swaps the two dimensions of a rectangular slice-of-slices. An
// empty outer slice is returned unchanged. Panics if the inner slices are
// not all the same length.
func Transpose[T any](rows [][]T) [][]T {
	if len(rows) == 0 {
		return rows
	}
	inner := len(rows[0])
	for _, r := range rows {
		if len(r) != inner {
			panic("share: transpose requires a rectangular matrix")
		}
	}
	if inner == 0 {
		return [][]T{{}}
	}
	out := make([][]T, inner)
	for i := range out {
		out[i] = make([]T, len(rows))
	}
	for i, r := range rows {
		for j, v := range r {
			out[j][i] = v
		}
	}
	return out
}

// ShareBool splits a boolean secret into n XOR shares: n-1 random bits
// plus their parity XORed with the secret.
func ShareBool(value bool, n int) []bool {
	if n < 2 {
		panic(fmt.Sprintf("share: cannot split a secret into fewer than two shares (n=%d)", n))
	}
	shares := make([]bool, n)
	parity := false
	for i := 0; i < n-1; i++ {
		shares[i] = randomBool()
		parity = parity != shares[i]
	}
	shares[n-1] = parity != value
	return shares
}

// RecoverBool XORs all shares together to recover the original bit.
func RecoverBool(shares []bool) bool {
	if len(shares) < 2 {
		panic(fmt.Sprintf("share: need at least two shares to recover a secret (got %d)", len(shares)))
	}
	out := false
	for _, s := range shares {
		out = out != s
	}
	return out
}

func randomBool() bool {
	var z algebra.Scalar
	return sampling.Sample(z).MarshalCanonical()[0]&1 == 1
}

// ShareInt splits a plain integer counter (a round number, a sequence
// index) into n shares that sum to value under wraparound addition on T.
// Unlike Share, this has no group-element bookkeeping to do, so it is kept
// separate rather than routed through Shareable.
func ShareInt[T constraints.Integer](value T, n int) []T {
	if n < 2 {
		panic(fmt.Sprintf("share: cannot split a secret into fewer than two shares (n=%d)", n))
	}
	shares := make([]T, n)
	var sum T
	for i := 0; i < n-1; i++ {
		var z algebra.Scalar
		random := sampling.Sample(z).MarshalCanonical()
		shares[i] = T(random[0])
		sum += shares[i]
	}
	shares[n-1] = value - sum
	return shares
}

// RecoverInt sums shares under wraparound addition to reconstruct the
// original counter.
func RecoverInt[T constraints.Integer](shares []T) T {
	if len(shares) < 2 {
		panic(fmt.Sprintf("share: need at least two shares to recover a secret (got %d)", len(shares)))
	}
	var sum T
	for _, s := range shares {
		sum += s
	}
	return sum
}
