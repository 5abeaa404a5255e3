// Package sampling provides the process-wide secure RNG and deterministic
// seeded generators used throughout spectrumcore: a key derives a clocked
// stream that Read consumes from and Reset rewinds to the start.
package sampling

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// SeedSize is the width in bytes of a deterministic generator seed. AES-128
// is used as the underlying stream cipher, so the seed doubles as its key.
const SeedSize = 16

// Seed is a deterministic-generator key.
type Seed [SeedSize]byte

// NewSeedFromBytes copies b into a Seed, requiring exactly SeedSize bytes.
func NewSeedFromBytes(b []byte) (Seed, error) {
	var s Seed
	if len(b) != SeedSize {
		return s, fmt.Errorf("sampling: seed must be %d bytes, got %d", SeedSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// RandomSeed draws a fresh Seed from the process-wide secure RNG.
func RandomSeed() Seed {
	var s Seed
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		panic(fmt.Sprintf("sampling: random seed: %v", err))
	}
	return s
}

// DeriveKey deterministically turns label into a Seed via blake2b, so two
// callers that agree on a label (a round number, a channel name) agree on
// the same seed without exchanging one.
func DeriveKey(label string) Seed {
	h := blake2b.Sum256([]byte(label))
	var s Seed
	copy(s[:], h[:SeedSize])
	return s
}

// Sampleable is implemented by any type whose values can be drawn
// uniformly from a byte stream. Scalar, Point, and IntMod in package
// algebra satisfy this via their SampleFrom methods.
type Sampleable[T any] interface {
	SampleFrom(r io.Reader) T
}

// Sample draws a single uniformly random value of T from the process-wide
// secure RNG.
func Sample[T Sampleable[T]](zero T) T {
	return zero.SampleFrom(rand.Reader)
}

// SampleMany draws n independent uniformly random values of T from the
// process-wide secure RNG.
func SampleMany[T Sampleable[T]](zero T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = zero.SampleFrom(rand.Reader)
	}
	return out
}

// SampleManyFromSeed deterministically draws n values of T from a
// SeededStream keyed by seed: identical seeds yield identical sequences,
// which is what lets prg.NewGroupPrgFromSeed reproduce the same generator
// vector in every process without storing it.
func SampleManyFromSeed[T Sampleable[T]](zero T, seed Seed, n int) []T {
	stream := NewSeededStream(seed)
	out := make([]T, n)
	for i := range out {
		out[i] = zero.SampleFrom(stream)
	}
	return out
}

// SeededStream is a deterministic byte stream keyed by a Seed, implemented
// as AES-128 in CTR mode with a zero IV and zero plaintext (the same
// construction as prg.AesPrg, reused here as a general-purpose
// deterministic io.Reader). Read consumes from the stream's current
// position; Reset rewinds to the beginning.
type SeededStream struct {
	seed   Seed
	stream cipher.Stream
}

// NewSeededStream builds a SeededStream keyed by seed, positioned at the
// start of its output.
func NewSeededStream(seed Seed) *SeededStream {
	s := &SeededStream{seed: seed}
	s.Reset()
	return s
}

// Read fills p with the next len(p) bytes of the deterministic stream.
// Always returns len(p), nil.
func (s *SeededStream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.stream.XORKeyStream(p, p)
	return len(p), nil
}

// Reset rewinds the stream to its initial position, so the next Read
// reproduces the sequence seen since construction.
func (s *SeededStream) Reset() {
	block, err := aes.NewCipher(s.seed[:])
	if err != nil {
		panic(fmt.Sprintf("sampling: seeded stream cipher: %v", err))
	}
	iv := make([]byte, aes.BlockSize)
	s.stream = cipher.NewCTR(block, iv)
}
