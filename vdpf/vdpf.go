// Package vdpf wraps the DPF constructions in package dpf with a public
// auditing protocol: servers can jointly confirm a write was generated
// under a valid access key for some channel, without learning which
// channel, what message, or which key, grounded on vdpf/two_key.rs,
// vdpf/multi_key.rs, and vdpf/two_key_pub.rs.
package vdpf

import (
	"math/big"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/spectrum-go/spectrumcore/algebra"
	"github.com/spectrum-go/spectrumcore/sampling"
)

// parallelHashThreshold is the input size above which hashBytes splits the
// digest across goroutines instead of hashing data on one. An AuditToken's
// DataHash is only ever compared against another DataHash produced by this
// same function, so the chunked variant only needs to be deterministic and
// consistent with itself, not bit-compatible with a single-pass blake3.Sum256.
const parallelHashThreshold = 125000

// hashWorkers is the number of chunks data is split into once it crosses
// parallelHashThreshold.
const hashWorkers = 4

func hashBytes(data []byte) [32]byte {
	if len(data) < parallelHashThreshold {
		return blake3.Sum256(data)
	}
	return hashBytesParallel(data)
}

// hashBytesParallel hashes data in hashWorkers independent chunks, each on
// its own goroutine, then folds the chunk digests into a single one. This is
// the Go stand-in for two_key_pub.rs's update_with_join::<RayonJoin> split:
// the underlying blake3 binding exposes no incremental tree-hash join, so
// independence is achieved at the chunk level rather than inside one hasher.
func hashBytesParallel(data []byte) [32]byte {
	chunkSize := (len(data) + hashWorkers - 1) / hashWorkers
	digests := make([][32]byte, hashWorkers)

	var wg sync.WaitGroup
	for i := 0; i < hashWorkers; i++ {
		start := i * chunkSize
		if start >= len(data) {
			break
		}
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			digests[i] = blake3.Sum256(data[start:end])
		}(i, start, end)
	}
	wg.Wait()

	combined := make([]byte, 0, 32*hashWorkers)
	for _, d := range digests {
		combined = append(combined, d[:]...)
	}
	return blake3.Sum256(combined)
}

// embedSeedAsScalar embeds a 16-byte AES seed into the scalar field, the
// Go equivalent of F::try_from(seed.bytes()) in two_key.rs. A 16-byte
// big-endian integer is always strictly less than the field order, so no
// reduction is required for the embedding to be injective.
func embedSeedAsScalar(seed sampling.Seed) algebra.Scalar {
	return algebra.NewScalar(new(big.Int).SetBytes(seed[:]))
}
