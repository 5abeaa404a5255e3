package accumulator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-go/spectrumcore/accumulator"
	"github.com/spectrum-go/spectrumcore/buffer"
)

func nullChannels(n, msgLen int) []buffer.ByteBuf {
	out := make([]buffer.ByteBuf, n)
	for i := range out {
		out[i] = buffer.NewByteBuf(msgLen)
	}
	return out
}

func TestStoreAccumulateCombinesPerChannel(t *testing.T) {
	s := accumulator.New(nullChannels(3, 4))

	a := nullChannels(3, 4)
	a[1] = buffer.NewByteBufFromBytes([]byte{1, 2, 3, 4})
	s.Accumulate(a)

	b := nullChannels(3, 4)
	b[1] = buffer.NewByteBufFromBytes([]byte{5, 6, 7, 8})
	s.Accumulate(b)

	values, rounds := s.Snapshot()
	require.Equal(t, 2, rounds)
	assert.True(t, values[0].Equal(buffer.NewByteBuf(4)))
	assert.True(t, values[1].Equal(buffer.NewByteBufFromBytes([]byte{4, 4, 4, 12})))
	assert.True(t, values[2].Equal(buffer.NewByteBuf(4)))
}

func TestStoreAccumulateOrderIndependent(t *testing.T) {
	a := nullChannels(2, 4)
	a[0] = buffer.NewByteBufFromBytes([]byte{1, 1, 1, 1})
	b := nullChannels(2, 4)
	b[1] = buffer.NewByteBufFromBytes([]byte{2, 2, 2, 2})

	forward := accumulator.New(nullChannels(2, 4))
	forward.Accumulate(a)
	forward.Accumulate(b)

	backward := accumulator.New(nullChannels(2, 4))
	backward.Accumulate(b)
	backward.Accumulate(a)

	fwdValues, _ := forward.Snapshot()
	bwdValues, _ := backward.Snapshot()
	for i := range fwdValues {
		assert.True(t, fwdValues[i].Equal(bwdValues[i]))
	}
}

func TestStoreAccumulateMismatchedLengthPanics(t *testing.T) {
	s := accumulator.New(nullChannels(2, 4))
	assert.Panics(t, func() {
		s.Accumulate(nullChannels(3, 4))
	})
}

func TestStoreAccumulateConcurrentSafe(t *testing.T) {
	s := accumulator.New(nullChannels(1, 4))

	var wg sync.WaitGroup
	contribution := nullChannels(1, 4)
	contribution[0] = buffer.NewByteBufFromBytes([]byte{1, 0, 0, 0})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Accumulate(contribution)
		}()
	}
	wg.Wait()

	_, rounds := s.Snapshot()
	assert.Equal(t, 50, rounds)
}
