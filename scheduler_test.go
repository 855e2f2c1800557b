package spright

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxWorkers_ClampsToPositiveLimit(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Min(3, runtime.NumCPU()), maxWorkers(100, 3))
	assert.Equal(Min(2, runtime.NumCPU()), maxWorkers(2, 3), "never more workers than items")
	assert.Positive(maxWorkers(100, 0), "limit <= 0 falls back to runtime.NumCPU")
}

func TestForEachParallelLimit_NeverExceedsLimit(t *testing.T) {
	assert := assert.New(t)

	var running, maxSeen int32
	err := ForEachParallelLimit(make([]int, 50), 2, func(v *int) error {
		n := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&maxSeen)
			if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
		return nil
	})

	assert.NoError(err)
	assert.LessOrEqual(maxSeen, int32(2))
}

func TestForEachParallelN_VisitsEveryIndexExactlyOnce(t *testing.T) {
	assert := assert.New(t)

	const n = 200
	var counts [n]int32

	err := ForEachParallelN(n, func(i int) error {
		atomic.AddInt32(&counts[i], 1)
		return nil
	})

	assert.NoError(err)
	for i, c := range counts {
		assert.Equal(int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestForEachParallelN_ReturnsFirstError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	err := ForEachParallelN(10, func(i int) error {
		if i == 5 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(err, boom)
}

func TestForEachParallelN_ZeroIsNoop(t *testing.T) {
	assert := assert.New(t)

	called := false
	err := ForEachParallelN(0, func(i int) error {
		called = true
		return nil
	})

	assert.NoError(err)
	assert.False(called)
}

func TestForEachParallel_MutatesElementsInPlace(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	items := []int{1, 2, 3, 4, 5}
	err := ForEachParallel(items, func(v *int) error {
		*v *= 10
		return nil
	})
	require.NoError(err)

	assert.Equal([]int{10, 20, 30, 40, 50}, items)
}
