package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 1000
	seen := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, count := range seen {
		assert.Equal(t, int32(1), count, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SmallChunk(t *testing.T) {
	// Fewer items than MinChunkSize run in order on the calling goroutine.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}
	var order []int
	For(10, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestFor_Zero(t *testing.T) {
	var calls int64
	For(0, func(_ int) { atomic.AddInt64(&calls, 1) }, DefaultConfig())
	assert.Zero(t, calls)
}

func TestMap(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2}
	got, err := Map(20, func(i int) (int, error) {
		return i * i, nil
	}, cfg)
	require.NoError(t, err)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestMap_FirstErrorByIndex(t *testing.T) {
	errLow := errors.New("low")
	errHigh := errors.New("high")
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	_, err := Map(100, func(i int) (int, error) {
		switch i {
		case 10:
			return 0, errLow
		case 90:
			return 0, errHigh
		}
		return i, nil
	}, cfg)
	require.ErrorIs(t, err, errLow)
}
