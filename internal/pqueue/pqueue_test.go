package pqueue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinQueue_PushOrDecreaseIsNoOpOnLargerKey(t *testing.T) {
	q := NewMinQueue[string]()
	require.NoError(t, q.PushOrDecrease("a", 5))
	require.NoError(t, q.PushOrDecrease("a", 9)) // larger key: no-op
	key, ok := q.CurrentKey("a")
	require.True(t, ok)
	require.Equal(t, 5.0, key)
}

func TestMinQueue_PushOrDecreaseUpdatesOnSmallerKey(t *testing.T) {
	q := NewMinQueue[string]()
	require.NoError(t, q.PushOrDecrease("a", 5))
	require.NoError(t, q.PushOrDecrease("a", 1))
	key, ok := q.CurrentKey("a")
	require.True(t, ok)
	require.Equal(t, 1.0, key)
}

func TestMinQueue_PopMinIsNonDecreasing(t *testing.T) {
	q := NewMinQueue[int]()
	for i, k := range []float64{5, 1, 4, 2, 3} {
		require.NoError(t, q.PushOrDecrease(i, k))
	}
	var last float64 = math.Inf(-1)
	for !q.IsEmpty() {
		_, key, ok := q.PopMin()
		require.True(t, ok)
		require.GreaterOrEqual(t, key, last)
		last = key
	}
}

func TestMinQueue_EmptyPopReturnsFalse(t *testing.T) {
	q := NewMinQueue[int]()
	_, _, ok := q.PopMin()
	require.False(t, ok)
}

func TestMinQueue_InvalidKey(t *testing.T) {
	q := NewMinQueue[int]()
	err := q.PushOrDecrease(1, math.NaN())
	require.Error(t, err)
	err = q.PushOrDecrease(1, math.Inf(1))
	require.Error(t, err)
}

func TestMaxQueue_PushOrIncreaseIsNoOpOnSmallerKey(t *testing.T) {
	q := NewMaxQueue[string]()
	require.NoError(t, q.PushOrIncrease("a", 5))
	require.NoError(t, q.PushOrIncrease("a", 1))
	key, ok := q.CurrentKey("a")
	require.True(t, ok)
	require.Equal(t, 5.0, key)
}

func TestMaxQueue_PopMaxIsNonIncreasing(t *testing.T) {
	q := NewMaxQueue[int]()
	for i, k := range []float64{5, 1, 4, 2, 3} {
		require.NoError(t, q.PushOrIncrease(i, k))
	}
	last := math.Inf(1)
	for !q.IsEmpty() {
		_, key, ok := q.PopMax()
		require.True(t, ok)
		require.LessOrEqual(t, key, last)
		last = key
	}
}

func TestMaxQueue_EmptyPopReturnsFalse(t *testing.T) {
	q := NewMaxQueue[int]()
	_, _, ok := q.PopMax()
	require.False(t, ok)
}
