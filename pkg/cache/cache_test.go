package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestGetOrCompute(t *testing.T) {
	c := New[string](4)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	got, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	require.Equal(t, "value", got)

	got, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	require.Equal(t, "value", got)
	require.Equal(t, 1, calls, "second call must be a hit")
}

func TestErrorsNotCached(t *testing.T) {
	c := New[string](4)

	calls := 0
	_, err := c.GetOrCompute("k", func() (string, error) {
		calls++
		return "", errors.New("boom")
	})
	require.Error(t, err)

	got, err := c.GetOrCompute("k", func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 2, calls, "a failed computation must not be cached")
}

func TestLRUEviction(t *testing.T) {
	const capacity = 3
	c := New[int](capacity)

	for i := 0; i < capacity; i++ {
		i := i
		_, err := c.GetOrCompute(fmt.Sprintf("k%d", i), func() (int, error) { return i, nil })
		require.NoError(t, err)
	}

	// Touch k0 so k1 becomes the least recently used.
	_, ok := c.Get("k0")
	require.True(t, ok)

	_, err := c.GetOrCompute("k3", func() (int, error) { return 3, nil })
	require.NoError(t, err)

	require.Equal(t, capacity, c.Len(), "capacity must be respected")
	_, ok = c.Get("k1")
	require.False(t, ok, "least recently used entry must be evicted")
	_, ok = c.Get("k0")
	require.True(t, ok)

	// The evicted key is a miss that recomputes correctly.
	recomputed := false
	got, err := c.GetOrCompute("k1", func() (int, error) {
		recomputed = true
		return 1, nil
	})
	require.NoError(t, err)
	require.True(t, recomputed)
	require.Equal(t, 1, got)
}

func TestSingleflight(t *testing.T) {
	c := New[string](8)

	const callers = 32
	var computations atomic.Int32
	gate := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-gate
			val, err := c.GetOrCompute("shared", func() (string, error) {
				computations.Add(1)
				return "computed", nil
			})
			require.NoError(t, err)
			results[i] = val
		}(i)
	}
	close(gate)
	wg.Wait()

	require.Equal(t, int32(1), computations.Load(), "concurrent misses must share one computation")
	for _, r := range results {
		require.Equal(t, "computed", r)
	}
}

func TestNegativeCapacityDisables(t *testing.T) {
	c := New[string](-1)

	got, err := c.GetOrCompute("k", func() (string, error) { return "v", nil })
	require.NoError(t, err)
	require.Equal(t, "v", got)
	require.Equal(t, 0, c.Len())
}

func TestZeroCapacityDisables(t *testing.T) {
	c := New[string](0)

	calls := 0
	for i := 0; i < 3; i++ {
		got, err := c.GetOrCompute("k", func() (string, error) {
			calls++
			return "v", nil
		})
		require.NoError(t, err)
		require.Equal(t, "v", got)
	}
	require.Equal(t, 3, calls)
	require.Equal(t, 0, c.Len())
}
