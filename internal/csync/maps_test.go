package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := NewMap[int, string]()
	m.Set(1, "one")
	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "one", v)

	require.False(t, m.SetIfAbsent(1, "uno"))
	require.True(t, m.SetIfAbsent(2, "two"))
	require.Equal(t, 2, m.Len())

	m.Del(2)
	_, ok = m.Get(2)
	require.False(t, ok)

	m.Del(1)
	require.Zero(t, m.Len())
}

func TestMap_Reset(t *testing.T) {
	t.Parallel()

	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Reset()
	require.Zero(t, m.Len())
	require.True(t, m.SetIfAbsent("a", 3))
}

func TestMap_ConcurrentSetIfAbsent(t *testing.T) {
	t.Parallel()

	m := NewMap[string, int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	stored := 0
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.SetIfAbsent("page", i) {
				mu.Lock()
				stored++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, stored)
}
