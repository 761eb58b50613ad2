package behavior

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlackboard(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		bb := NewBlackboard()

		bb.Set("key", "value")
		v, ok := bb.Get("key")
		require.True(t, ok)
		require.Equal(t, "value", v)

		require.True(t, bb.Has("key"))
		bb.Delete("key")
		require.False(t, bb.Has("key"))
	})

	t.Run("typed getters", func(t *testing.T) {
		bb := NewBlackboard()
		bb.Set("s", "text")
		bb.Set("i", 42)
		bb.Set("f", 2.5)
		bb.Set("b", true)

		s, ok := bb.GetString("s")
		require.True(t, ok)
		require.Equal(t, "text", s)

		i, ok := bb.GetInt("i")
		require.True(t, ok)
		require.Equal(t, 42, i)

		// numeric widening both ways
		f, ok := bb.GetFloat("i")
		require.True(t, ok)
		require.Equal(t, 42.0, f)
		i, ok = bb.GetInt("f")
		require.True(t, ok)
		require.Equal(t, 2, i)

		b, ok := bb.GetBool("b")
		require.True(t, ok)
		require.True(t, b)

		_, ok = bb.GetInt("s")
		require.False(t, ok)
		_, ok = bb.GetString("missing")
		require.False(t, ok)
	})

	t.Run("keys len clear", func(t *testing.T) {
		bb := NewBlackboard()
		bb.Set("a", 1)
		bb.Set("b", 2)
		bb.Set("c", 3)

		require.Equal(t, 3, bb.Len())
		require.ElementsMatch(t, []string{"a", "b", "c"}, bb.Keys())

		bb.Clear()
		require.Equal(t, 0, bb.Len())
	})

	t.Run("version increments on mutation", func(t *testing.T) {
		bb := NewBlackboard()
		v0 := bb.Version()
		bb.Set("a", 1)
		require.Less(t, v0, bb.Version())
		v1 := bb.Version()
		bb.Delete("a")
		require.Less(t, v1, bb.Version())
	})

	t.Run("snapshot", func(t *testing.T) {
		bb := NewBlackboard()
		bb.Set("a", 1)
		bb.Set("b", "x")

		snap := bb.Snapshot()
		require.Equal(t, map[string]any{"a": 1, "b": "x"}, snap)

		// snapshot is detached from the live data
		snap["a"] = 99
		v, _ := bb.Get("a")
		require.Equal(t, 1, v)
	})

	t.Run("concurrent access", func(t *testing.T) {
		bb := NewBlackboard()
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					key := fmt.Sprintf("key-%d", i)
					bb.Set(key, i)
					_, _ = bb.Get(key)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 100, bb.Len())
	})
}
