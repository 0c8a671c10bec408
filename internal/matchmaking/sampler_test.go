package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedPick(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		_, ok := WeightedPick(seeded(1), []string{}, func(string) float64 { return 1 })
		assert.False(t, ok)
	})

	t.Run("only weighted item is chosen", func(t *testing.T) {
		items := []string{"a", "b", "c"}
		r := seeded(2)
		for i := 0; i < 100; i++ {
			got, ok := WeightedPick(r, items, func(s string) float64 {
				if s == "b" {
					return 3
				}
				return 0
			})
			require.True(t, ok)
			assert.Equal(t, "b", got)
		}
	})

	t.Run("zero weights fall back to uniform", func(t *testing.T) {
		items := []string{"a", "b", "c"}
		r := seeded(3)
		seen := map[string]int{}
		for i := 0; i < 300; i++ {
			got, ok := WeightedPick(r, items, func(string) float64 { return -1 })
			require.True(t, ok)
			seen[got]++
		}
		assert.Len(t, seen, 3)
	})

	t.Run("proportional to weight", func(t *testing.T) {
		items := []int{1, 9}
		r := seeded(4)
		counts := map[int]int{}
		for i := 0; i < 10000; i++ {
			got, _ := WeightedPick(r, items, func(v int) float64 { return float64(v) })
			counts[got]++
		}
		assert.InDelta(t, 0.9, float64(counts[9])/10000, 0.03)
	})

	t.Run("same seed same choice", func(t *testing.T) {
		items := []string{"a", "b", "c", "d"}
		weight := func(s string) float64 { return float64(len(s) + int(s[0])) }
		first, _ := WeightedPick(seeded(11), items, weight)
		second, _ := WeightedPick(seeded(11), items, weight)
		assert.Equal(t, first, second)
	})
}
