package matchmaking

// Rand is the randomness the sampler needs. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// WeightedPick returns one item with probability proportional to its
// weight. Negative weights count as zero; when nothing carries weight the
// choice is uniform. ok is false only for an empty collection.
func WeightedPick[T any](r Rand, items []T, weight func(T) float64) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}

	weights := make([]float64, len(items))
	var total float64
	for i, it := range items {
		w := weight(it)
		if w > 0 {
			weights[i] = w
			total += w
		}
	}

	if total <= 0 {
		return items[r.IntN(len(items))], true
	}

	target := r.Float64() * total
	for i, w := range weights {
		if target < w {
			return items[i], true
		}
		target -= w
	}

	// float rounding can leave target just above the last bucket
	for i := len(items) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return items[i], true
		}
	}
	return items[len(items)-1], true
}
