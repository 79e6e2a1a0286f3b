package core

import "math/rand"

// Weights holds one non-negative weight per drawable tile type, indexed by
// TileType.Index.
type Weights [NumTypes]float64

// UniformWeights gives every type weight 1.
func UniformWeights() Weights {
	return Weights{1, 1, 1, 1, 1}
}

// BiasedWeights gives favored the weight big and splits the rest of budget
// evenly over the other types.
func BiasedWeights(favored TileType, big, budget float64) Weights {
	rest := (budget - big) / float64(NumTypes-1)
	w := Weights{rest, rest, rest, rest, rest}
	w[favored.Index()] = big
	return w
}

// Draw picks an index with probability proportional to its weight. A value is
// drawn uniformly from [0, sum) and the first index whose running total
// exceeds it wins; zero-weight entries are never returned.
// It panics if no weight is positive.
func Draw(rng *rand.Rand, weights []float64) int {
	var sum float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			sum += w
			last = i
		}
	}
	if last < 0 {
		panic("core: draw with no positive weight")
	}

	x := rng.Float64() * sum
	var total float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		total += w
		if x < total {
			return i
		}
	}
	// Rounding can leave x a hair above the final total.
	return last
}

// DrawType draws a tile type from w.
func DrawType(rng *rand.Rand, w Weights) TileType {
	return TypeAt(Draw(rng, w[:]))
}
