package playlist

import "math/rand/v2"

// Shuffler produces permutations of queue indices.
type Shuffler interface {
	// Permutation returns a uniformly random permutation of [0, n).
	Permutation(n int) []int
}

// FisherYates is a Shuffler backed by a random source.
type FisherYates struct {
	rng *rand.Rand
}

// NewFisherYates creates a shuffler seeded from the runtime's entropy.
func NewFisherYates() *FisherYates {
	return &FisherYates{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))} //nolint:gosec // not security sensitive
}

// NewSeededFisherYates creates a deterministic shuffler.
func NewSeededFisherYates(seed1, seed2 uint64) *FisherYates {
	return &FisherYates{rng: rand.New(rand.NewPCG(seed1, seed2))} //nolint:gosec // not security sensitive
}

// Permutation implements Shuffler.
func (f *FisherYates) Permutation(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := f.rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
