package quiz

import "math/rand/v2"

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Shuffle permutes items in place with Fisher-Yates. A nil src uses the
// package-level generator.
func Shuffle[T any](items []T, src Source) {
	if src == nil {
		src = globalSource{}
	}
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// NewSeededSource returns a deterministic source for reproducible orders.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
