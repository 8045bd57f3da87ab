package engine

import "math/rand"

// Random is the source of every random choice a battle makes. Tests inject
// a scripted implementation to force a specific draw or enemy.
type Random interface {
	// Intn returns an integer in [0, n). n is always positive.
	Intn(n int) int
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, so a snapshot can report how far
// the sequence has advanced.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns an integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Sample returns k distinct indices drawn from [0, n) without replacement,
// in draw order. It runs a partial Fisher-Yates shuffle, so it always
// takes exactly k draws. Requires 0 <= k <= n.
func Sample(rnd Random, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
