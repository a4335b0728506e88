// Package rng provides the deterministic randomness consumed by combat,
// encounters and puzzles.
package rng

import "math/rand"

// Source is the randomness the core consumes. *RNG implements it; tests
// may inject a Sequence.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// countingSource counts every draw from the underlying source so the
// stream position can be saved and replayed exactly.
type countingSource struct {
	src rand.Source64
	n   int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	c.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, enabling save/restore.
type RNG struct {
	seed int64
	cs   *countingSource
	src  *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &RNG{
		seed: seed,
		cs:   cs,
		src:  rand.New(cs),
	}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.src.Intn(n)
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.src.Intn(sides) + 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.cs.n
}

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func RestoreRNG(seed int64, position int64) *RNG {
	r := NewRNG(seed)
	r.Reset(seed, position)
	return r
}

// Reset rewinds r in place to seed and replays position draws. Holders of
// r keep drawing from the restored stream.
func (r *RNG) Reset(seed, position int64) {
	*r = *NewRNG(seed)
	for i := int64(0); i < position; i++ {
		r.cs.Int63()
	}
}

// Chance reports whether a percentage roll succeeds: true with
// probability percent/100.
func Chance(src Source, percent int) bool {
	return src.Intn(100) < percent
}

// WeightedSelect returns an index chosen by weighted random selection.
// weights must be non-empty with all positive values.
func WeightedSelect(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Sequence is a scripted Source that replays fixed values, wrapping
// around when exhausted. Each value is reduced modulo n.
type Sequence struct {
	Values []int
	next   int
}

// NewSequence returns a Sequence replaying values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{Values: values}
}

// Intn returns the next scripted value modulo n.
func (s *Sequence) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v % n
}
