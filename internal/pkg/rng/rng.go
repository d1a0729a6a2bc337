// Package rng provides dice.Roller implementations for the pit. Every
// random decision in a session goes through one Roller so a fixed seed
// replays the same fights.
package rng

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Seeded is a deterministic dice.Roller. It is not safe for concurrent
// use; a session owns its roller.
type Seeded struct {
	seed uint64
	r    *rand.Rand
}

var _ dice.Roller = (*Seeded)(nil)

// NewSeeded creates a roller from seed. A zero seed is replaced by the
// current time.
func NewSeeded(seed uint64) *Seeded {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeded{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed in use
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// Roll returns a uniform integer in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size: %d", size)
	}
	return s.r.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid dice count: %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Pick returns a uniform index into a slice of length n
func Pick(roller dice.Roller, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot pick from %d items", n)
	}
	v, err := roller.Roll(n)
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}
