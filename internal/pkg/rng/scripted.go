package rng

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Scripted replays fixed values. Values larger than the requested die
// are clamped to it. Once the script runs out the last value repeats.
// It exists for tests that need a specific dodge or miss outcome.
type Scripted struct {
	values []int
	next   int
}

var _ dice.Roller = (*Scripted)(nil)

// NewScripted creates a roller returning values in order
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

// Always returns a roller that always rolls v
func Always(v int) *Scripted {
	return NewScripted(v)
}

// Roll returns the next scripted value
func (s *Scripted) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size: %d", size)
	}
	if len(s.values) == 0 {
		return 1, nil
	}

	idx := s.next
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	} else {
		s.next++
	}

	v := s.values[idx]
	if v > size {
		v = size
	}
	if v < 1 {
		v = 1
	}
	return v, nil
}

// RollN rolls count scripted values
func (s *Scripted) RollN(count, size int) ([]int, error) {
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
