// Package namegen generates opponent robot names
package namegen

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
)

// Generator produces a robot name of at most 15 characters
type Generator interface {
	Generate() (string, error)
}

var (
	prefixes = []string{
		"Rust", "Volt", "Scrap", "Gear", "Hex", "Iron", "Chrome",
		"Bolt", "Servo", "Null", "Byte", "Piston",
	}
	suffixes = []string{
		"Crusher", "Fang", "Bane", "Maw", "Jaw", "Grinder", "Wreck",
		"Claw", "Spark", "Tusk",
	}
)

// maxBase leaves room for the "-NN" serial within the 15 character limit
const maxBase = 12

// Roller builds names as prefix + suffix + two digit serial
type Roller struct {
	roller dice.Roller
}

// New creates a name generator drawing from roller
func New(roller dice.Roller) (*Roller, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &Roller{roller: roller}, nil
}

// Generate returns a name such as "VoltFang-07"
func (g *Roller) Generate() (string, error) {
	p, err := rng.Pick(g.roller, len(prefixes))
	if err != nil {
		return "", errors.Wrap(err, "failed to pick name prefix")
	}
	prefix := prefixes[p]

	fitting := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		if len(prefix)+len(suffix) <= maxBase {
			fitting = append(fitting, suffix)
		}
	}
	s, err := rng.Pick(g.roller, len(fitting))
	if err != nil {
		return "", errors.Wrapf(err, "failed to pick name suffix for %s", prefix)
	}

	serial, err := g.roller.Roll(99)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll serial")
	}
	return fmt.Sprintf("%s%s-%02d", prefix, fitting[s], serial), nil
}
