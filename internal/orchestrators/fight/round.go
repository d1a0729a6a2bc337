package fight

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ReasonExhausted is the TurnSkippedEvent reason for an out of energy robot
const ReasonExhausted = "exhausted"

// roundRunner plays its turns in order, player first
type roundRunner struct {
	turns []turn
}

func newRoundRunner(roller dice.Roller) *roundRunner {
	return &roundRunner{
		turns: []turn{playerTurn{}, &opponentTurn{roller: roller}},
	}
}

func (r *roundRunner) run(ctx context.Context, f *Fight) error {
	for _, t := range r.turns {
		actor, _ := f.sides(t.side())

		if actor.IsDestroyed() {
			continue
		}
		if actor.IsExhausted() {
			event := newTurnSkipped(f, t.side(), actor, actor.Name(), ReasonExhausted)
			if err := f.publish(ctx, EventTurnSkipped, event); err != nil {
				return err
			}
			continue
		}

		if err := t.take(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
