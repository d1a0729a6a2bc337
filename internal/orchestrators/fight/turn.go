package fight

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
)

// turn is one side's action within a round
type turn interface {
	side() Side
	take(ctx context.Context, f *Fight) error
}

// playerTurn reads weapon choices from the operator until one lands
type playerTurn struct{}

func (playerTurn) side() Side {
	return SidePlayer
}

func (playerTurn) take(ctx context.Context, f *Fight) error {
	for {
		line, err := f.operator.Prompt(ctx, f.loadout())
		if err != nil {
			return errors.Wrap(err, "failed to read weapon choice")
		}

		token := normalize(line)
		if token == TokenStats {
			f.operator.Say(f.stats())
			continue
		}
		if !f.player.Equipped(token) {
			f.operator.Say(fmt.Sprintf("%q is not one of your weapons.", token))
			continue
		}

		outcome, err := f.attack(ctx, SidePlayer, token)
		if err != nil {
			return err
		}
		if outcome != OutcomeRefused {
			return nil
		}
	}
}

// opponentTurn picks uniformly among the weapons the opponent can pay for
type opponentTurn struct {
	roller dice.Roller
}

func (*opponentTurn) side() Side {
	return SideOpponent
}

func (t *opponentTurn) take(ctx context.Context, f *Fight) error {
	choices := f.opponent.Affordable()
	if len(choices) == 0 {
		return nil
	}

	i, err := rng.Pick(t.roller, len(choices))
	if err != nil {
		return errors.Wrap(err, "failed to pick opponent weapon")
	}

	outcome, err := f.attack(ctx, SideOpponent, choices[i])
	if err != nil {
		return err
	}
	if outcome == OutcomeRefused {
		return errors.Internal(fmt.Sprintf("opponent chose unaffordable weapon %s", choices[i]))
	}
	return nil
}
