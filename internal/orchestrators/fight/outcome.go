package fight

import (
	"context"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// DefaultPayoutPercent is the share of the opponent's cost paid to the
// player for a win
const DefaultPayoutPercent = 50

// EvaluatorConfig holds the evaluator's dependencies
type EvaluatorConfig struct {
	Wallet        Wallet
	PayoutPercent int
}

// Validate ensures all required dependencies are provided
func (c *EvaluatorConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Wallet == nil {
		vb.RequiredField("Wallet")
	}
	errors.ValidateRange("PayoutPercent", c.PayoutPercent, 0, 100, vb)
	return vb.Build()
}

// Evaluator declares the winner of a finished fight and pays out
type Evaluator struct {
	wallet        Wallet
	payoutPercent int
}

// NewEvaluator creates an outcome evaluator
func NewEvaluator(cfg *EvaluatorConfig) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid evaluator config")
	}

	return &Evaluator{
		wallet:        cfg.Wallet,
		payoutPercent: cfg.PayoutPercent,
	}, nil
}

// Decide picks the winner of a decided fight. The opponent needs strictly
// more health than the player; a tie goes to the player.
func Decide(player, opponent *robot.Instance) Winner {
	if opponent.Health() > player.Health() {
		return WinnerOpponent
	}
	return WinnerPlayer
}

// Payout is what beating opponent is worth
func (e *Evaluator) Payout(opponent *robot.Instance) int {
	return opponent.Template().Cost * e.payoutPercent / 100
}

// Evaluate produces the result of a fight. A draw pays nothing. A player
// win credits the payout to the wallet.
func (e *Evaluator) Evaluate(ctx context.Context, draw bool, player, opponent *robot.Instance) (*Result, error) {
	if draw {
		return &Result{Winner: WinnerDraw}, nil
	}

	winner := Decide(player, opponent)
	if winner != WinnerPlayer {
		return &Result{Winner: winner}, nil
	}

	payout := e.Payout(opponent)
	if payout > 0 {
		if err := e.wallet.Credit(ctx, payout); err != nil {
			return nil, errors.Wrapf(err, "failed to credit payout of %d", payout)
		}
	}
	return &Result{Winner: WinnerPlayer, Payout: payout}, nil
}
