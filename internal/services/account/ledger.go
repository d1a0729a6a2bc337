// Package account binds a player's stored account to the money and
// robot operations the game needs
package account

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	accountrepo "github.com/KirkDiggler/cyber-pit/internal/repositories/account"
)

// Config holds the ledger's dependencies
type Config struct {
	Repository accountrepo.Repository
	Username   string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	errors.ValidateRequired("Username", c.Username, vb)
	return vb.Build()
}

// Ledger is one player's account. Storage failures come back as Internal
// errors since the session cannot go on with an account it cannot trust.
type Ledger struct {
	repo     accountrepo.Repository
	username string
	logger   zerolog.Logger
}

// NewLedger creates a ledger for one username
func NewLedger(cfg *Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid ledger config")
	}

	return &Ledger{
		repo:     cfg.Repository,
		username: cfg.Username,
		logger:   logging.For("ledger").With().Str("username", cfg.Username).Logger(),
	}, nil
}

// Username returns the account the ledger is bound to
func (l *Ledger) Username() string {
	return l.username
}

// CurrentBalance returns the stored balance
func (l *Ledger) CurrentBalance(ctx context.Context) (int, error) {
	out, err := l.repo.Get(ctx, accountrepo.GetInput{Username: l.username})
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeInternal, "failed to read balance")
	}
	return out.Account.Balance, nil
}

// Debit takes amount from the balance. An insufficient balance is a
// FailedPrecondition and leaves the balance as it was.
func (l *Ledger) Debit(ctx context.Context, amount int) error {
	if amount < 0 {
		return errors.InvalidArgumentf("debit amount cannot be negative: %d", amount)
	}

	out, err := l.repo.AdjustBalance(ctx, accountrepo.AdjustBalanceInput{Username: l.username, Delta: -amount})
	if err != nil {
		if errors.IsFailedPrecondition(err) {
			return errors.Wrapf(err, "cannot pay %d BTC", amount)
		}
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to debit account")
	}

	l.logger.Debug().Int("amount", amount).Int("balance", out.Balance).Msg("debited")
	return nil
}

// Credit adds amount to the balance
func (l *Ledger) Credit(ctx context.Context, amount int) error {
	if amount < 0 {
		return errors.InvalidArgumentf("credit amount cannot be negative: %d", amount)
	}

	out, err := l.repo.AdjustBalance(ctx, accountrepo.AdjustBalanceInput{Username: l.username, Delta: amount})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to credit account")
	}

	l.logger.Debug().Int("amount", amount).Int("balance", out.Balance).Msg("credited")
	return nil
}

// PersistRobot records r as the player's robot
func (l *Ledger) PersistRobot(ctx context.Context, r *robot.Instance) error {
	if r == nil {
		return errors.InvalidArgument("robot is required")
	}

	out, err := l.repo.Get(ctx, accountrepo.GetInput{Username: l.username})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to load account")
	}

	acc := out.Account
	acc.RobotID = r.GetID()
	acc.RobotName = r.Name()
	acc.RobotBuild = r.Template().Name

	if _, err := l.repo.Update(ctx, accountrepo.UpdateInput{Account: acc}); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to save robot")
	}
	return nil
}
