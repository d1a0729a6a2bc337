// Package shop sells robot builds to the player
package shop

//go:generate mockgen -destination=mock/mock_ledger.go -package=shopmock github.com/KirkDiggler/cyber-pit/internal/orchestrators/shop Ledger

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/idgen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
)

// TokenCancel leaves the shop without buying
const TokenCancel = "cancel"

// Ledger is the buyer's account
type Ledger interface {
	// CurrentBalance returns the spendable balance
	CurrentBalance(ctx context.Context) (int, error)
	// Debit removes amount from the balance
	// Returns errors.FailedPrecondition when the balance is too low
	Debit(ctx context.Context, amount int) error
	// PersistRobot records r as the buyer's robot
	PersistRobot(ctx context.Context, r *robot.Instance) error
}

// Config holds the shop's dependencies
type Config struct {
	Catalog     *robot.Catalog
	Ledger      Ledger
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Listing is one build on display
type Listing struct {
	Name        string
	Cost        int
	Description string
	Affordable  bool
}

// PurchaseInput names what to buy
type PurchaseInput struct {
	BuildName string
	RobotName string
}

// PurchaseOutput is a completed purchase
type PurchaseOutput struct {
	Robot   *robot.Instance
	Balance int
}

// Shop validates purchases and builds the robots it sells
type Shop struct {
	catalog *robot.Catalog
	ledger  Ledger
	roller  dice.Roller
	ids     idgen.Generator
	logger  zerolog.Logger
}

// New creates a shop bound to one buyer's ledger
func New(cfg *Config) (*Shop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shop config")
	}

	return &Shop{
		catalog: cfg.Catalog,
		ledger:  cfg.Ledger,
		roller:  cfg.Roller,
		ids:     cfg.IDGenerator,
		logger:  logging.For("shop"),
	}, nil
}

// ListAffordable returns every build in catalog order, flagging the ones
// balance covers
func (s *Shop) ListAffordable(balance int) []Listing {
	names := s.catalog.BuildNames()
	listings := make([]Listing, 0, len(names))
	for _, name := range names {
		tmpl, ok := s.catalog.Lookup(name)
		if !ok {
			continue
		}
		listings = append(listings, Listing{
			Name:        tmpl.Name,
			Cost:        tmpl.Cost,
			Description: tmpl.Description,
			Affordable:  tmpl.Cost <= balance,
		})
	}
	return listings
}

// Purchase buys a build, debits its cost and hands back a fresh robot
func (s *Shop) Purchase(ctx context.Context, input *PurchaseInput) (*PurchaseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.RobotName)
	vb := errors.NewValidationBuilder()
	errors.ValidateLength("RobotName", name, robot.MinNameLength, robot.MaxNameLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	tmpl, ok := s.catalog.Lookup(input.BuildName)
	if !ok {
		return nil, errors.InvalidArgumentf("%q is not a robot build", strings.TrimSpace(input.BuildName))
	}

	balance, err := s.ledger.CurrentBalance(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read balance")
	}
	if tmpl.Cost > balance {
		return nil, errors.FailedPreconditionf("insufficient funds: %s costs %d BTC, balance is %d BTC",
			tmpl.Name, tmpl.Cost, balance).
			WithMeta("cost", tmpl.Cost).
			WithMeta("balance", balance)
	}

	bought, err := robot.NewInstance(&robot.InstanceConfig{
		ID:       s.ids.Generate(),
		Name:     name,
		Template: tmpl,
		Weapons:  s.catalog.Weapons(),
		Roller:   s.roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build robot")
	}

	if err := s.ledger.Debit(ctx, tmpl.Cost); err != nil {
		return nil, errors.Wrapf(err, "failed to pay for %s", tmpl.Name)
	}
	if err := s.ledger.PersistRobot(ctx, bought); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to save purchased robot")
	}

	s.logger.Info().
		Str("build", tmpl.Name).
		Str("robot", name).
		Int("cost", tmpl.Cost).
		Msg("robot purchased")

	return &PurchaseOutput{
		Robot:   bought,
		Balance: balance - tmpl.Cost,
	}, nil
}
