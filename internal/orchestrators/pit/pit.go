// Package pit matches the player against generated opponents and keeps
// the books once a fight is over
package pit

//go:generate mockgen -destination=mock/mock_ledger.go -package=pitmock github.com/KirkDiggler/cyber-pit/internal/orchestrators/pit Ledger

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/idgen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/namegen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
	fightrecord "github.com/KirkDiggler/cyber-pit/internal/repositories/fight_record"
)

// Ledger is the player's account as the pit uses it
type Ledger interface {
	fight.Wallet
	PersistRobot(ctx context.Context, r *robot.Instance) error
}

// Config holds the pit's dependencies. One pit serves one player.
type Config struct {
	Username      string
	Catalog       *robot.Catalog
	Ledger        Ledger
	Records       fightrecord.Repository
	Operator      fight.Operator
	EventBus      events.EventBus
	Roller        dice.Roller
	Names         namegen.Generator
	FightIDs      idgen.Generator
	RobotIDs      idgen.Generator
	Clock         clock.Clock
	PayoutPercent int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Username", c.Username, vb)
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.Records == nil {
		vb.RequiredField("Records")
	}
	if c.Operator == nil {
		vb.RequiredField("Operator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Names == nil {
		vb.RequiredField("Names")
	}
	if c.FightIDs == nil {
		vb.RequiredField("FightIDs")
	}
	if c.RobotIDs == nil {
		vb.RequiredField("RobotIDs")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateRange("PayoutPercent", c.PayoutPercent, 0, 100, vb)
	return vb.Build()
}

// ChallengeInput names the robot stepping into the pit
type ChallengeInput struct {
	Player *robot.Instance
}

// ChallengeOutput is a proposed fight
type ChallengeOutput struct {
	Fight *fight.Fight
}

// SettleInput is a fight that was declined or finished
type SettleInput struct {
	Fight *fight.Fight
}

// SettleOutput holds the stored record, nil for a declined fight
type SettleOutput struct {
	Record *fightrecord.Record
}

// HistoryInput limits how many fights come back. Zero means all kept.
type HistoryInput struct {
	Limit int
}

// HistoryOutput holds fights, newest first
type HistoryOutput struct {
	Records []*fightrecord.Record
}

// Pit generates opponents and settles fights
type Pit struct {
	username  string
	catalog   *robot.Catalog
	ledger    Ledger
	records   fightrecord.Repository
	operator  fight.Operator
	bus       events.EventBus
	roller    dice.Roller
	names     namegen.Generator
	fightIDs  idgen.Generator
	robotIDs  idgen.Generator
	clock     clock.Clock
	evaluator *fight.Evaluator
	recorder  *Recorder
	logger    zerolog.Logger
}

// New creates a pit for one player
func New(cfg *Config) (*Pit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pit config")
	}

	evaluator, err := fight.NewEvaluator(&fight.EvaluatorConfig{
		Wallet:        cfg.Ledger,
		PayoutPercent: cfg.PayoutPercent,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create evaluator")
	}

	recorder, err := NewRecorder(cfg.EventBus)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recorder")
	}

	return &Pit{
		username:  cfg.Username,
		catalog:   cfg.Catalog,
		ledger:    cfg.Ledger,
		records:   cfg.Records,
		operator:  cfg.Operator,
		bus:       cfg.EventBus,
		roller:    cfg.Roller,
		names:     cfg.Names,
		fightIDs:  cfg.FightIDs,
		robotIDs:  cfg.RobotIDs,
		clock:     cfg.Clock,
		evaluator: evaluator,
		recorder:  recorder,
		logger:    logging.For("pit").With().Str("username", cfg.Username).Logger(),
	}, nil
}

// Close detaches the pit from the event bus
func (p *Pit) Close() error {
	return p.recorder.Close()
}

// Challenge draws a random build and name for an opponent and proposes a
// fight against it
func (p *Pit) Challenge(_ context.Context, input *ChallengeInput) (*ChallengeOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument("player robot is required")
	}

	builds := p.catalog.BuildNames()
	i, err := rng.Pick(p.roller, len(builds))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick opponent build")
	}
	tmpl, err := p.catalog.Template(builds[i])
	if err != nil {
		return nil, err
	}

	name, err := p.names.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to name opponent")
	}

	opponent, err := robot.NewInstance(&robot.InstanceConfig{
		ID:       p.robotIDs.Generate(),
		Name:     name,
		Template: tmpl,
		Weapons:  p.catalog.Weapons(),
		Roller:   p.roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build opponent")
	}

	f, err := fight.New(&fight.Config{
		ID:        p.fightIDs.Generate(),
		Player:    input.Player,
		Opponent:  opponent,
		Operator:  p.operator,
		EventBus:  p.bus,
		Evaluator: p.evaluator,
		Roller:    p.roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to propose fight")
	}

	p.recorder.Reset()
	p.logger.Debug().
		Str("fight_id", f.ID()).
		Str("opponent", name).
		Str("build", tmpl.Name).
		Msg("opponent generated")

	return &ChallengeOutput{Fight: f}, nil
}

// Settle restores the player's robot after a fight and stores the record
// of a fight that was actually fought
func (p *Pit) Settle(ctx context.Context, input *SettleInput) (*SettleOutput, error) {
	if input == nil || input.Fight == nil {
		return nil, errors.InvalidArgument("fight is required")
	}

	f := input.Fight
	if !f.State().Terminal() {
		return nil, errors.FailedPreconditionf("fight %s is %s and cannot be settled", f.ID(), f.State())
	}

	player := f.Player()
	player.Reset()
	if err := p.ledger.PersistRobot(ctx, player); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to save robot after fight")
	}

	if f.State() == fight.StateDeclined {
		return &SettleOutput{}, nil
	}

	result := f.Result()
	rec := &fightrecord.Record{
		FightID:       f.ID(),
		Username:      p.username,
		PlayerRobot:   player.Name(),
		PlayerBuild:   player.Template().Name,
		OpponentName:  f.Opponent().Name(),
		OpponentBuild: f.Opponent().Template().Name,
		Winner:        string(result.Winner),
		Payout:        result.Payout,
		Rounds:        result.Rounds,
		Log:           p.recorder.Lines(),
		FinishedAt:    p.clock.Now(),
	}
	if _, err := p.records.Append(ctx, fightrecord.AppendInput{Record: rec}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to record fight")
	}

	p.recorder.Reset()
	return &SettleOutput{Record: rec}, nil
}

// History lists the player's recent fights
func (p *Pit) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	out, err := p.records.ListByUsername(ctx, fightrecord.ListByUsernameInput{
		Username: p.username,
		Limit:    limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list fights")
	}
	return &HistoryOutput{Records: out.Records}, nil
}
