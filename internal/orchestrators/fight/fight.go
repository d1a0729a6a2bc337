package fight

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
)

// Config holds the dependencies of a single fight
type Config struct {
	ID        string
	Player    *robot.Instance
	Opponent  *robot.Instance
	Operator  Operator
	EventBus  events.EventBus
	Evaluator *Evaluator
	Roller    dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", c.ID, vb)
	if c.Player == nil {
		vb.RequiredField("Player")
	}
	if c.Opponent == nil {
		vb.RequiredField("Opponent")
	}
	if c.Player != nil && c.Player == c.Opponent {
		vb.Field("Opponent", "must not be the player's robot")
	}
	if c.Operator == nil {
		vb.RequiredField("Operator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// Fight is one duel. It is not safe for concurrent use.
type Fight struct {
	id        string
	player    *robot.Instance
	opponent  *robot.Instance
	operator  Operator
	bus       events.EventBus
	evaluator *Evaluator
	rounds    *roundRunner
	logger    zerolog.Logger

	state  State
	round  int
	result *Result
}

// New creates a fight in the proposed state
func New(cfg *Config) (*Fight, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid fight config")
	}

	return &Fight{
		id:        cfg.ID,
		player:    cfg.Player,
		opponent:  cfg.Opponent,
		operator:  cfg.Operator,
		bus:       cfg.EventBus,
		evaluator: cfg.Evaluator,
		rounds:    newRoundRunner(cfg.Roller),
		logger:    logging.For("fight").With().Str("fight_id", cfg.ID).Logger(),
		state:     StateProposed,
	}, nil
}

// ID returns the fight ID
func (f *Fight) ID() string {
	return f.id
}

// State returns the current lifecycle state
func (f *Fight) State() State {
	return f.state
}

// Round returns the number of rounds started so far
func (f *Fight) Round() int {
	return f.round
}

// Player returns the player's robot
func (f *Fight) Player() *robot.Instance {
	return f.player
}

// Opponent returns the opponent's robot
func (f *Fight) Opponent() *robot.Instance {
	return f.opponent
}

// Result returns the outcome once the fight has finished, nil before
func (f *Fight) Result() *Result {
	return f.result
}

// Accepted asks the operator whether to fight. Fleeing declines the
// fight for good.
func (f *Fight) Accepted(ctx context.Context) (bool, error) {
	if f.state != StateProposed {
		return false, errors.FailedPreconditionf("fight %s is %s, not %s", f.id, f.state, StateProposed)
	}

	question := fmt.Sprintf("%s (%s) steps into the pit. %s or %s?",
		f.opponent.Name(), f.opponent.Template().Name, TokenFight, TokenFlee)
	for {
		line, err := f.operator.Prompt(ctx, question)
		if err != nil {
			return false, errors.Wrap(err, "failed to read answer to challenge")
		}

		switch normalize(line) {
		case TokenFight:
			f.state = StateAccepted
			f.logger.Debug().Str("opponent", f.opponent.Name()).Msg("fight accepted")
			return true, nil
		case TokenFlee:
			f.state = StateDeclined
			f.logger.Debug().Str("opponent", f.opponent.Name()).Msg("fight declined")
			return false, nil
		case TokenStats:
			f.operator.Say(f.stats())
		default:
			f.operator.Say(fmt.Sprintf("Type %q or %q.", TokenFight, TokenFlee))
		}
	}
}

// RunToCompletion plays rounds until a robot is destroyed or both are
// exhausted, then evaluates the result. If the operator goes away or ctx
// is cancelled the fight stays in progress and nothing is paid.
func (f *Fight) RunToCompletion(ctx context.Context) (*Result, error) {
	if f.state != StateAccepted {
		return nil, errors.FailedPreconditionf("fight %s is %s, not %s", f.id, f.state, StateAccepted)
	}
	f.state = StateInProgress

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "fight abandoned")
		}

		f.round++
		if err := f.publish(ctx, EventRoundStarted, newRoundStarted(f)); err != nil {
			return nil, err
		}
		if err := f.rounds.run(ctx, f); err != nil {
			return nil, err
		}

		switch {
		case f.player.IsDestroyed() || f.opponent.IsDestroyed():
			return f.finish(ctx, false)
		case f.player.IsExhausted() && f.opponent.IsExhausted():
			return f.finish(ctx, true)
		}
	}
}

func (f *Fight) finish(ctx context.Context, draw bool) (*Result, error) {
	result, err := f.evaluator.Evaluate(ctx, draw, f.player, f.opponent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate fight")
	}
	result.Rounds = f.round

	f.state = result.Winner.state()
	f.result = result

	f.logger.Info().
		Str("winner", string(result.Winner)).
		Int("payout", result.Payout).
		Int("rounds", result.Rounds).
		Msg("fight finished")

	if err := f.publish(ctx, EventEnded, newEnded(f, *result)); err != nil {
		return nil, err
	}
	return result, nil
}

// sides returns the acting robot first
func (f *Fight) sides(side Side) (attacker, defender *robot.Instance) {
	if side == SidePlayer {
		return f.player, f.opponent
	}
	return f.opponent, f.player
}

// attack resolves one weapon use by side and publishes what happened
func (f *Fight) attack(ctx context.Context, side Side, weapon string) (Outcome, error) {
	attacker, defender := f.sides(side)

	damage, err := attacker.UseWeapon(weapon)
	if err != nil {
		return "", errors.Wrapf(err, "failed to use %s", weapon)
	}

	var outcome Outcome
	switch damage {
	case robot.InsufficientEnergy:
		outcome = OutcomeRefused
		damage = 0
	case robot.Missed:
		outcome = OutcomeMissed
	default:
		landed, err := defender.TakeDamage(damage)
		if err != nil {
			return "", errors.Wrapf(err, "failed to resolve %s hit", weapon)
		}
		outcome = OutcomeHit
		if !landed {
			outcome = OutcomeDodged
			damage = 0
		}
	}

	event := &AttackEvent{
		GameEvent:      events.NewGameEvent(EventAttack, attacker, defender),
		FightID:        f.id,
		Round:          f.round,
		Side:           side,
		Attacker:       attacker.Name(),
		Defender:       defender.Name(),
		Weapon:         weapon,
		Outcome:        outcome,
		Damage:         damage,
		AttackerEnergy: attacker.Energy(),
		DefenderHealth: defender.Health(),
	}
	if err := f.publish(ctx, EventAttack, event); err != nil {
		return "", err
	}
	return outcome, nil
}

func (f *Fight) publish(ctx context.Context, eventType string, event events.Event) error {
	if err := f.bus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}

// stats describes both robots for the operator
func (f *Fight) stats() string {
	var b strings.Builder
	for _, r := range []*robot.Instance{f.player, f.opponent} {
		fmt.Fprintf(&b, "%s [%s] health %d/%d, energy %d/%d\n",
			r.Name(), r.Template().Name,
			r.Health(), r.Template().Health,
			r.Energy(), r.Template().Energy)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// loadout describes the player's weapons and energy for the weapon prompt
func (f *Fight) loadout() string {
	weapons := f.player.Template().Weapons
	parts := make([]string, 0, len(weapons))
	for _, w := range weapons {
		cost, err := f.player.WeaponCost(w)
		if err != nil {
			parts = append(parts, w)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", w, cost))
	}
	return fmt.Sprintf("Round %d, energy %d. Pick a weapon: %s",
		f.round, f.player.Energy(), strings.Join(parts, ", "))
}

func normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}
