package fight

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the fight's event bus
const (
	EventRoundStarted = "fight.round_started"
	EventAttack       = "fight.attack"
	EventTurnSkipped  = "fight.turn_skipped"
	EventEnded        = "fight.ended"
)

// Outcome of a single attack
type Outcome string

// Attack outcomes
const (
	OutcomeRefused Outcome = "refused"
	OutcomeMissed  Outcome = "missed"
	OutcomeDodged  Outcome = "dodged"
	OutcomeHit     Outcome = "hit"
)

// RoundStartedEvent is published before the player's turn of each round
type RoundStartedEvent struct {
	*events.GameEvent
	FightID string
	Round   int
}

// AttackEvent is published for every resolved or refused attack
type AttackEvent struct {
	*events.GameEvent
	FightID        string
	Round          int
	Side           Side
	Attacker       string
	Defender       string
	Weapon         string
	Outcome        Outcome
	Damage         int
	AttackerEnergy int
	DefenderHealth int
}

// TurnSkippedEvent is published when an exhausted robot loses its turn
type TurnSkippedEvent struct {
	*events.GameEvent
	FightID string
	Round   int
	Side    Side
	Robot   string
	Reason  string
}

// EndedEvent is published once the fight reaches a terminal state
type EndedEvent struct {
	*events.GameEvent
	FightID        string
	Result         Result
	Player         string
	Opponent       string
	PlayerHealth   int
	OpponentHealth int
}

func newRoundStarted(f *Fight) *RoundStartedEvent {
	return &RoundStartedEvent{
		GameEvent: events.NewGameEvent(EventRoundStarted, f.player, f.opponent),
		FightID:   f.id,
		Round:     f.round,
	}
}

func newTurnSkipped(f *Fight, side Side, who core.Entity, name, reason string) *TurnSkippedEvent {
	return &TurnSkippedEvent{
		GameEvent: events.NewGameEvent(EventTurnSkipped, who, nil),
		FightID:   f.id,
		Round:     f.round,
		Side:      side,
		Robot:     name,
		Reason:    reason,
	}
}

func newEnded(f *Fight, result Result) *EndedEvent {
	return &EndedEvent{
		GameEvent:      events.NewGameEvent(EventEnded, f.player, f.opponent),
		FightID:        f.id,
		Result:         result,
		Player:         f.player.Name(),
		Opponent:       f.opponent.Name(),
		PlayerHealth:   f.player.Health(),
		OpponentHealth: f.opponent.Health(),
	}
}
