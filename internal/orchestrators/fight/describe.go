package fight

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Describe renders a fight event as one line of commentary. It returns
// false for events the fight package does not publish.
func Describe(e events.Event) (string, bool) {
	switch ev := e.(type) {
	case *RoundStartedEvent:
		return fmt.Sprintf("--- Round %d ---", ev.Round), true

	case *AttackEvent:
		switch ev.Outcome {
		case OutcomeRefused:
			return fmt.Sprintf("%s lacks the energy for %s (%d left).", ev.Attacker, ev.Weapon, ev.AttackerEnergy), true
		case OutcomeMissed:
			return fmt.Sprintf("%s fires %s and misses.", ev.Attacker, ev.Weapon), true
		case OutcomeDodged:
			return fmt.Sprintf("%s dodges %s's %s.", ev.Defender, ev.Attacker, ev.Weapon), true
		default:
			return fmt.Sprintf("%s hits %s with %s for %d. %s has %d health left.",
				ev.Attacker, ev.Defender, ev.Weapon, ev.Damage, ev.Defender, ev.DefenderHealth), true
		}

	case *TurnSkippedEvent:
		return fmt.Sprintf("%s is out of energy and skips the turn.", ev.Robot), true

	case *EndedEvent:
		switch ev.Result.Winner {
		case WinnerDraw:
			return fmt.Sprintf("Both robots are out of energy after %d rounds. It's a draw.", ev.Result.Rounds), true
		case WinnerPlayer:
			return fmt.Sprintf("%s wins in %d rounds! %d BTC earned.", ev.Player, ev.Result.Rounds, ev.Result.Payout), true
		default:
			return fmt.Sprintf("%s wins in %d rounds. Better luck next time.", ev.Opponent, ev.Result.Rounds), true
		}
	}
	return "", false
}
