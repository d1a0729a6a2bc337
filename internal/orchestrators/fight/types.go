// Package fight runs a duel between the player's robot and a generated
// opponent, from the challenge prompt to the payout.
package fight

//go:generate mockgen -destination=mock/mock_operator.go -package=fightmock github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight Operator,Wallet

import "context"

// State is a step of the fight lifecycle
type State string

// Fight states
const (
	StateProposed    State = "proposed"
	StateDeclined    State = "declined"
	StateAccepted    State = "accepted"
	StateInProgress  State = "in_progress"
	StatePlayerWon   State = "player_won"
	StateOpponentWon State = "opponent_won"
	StateDraw        State = "draw"
)

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	switch s {
	case StateDeclined, StatePlayerWon, StateOpponentWon, StateDraw:
		return true
	}
	return false
}

// Winner names the side a finished fight went to
type Winner string

// Winners
const (
	WinnerPlayer   Winner = "player"
	WinnerOpponent Winner = "opponent"
	WinnerDraw     Winner = "draw"
)

// state maps a winner onto the terminal state it produces
func (w Winner) state() State {
	switch w {
	case WinnerPlayer:
		return StatePlayerWon
	case WinnerOpponent:
		return StateOpponentWon
	}
	return StateDraw
}

// Side identifies who acted in a turn
type Side string

// Sides
const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Operator tokens, matched after lower-casing and trimming
const (
	TokenFight = "fight"
	TokenFlee  = "flee"
	TokenStats = "stats"
)

// Result is what a finished fight produced
type Result struct {
	Winner Winner
	Payout int
	Rounds int
}

// Operator is the human at the console
type Operator interface {
	// Prompt shows text and returns the next input line
	Prompt(ctx context.Context, text string) (string, error)
	// Say shows text without waiting for input
	Say(text string)
}

// Wallet receives the payout of a won fight
type Wallet interface {
	Credit(ctx context.Context, amount int) error
}
