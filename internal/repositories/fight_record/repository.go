// Package fightrecord provides persistence for finished fights
package fightrecord

//go:generate mockgen -destination=mock/mock_repository.go -package=fightrecordmock github.com/KirkDiggler/cyber-pit/internal/repositories/fight_record Repository

import (
	"context"
	"time"
)

// DefaultMaxPerUser is how many fights are kept per player
const DefaultMaxPerUser = 20

// Record is one finished fight as the player saw it
type Record struct {
	FightID       string    `json:"fight_id"`
	Username      string    `json:"username"`
	PlayerRobot   string    `json:"player_robot"`
	PlayerBuild   string    `json:"player_build"`
	OpponentName  string    `json:"opponent_name"`
	OpponentBuild string    `json:"opponent_build"`
	Winner        string    `json:"winner"`
	Payout        int       `json:"payout"`
	Rounds        int       `json:"rounds"`
	Log           []string  `json:"log,omitempty"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Repository defines the interface for fight history
type Repository interface {
	// Append stores a record as the player's most recent fight, dropping
	// the oldest beyond the per-player cap
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// ListByUsername returns a player's fights, newest first
	// Returns errors.InvalidArgument for an empty username
	// Returns errors.Internal for storage failures
	ListByUsername(ctx context.Context, input ListByUsernameInput) (*ListByUsernameOutput, error)
}

// AppendInput contains the record to store
type AppendInput struct {
	Record *Record
}

// AppendOutput contains the stored record
type AppendOutput struct {
	Record *Record
}

// ListByUsernameInput selects a player's records. A Limit of zero or less
// means every kept record.
type ListByUsernameInput struct {
	Username string
	Limit    int
}

// ListByUsernameOutput contains the records, newest first
type ListByUsernameOutput struct {
	Records []*Record
}
