// Package account provides the interface for player account persistence
package account

//go:generate mockgen -destination=mock/mock_repository.go -package=accountmock github.com/KirkDiggler/cyber-pit/internal/repositories/account Repository

import (
	"context"
	"time"
)

// Account is a registered player and the robot they own
type Account struct {
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"password_hash"`
	Balance      int       `json:"balance"`
	RobotID      string    `json:"robot_id,omitempty"`
	RobotName    string    `json:"robot_name,omitempty"`
	RobotBuild   string    `json:"robot_build,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRobot reports whether a robot has been bought
func (a *Account) HasRobot() bool {
	return a.RobotBuild != ""
}

// Repository defines the interface for account persistence
type Repository interface {
	// Create stores a new account
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the username is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an account by username
	// Returns errors.InvalidArgument for an empty username
	// Returns errors.NotFound if the account doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing account
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the account doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// AdjustBalance adds Delta (which may be negative) to the balance
	// Returns errors.NotFound if the account doesn't exist
	// Returns errors.FailedPrecondition if the balance would go negative
	// Returns errors.Internal for storage failures
	AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*AdjustBalanceOutput, error)
}

// CreateInput contains parameters for creating an account
type CreateInput struct {
	Account *Account
}

// CreateOutput contains the result of creating an account
type CreateOutput struct {
	Account *Account
}

// GetInput contains parameters for retrieving an account
type GetInput struct {
	Username string
}

// GetOutput contains the result of retrieving an account
type GetOutput struct {
	Account *Account
}

// UpdateInput contains parameters for updating an account
type UpdateInput struct {
	Account *Account
}

// UpdateOutput contains the result of updating an account
type UpdateOutput struct {
	Account *Account
}

// AdjustBalanceInput contains parameters for changing a balance
type AdjustBalanceInput struct {
	Username string
	Delta    int
}

// AdjustBalanceOutput contains the balance after the change
type AdjustBalanceOutput struct {
	Balance int
}
