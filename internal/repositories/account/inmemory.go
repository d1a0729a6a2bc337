package account

import (
	"context"
	"sync"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
)

// InMemoryRepository keeps accounts in a map. It backs sessions run
// without a Redis address.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
	clock    clock.Clock
}

// NewInMemoryRepository creates an empty in-memory account repository
func NewInMemoryRepository(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		accounts: make(map[string]Account),
		clock:    c,
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new account unless the username is taken
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateAccount(input.Account); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc := *input.Account
	if _, exists := r.accounts[acc.Username]; exists {
		return nil, errors.AlreadyExistsf("account %s already exists", acc.Username)
	}
	now := r.clock.Now()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	acc.PasswordHash = append([]byte(nil), acc.PasswordHash...)
	r.accounts[acc.Username] = acc

	out := acc
	return &CreateOutput{Account: &out}, nil
}

// Get retrieves an account by username
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[input.Username]
	if !ok {
		return nil, errors.NotFoundf("account %s not found", input.Username)
	}
	return &GetOutput{Account: &acc}, nil
}

// Update replaces an existing account
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateAccount(input.Account); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc := *input.Account
	if _, ok := r.accounts[acc.Username]; !ok {
		return nil, errors.NotFoundf("account %s not found", acc.Username)
	}
	acc.UpdatedAt = r.clock.Now()
	r.accounts[acc.Username] = acc

	out := acc
	return &UpdateOutput{Account: &out}, nil
}

// AdjustBalance adds Delta to the balance
func (r *InMemoryRepository) AdjustBalance(_ context.Context, input AdjustBalanceInput) (*AdjustBalanceOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[input.Username]
	if !ok {
		return nil, errors.NotFoundf("account %s not found", input.Username)
	}
	if acc.Balance+input.Delta < 0 {
		return nil, errors.FailedPreconditionf("insufficient funds: balance is %d, need %d",
			acc.Balance, -input.Delta)
	}
	acc.Balance += input.Delta
	acc.UpdatedAt = r.clock.Now()
	r.accounts[input.Username] = acc

	return &AdjustBalanceOutput{Balance: acc.Balance}, nil
}
