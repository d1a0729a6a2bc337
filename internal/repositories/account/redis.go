package account

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/cyber-pit/internal/redis"
)

const (
	// Key pattern: account:{username}
	accountKeyPrefix = "account:"

	// Optimistic balance updates give up after this many conflicts
	maxTxAttempts = 3

	errAccountNil    = "account cannot be nil"
	errUsernameEmpty = "username cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for accounts
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new account unless the username is taken
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateAccount(input.Account); err != nil {
		return nil, err
	}

	acc := *input.Account
	now := r.clock.Now()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	data, err := sonic.Marshal(&acc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal account")
	}

	created, err := r.client.SetNX(ctx, r.buildKey(acc.Username), data, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store account in Redis")
	}
	if !created {
		return nil, errors.AlreadyExistsf("account %s already exists", acc.Username)
	}

	return &CreateOutput{Account: &acc}, nil
}

// Get retrieves an account by username
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.Username)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("account %s not found", input.Username)
		}
		return nil, errors.Wrap(err, "failed to get account from Redis")
	}

	acc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Account: acc}, nil
}

// Update replaces an existing account
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateAccount(input.Account); err != nil {
		return nil, err
	}

	acc := *input.Account
	acc.UpdatedAt = r.clock.Now()

	data, err := sonic.Marshal(&acc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal account")
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(acc.Username), data, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update account in Redis")
	}
	if !updated {
		return nil, errors.NotFoundf("account %s not found", acc.Username)
	}

	return &UpdateOutput{Account: &acc}, nil
}

// AdjustBalance changes the balance inside a WATCH transaction so a
// concurrent write to the same account is never lost
func (r *redisRepository) AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*AdjustBalanceOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	key := r.buildKey(input.Username)
	var balance int

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("account %s not found", input.Username)
			}
			return errors.Wrap(err, "failed to get account from Redis")
		}

		acc, err := decode(data)
		if err != nil {
			return err
		}
		if acc.Balance+input.Delta < 0 {
			return errors.FailedPreconditionf("insufficient funds: balance is %d, need %d",
				acc.Balance, -input.Delta)
		}
		acc.Balance += input.Delta
		acc.UpdatedAt = r.clock.Now()

		updated, err := sonic.Marshal(acc)
		if err != nil {
			return errors.Wrap(err, "failed to marshal account")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err != nil {
			return err
		}
		balance = acc.Balance
		return nil
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &AdjustBalanceOutput{Balance: balance}, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		var appErr *errors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.Wrap(err, "failed to adjust balance in Redis")
	}

	return nil, errors.Internal(fmt.Sprintf("balance of %s changed concurrently %d times", input.Username, maxTxAttempts))
}

func (r *redisRepository) buildKey(username string) string {
	return accountKeyPrefix + username
}

func decode(data []byte) (*Account, error) {
	var acc Account
	if err := sonic.Unmarshal(data, &acc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal account")
	}
	return &acc, nil
}

func validateAccount(acc *Account) error {
	if acc == nil {
		return errors.InvalidArgument(errAccountNil)
	}
	if acc.Username == "" {
		return errors.InvalidArgument(errUsernameEmpty)
	}
	if acc.Balance < 0 {
		return errors.InvalidArgumentf("balance cannot be negative: %d", acc.Balance)
	}
	return nil
}
