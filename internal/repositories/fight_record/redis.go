package fightrecord

import (
	"context"

	"github.com/bytedance/sonic"
	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	redisclient "github.com/KirkDiggler/cyber-pit/internal/redis"
)

const (
	// Key pattern: fight_record:{username}, a list with the newest first
	recordKeyPrefix = "fight_record:"

	errRecordNil     = "record cannot be nil"
	errUsernameEmpty = "username cannot be empty"
	errFightIDEmpty  = "fight ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	MaxPerUser int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.MaxPerUser < 0 {
		return errors.InvalidArgument("max per user cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client     redisclient.Client
	maxPerUser int
}

// NewRedisRepository creates a new Redis repository for fight records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxPerUser := cfg.MaxPerUser
	if maxPerUser == 0 {
		maxPerUser = DefaultMaxPerUser
	}

	return &redisRepository{
		client:     cfg.Client,
		maxPerUser: maxPerUser,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the record on the head of the player's list and trims the tail
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	data, err := sonic.Marshal(input.Record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal fight record")
	}

	key := r.buildKey(input.Record.Username)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(r.maxPerUser-1))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store fight record in Redis")
	}

	return &AppendOutput{Record: input.Record}, nil
}

// ListByUsername reads the head of the player's list
func (r *redisRepository) ListByUsername(
	ctx context.Context, input ListByUsernameInput,
) (*ListByUsernameOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	items, err := r.client.LRange(ctx, r.buildKey(input.Username), 0, stop).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list fight records from Redis")
	}

	records := make([]*Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := sonic.UnmarshalString(item, &rec); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal fight record")
		}
		records = append(records, &rec)
	}

	return &ListByUsernameOutput{Records: records}, nil
}

func (r *redisRepository) buildKey(username string) string {
	return recordKeyPrefix + username
}

func validateRecord(rec *Record) error {
	if rec == nil {
		return errors.InvalidArgument(errRecordNil)
	}

	vb := errors.NewValidationBuilder()
	if rec.Username == "" {
		vb.Field("Username", errUsernameEmpty)
	}
	if rec.FightID == "" {
		vb.Field("FightID", errFightIDEmpty)
	}
	return vb.Build()
}
