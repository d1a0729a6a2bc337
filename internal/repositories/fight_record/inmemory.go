package fightrecord

import (
	"context"
	"sync"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// InMemoryRepository keeps fight records in a map of slices, newest first
type InMemoryRepository struct {
	mu         sync.RWMutex
	records    map[string][]*Record
	maxPerUser int
}

// NewInMemoryRepository creates an empty repository. A cap of zero or
// less means DefaultMaxPerUser.
func NewInMemoryRepository(maxPerUser int) *InMemoryRepository {
	if maxPerUser <= 0 {
		maxPerUser = DefaultMaxPerUser
	}
	return &InMemoryRepository{
		records:    make(map[string][]*Record),
		maxPerUser: maxPerUser,
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Append stores the record as the newest one
func (r *InMemoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *input.Record
	rec.Log = append([]string(nil), input.Record.Log...)

	list := append([]*Record{&rec}, r.records[rec.Username]...)
	if len(list) > r.maxPerUser {
		list = list[:r.maxPerUser]
	}
	r.records[rec.Username] = list

	return &AppendOutput{Record: input.Record}, nil
}

// ListByUsername returns up to Limit records, newest first
func (r *InMemoryRepository) ListByUsername(
	_ context.Context, input ListByUsernameInput,
) (*ListByUsernameOutput, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.records[input.Username]
	if input.Limit > 0 && len(list) > input.Limit {
		list = list[:input.Limit]
	}

	records := make([]*Record, 0, len(list))
	for _, rec := range list {
		c := *rec
		records = append(records, &c)
	}
	return &ListByUsernameOutput{Records: records}, nil
}
