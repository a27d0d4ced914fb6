package memory

import (
	"context"
	"fmt"
	"sync"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type IdempotencyRepository struct {
	mu      sync.RWMutex
	records map[string]domain.IdempotencyKey
}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{records: make(map[string]domain.IdempotencyKey)}
}

func recordKey(key, customerID string) string {
	return customerID + ":" + key
}

func (r *IdempotencyRepository) Find(_ context.Context, key, customerID string) (*domain.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[recordKey(key, customerID)]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("idempotency key %s not found", key))
	}
	return &record, nil
}

func (r *IdempotencyRepository) Save(_ context.Context, record *domain.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := recordKey(record.Key, record.CustomerID)
	if _, exists := r.records[k]; exists {
		return errors.NewConflictError(fmt.Sprintf("idempotency key %s already recorded", record.Key))
	}
	r.records[k] = *record
	return nil
}
