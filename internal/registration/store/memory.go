package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"phonereg/internal/registration/models"
	"phonereg/pkg/platform/sentinel"
)

// InMemoryStore keeps registrations in process memory, unique by phone.
type InMemoryStore struct {
	mu      sync.RWMutex
	byPhone map[string]*models.Registration
	order   []*models.Registration
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byPhone: make(map[string]*models.Registration)}
}

// Save stores reg, returning sentinel.ErrAlreadyUsed when the phone is taken.
func (s *InMemoryStore) Save(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byPhone[reg.Phone]; taken {
		return fmt.Errorf("phone %w", sentinel.ErrAlreadyUsed)
	}
	stored := *reg
	s.byPhone[reg.Phone] = &stored
	s.order = append(s.order, &stored)
	return nil
}

// ListNewestFirst returns all registrations ordered by creation time, newest first.
// Registrations with the same timestamp keep reverse insertion order.
func (s *InMemoryStore) ListNewestFirst(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Registration, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		reg := *s.order[i]
		out = append(out, &reg)
	}
	slices.SortStableFunc(out, func(a, b *models.Registration) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

// CountDistinctPhones returns the number of registered phones.
func (s *InMemoryStore) CountDistinctPhones(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPhone), nil
}
