// Package memory provides an in-memory record store for local development
// and tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
)

// Store keeps streak records in memory. Records are copied on the way in and
// out so callers never share state with the store, matching the
// load-modify-store contract of the Postgres repository.
type Store struct {
	mu      sync.RWMutex
	records map[string]*domain.StreakRecord
	events  []domain.OutboxEvent
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[string]*domain.StreakRecord)}
}

// Load implements domain.RecordRepository.
func (s *Store) Load(_ context.Context, ownerID string) (*domain.StreakRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[ownerID]
	if !ok {
		return nil, nil
	}
	return copyRecord(record)
}

// Save implements domain.RecordRepository.
func (s *Store) Save(_ context.Context, record *domain.StreakRecord, events []domain.OutboxEvent) error {
	stored, err := copyRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.OwnerID] = stored
	s.events = append(s.events, events...)
	return nil
}

// Events returns every outbox event recorded so far, in order.
func (s *Store) Events() []domain.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OutboxEvent(nil), s.events...)
}

func copyRecord(record *domain.StreakRecord) (*domain.StreakRecord, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out domain.StreakRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
