package conversation

import (
	"context"
	"sort"
	"sync"

	"github.com/jordanlanch/leadpulse/pkg/domain"
)

// Store persists per-lead message history. History returns messages in
// chronological order.
type Store interface {
	Append(ctx context.Context, leadID string, msg domain.Message) error
	History(ctx context.Context, leadID string) ([]domain.Message, error)
	Clear(ctx context.Context, leadID string) error
}

// MemoryStore keeps histories in memory. Used in tests and when no Redis
// URL is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string][]domain.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]domain.Message)}
}

func (s *MemoryStore) Append(ctx context.Context, leadID string, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[leadID] = append(s.messages[leadID], msg)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, leadID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.Message, len(s.messages[leadID]))
	copy(history, s.messages[leadID])
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].At.Before(history[j].At)
	})
	return history, nil
}

func (s *MemoryStore) Clear(ctx context.Context, leadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, leadID)
	return nil
}
