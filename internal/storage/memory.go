package storage

import (
	"context"
	"sync"

	"github.com/mitra9917/FinDash/internal/core"
)

// MemoryStore is an in-process Store used by tests and the memory backend.
// Values are copied on the way in and out so callers cannot alias its state.
type MemoryStore struct {
	mu      sync.Mutex
	txns    []core.Transaction
	budgets map[string]core.Money
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{budgets: map[string]core.Money{}}
}

func (s *MemoryStore) LoadTransactions(_ context.Context) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

func (s *MemoryStore) SaveTransactions(_ context.Context, txns []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = make([]core.Transaction, len(txns))
	copy(s.txns, txns)
	return nil
}

func (s *MemoryStore) LoadBudgets(_ context.Context) map[string]core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]core.Money, len(s.budgets))
	for category, limit := range s.budgets {
		out[category] = limit
	}
	return out
}

func (s *MemoryStore) SaveBudgets(_ context.Context, budgets map[string]core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = make(map[string]core.Money, len(budgets))
	for category, limit := range budgets {
		s.budgets[category] = limit
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
