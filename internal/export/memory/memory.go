// Package memory implements the export ports in memory. Used by tests and
// by local runs without a configured spreadsheet.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mitra9917/FinDash/internal/core"
)

type Sheet struct {
	mu      sync.Mutex
	rows    []core.Transaction
	budgets []core.BudgetEntry
}

func New() *Sheet {
	return &Sheet{}
}

// AppendTransaction stores the transaction and returns a synthetic row
// reference.
func (s *Sheet) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, tx)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// WriteBudget stores the budget entry.
func (s *Sheet) WriteBudget(_ context.Context, entry core.BudgetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, entry)
	return nil
}

// Rows returns a copy of the appended transactions.
func (s *Sheet) Rows() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.rows...)
}

// Budgets returns a copy of the written budget entries.
func (s *Sheet) Budgets() []core.BudgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BudgetEntry(nil), s.budgets...)
}
