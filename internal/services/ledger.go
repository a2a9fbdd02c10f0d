// Package services orchestrates ledger operations across storage and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitra9917/FinDash/internal/core"
	"github.com/mitra9917/FinDash/internal/storage"
)

// EventPublisher publishes ledger change events. Implemented by amqp.Client.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, id string) error
	PublishBudgetSet(ctx context.Context, category string) error
	Close() error
}

// LedgerService orchestrates ledger writes and view reads. Writes go to
// storage first; event publishing is best-effort and never fails a request
// that already persisted.
type LedgerService struct {
	store  storage.Store
	events EventPublisher
}

func NewLedgerService(store storage.Store, events EventPublisher) *LedgerService {
	return &LedgerService{
		store:  store,
		events: events,
	}
}

// RecordTransaction validates raw input, appends the transaction to the
// ledger, and publishes a change event.
func (s *LedgerService) RecordTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	tx, err := core.ValidateTransaction(in)
	if err != nil {
		return core.Transaction{}, err
	}

	txns := s.store.LoadTransactions(ctx)
	txns = append(txns, tx)
	if err := s.store.SaveTransactions(ctx, txns); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	// Publish async change event (non-blocking)
	if err := s.publishTransactionRecorded(ctx, tx.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", tx.ID, "error", err)
		// Don't fail the request - the transaction is saved locally
	}

	return tx, nil
}

// SetBudget validates raw input and upserts the monthly limit for a category.
func (s *LedgerService) SetBudget(ctx context.Context, in core.BudgetInput) (core.BudgetEntry, error) {
	entry, err := core.ValidateBudgetEntry(in)
	if err != nil {
		return core.BudgetEntry{}, err
	}

	budgets := s.store.LoadBudgets(ctx)
	if budgets == nil {
		budgets = make(map[string]core.Money)
	}
	budgets[entry.Category] = entry.Limit
	if err := s.store.SaveBudgets(ctx, budgets); err != nil {
		return core.BudgetEntry{}, fmt.Errorf("save budgets: %w", err)
	}

	if err := s.publishBudgetSet(ctx, entry.Category); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget event",
			"category", entry.Category, "error", err)
	}

	return entry, nil
}

// View loads the full ledger and computes the derived view for the given
// criteria. Loads substitute empty defaults, so a view is always available.
func (s *LedgerService) View(ctx context.Context, crit core.FilterCriteria) core.View {
	return s.ViewAt(ctx, crit, time.Now())
}

// ViewAt is View with an explicit clock, for deterministic tests.
func (s *LedgerService) ViewAt(ctx context.Context, crit core.FilterCriteria, now time.Time) core.View {
	txns := s.store.LoadTransactions(ctx)
	budgets := s.store.LoadBudgets(ctx)
	return core.ComputeView(txns, budgets, crit, now)
}

// TransactionByID resolves a single transaction from the ledger.
func (s *LedgerService) TransactionByID(ctx context.Context, id string) (core.Transaction, bool) {
	for _, tx := range s.store.LoadTransactions(ctx) {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

func (s *LedgerService) publishTransactionRecorded(ctx context.Context, id string) error {
	if s.events == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping transaction event")
		return nil
	}
	return s.events.PublishTransactionRecorded(ctx, id)
}

func (s *LedgerService) publishBudgetSet(ctx context.Context, category string) error {
	if s.events == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping budget event")
		return nil
	}
	return s.events.PublishBudgetSet(ctx, category)
}

// Close closes both storage and the event publisher
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
