// Package worker mirrors ledger changes to the configured spreadsheet. It is
// driven by AMQP events, with a periodic sweep as backup for lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mitra9917/FinDash/internal/amqp"
	"github.com/mitra9917/FinDash/internal/core"
	"github.com/mitra9917/FinDash/internal/export"
	"github.com/mitra9917/FinDash/internal/storage"
)

// ExportWorker handles mirroring of transactions and budgets to the sheet.
// Exported transaction IDs are tracked in memory; each sheet row carries the
// transaction ID, so duplicates after a restart stay identifiable.
type ExportWorker struct {
	store     storage.Store
	appender  export.TransactionAppender
	budgets   export.BudgetWriter
	batchSize int

	mu       sync.Mutex
	exported map[string]struct{}
}

func NewExportWorker(store storage.Store, appender export.TransactionAppender, budgets export.BudgetWriter, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     store,
		appender:  appender,
		budgets:   budgets,
		batchSize: batchSize,
		exported:  make(map[string]struct{}),
	}
}

// HandleLedgerEvent processes a single ledger change event from AMQP.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"kind", msg.Kind,
		"id", msg.ID,
		"category", msg.Category)

	switch msg.Kind {
	case amqp.KindTransactionRecorded:
		return w.exportTransaction(ctx, msg.ID)
	case amqp.KindBudgetSet:
		return w.exportBudget(ctx, msg.Category)
	default:
		// Unknown kinds are dropped, requeueing would loop forever
		slog.WarnContext(ctx, "Dropping ledger event of unknown kind", "kind", msg.Kind)
		return nil
	}
}

func (w *ExportWorker) exportTransaction(ctx context.Context, id string) error {
	if w.alreadyExported(id) {
		slog.DebugContext(ctx, "Transaction already exported, skipping", "transaction_id", id)
		return nil
	}

	for _, tx := range w.store.LoadTransactions(ctx) {
		if tx.ID != id {
			continue
		}
		ref, err := w.appender.AppendTransaction(ctx, tx)
		if err != nil {
			return fmt.Errorf("append to sheet: %w", err)
		}
		w.markExported(id)
		slog.InfoContext(ctx, "Transaction exported",
			"transaction_id", id,
			"sheet_ref", ref,
			"amount_cents", tx.Amount.Cents)
		return nil
	}

	// The event may outlive its transaction if storage was reset. Drop it.
	slog.WarnContext(ctx, "Transaction from event not found in ledger", "transaction_id", id)
	return nil
}

func (w *ExportWorker) exportBudget(ctx context.Context, category string) error {
	if w.budgets == nil {
		slog.WarnContext(ctx, "No budget writer configured, skipping budget export", "category", category)
		return nil
	}

	budgets := w.store.LoadBudgets(ctx)
	limit, ok := budgets[category]
	if !ok {
		slog.WarnContext(ctx, "Budget from event not found", "category", category)
		return nil
	}

	if err := w.budgets.WriteBudget(ctx, core.BudgetEntry{Category: category, Limit: limit}); err != nil {
		return fmt.Errorf("write budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget exported", "category", category, "limit_cents", limit.Cents)
	return nil
}

// ProcessPending exports transactions that have no export record yet, up to
// the batch size. This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending := 0
	for _, tx := range w.store.LoadTransactions(ctx) {
		if w.alreadyExported(tx.ID) {
			continue
		}
		if pending >= w.batchSize {
			break
		}
		pending++

		ref, err := w.appender.AppendTransaction(ctx, tx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to export pending transaction",
				"transaction_id", tx.ID, "error", err)
			continue
		}
		w.markExported(tx.ID)
		slog.InfoContext(ctx, "Pending transaction exported",
			"transaction_id", tx.ID, "sheet_ref", ref)
	}

	return nil
}

// StartupCheck marks the current ledger as exported without writing rows.
// A fresh worker must not re-append history that an earlier run already
// mirrored; only changes from this point on are exported.
func (w *ExportWorker) StartupCheck(ctx context.Context) {
	txns := w.store.LoadTransactions(ctx)

	w.mu.Lock()
	for _, tx := range txns {
		w.exported[tx.ID] = struct{}{}
	}
	count := len(w.exported)
	w.mu.Unlock()

	slog.InfoContext(ctx, "Startup check completed", "known_transactions", count)
}

func (w *ExportWorker) alreadyExported(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.exported[id]
	return ok
}

func (w *ExportWorker) markExported(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.exported[id] = struct{}{}
}
