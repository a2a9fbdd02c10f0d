// Package storage persists the ledger as two opaque JSON blobs behind a
// string-keyed store: the transaction array and the budget map. The engine in
// internal/core never sees the storage medium; it works on the decoded
// snapshots a Store hands back.
package storage

import (
	"context"

	"github.com/mitra9917/FinDash/internal/core"
)

// Logical keys for the two persisted blobs.
const (
	KeyTransactions = "findash_transactions_v1"
	KeyBudgets      = "findash_budgets_v1"
)

// Store is the persistence collaborator. Loads tolerate missing or malformed
// data by returning the empty default; a corrupt blob must never take the
// application down. Saves replace the whole blob and surface write failures.
type Store interface {
	LoadTransactions(ctx context.Context) []core.Transaction
	SaveTransactions(ctx context.Context, txns []core.Transaction) error

	LoadBudgets(ctx context.Context) map[string]core.Money
	SaveBudgets(ctx context.Context, budgets map[string]core.Money) error

	Close() error
}

// budgetBlob is the persisted shape of the budget map: category to limit in
// cents, an opaque key-to-number object.
type budgetBlob map[string]int64

func budgetsToBlob(budgets map[string]core.Money) budgetBlob {
	blob := make(budgetBlob, len(budgets))
	for category, limit := range budgets {
		blob[category] = limit.Cents
	}
	return blob
}

func budgetsFromBlob(blob budgetBlob) map[string]core.Money {
	budgets := make(map[string]core.Money, len(blob))
	for category, cents := range blob {
		budgets[category] = core.Money{Cents: cents}
	}
	return budgets
}
