// Package export defines the outbound ports for mirroring the ledger to an
// external spreadsheet.
package export

import (
	"context"

	"github.com/mitra9917/FinDash/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionAppender mirrors one ledger transaction as a sheet row.
	TransactionAppender interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// BudgetWriter mirrors the full budget map.
	BudgetWriter interface {
		WriteBudget(ctx context.Context, entry core.BudgetEntry) error
	}
)
