package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mitra9917/FinDash/internal/core"
	"github.com/mitra9917/FinDash/internal/storage"
)

type fakePublisher struct {
	recorded []string
	budgets  []string
	err      error
	closed   bool
}

func (f *fakePublisher) PublishTransactionRecorded(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, id)
	return nil
}

func (f *fakePublisher) PublishBudgetSet(_ context.Context, category string) error {
	if f.err != nil {
		return f.err
	}
	f.budgets = append(f.budgets, category)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func validInput() core.TransactionInput {
	return core.TransactionInput{
		Amount:      "12.50",
		Type:        "Expense",
		Category:    "Food",
		Date:        "2026-08-15",
		PaymentMode: "Card",
		Notes:       "lunch",
	}
}

func TestLedgerService_RecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and publishes", func(t *testing.T) {
		store := storage.NewMemoryStore()
		pub := &fakePublisher{}
		svc := NewLedgerService(store, pub)

		tx, err := svc.RecordTransaction(ctx, validInput())
		if err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
		if tx.ID == "" {
			t.Error("recorded transaction should have an ID")
		}
		if tx.Amount.Cents != 1250 {
			t.Errorf("Amount.Cents = %d, want 1250", tx.Amount.Cents)
		}

		txns := store.LoadTransactions(ctx)
		if len(txns) != 1 || txns[0].ID != tx.ID {
			t.Errorf("stored ledger = %+v, want single transaction %s", txns, tx.ID)
		}

		if len(pub.recorded) != 1 || pub.recorded[0] != tx.ID {
			t.Errorf("published IDs = %v, want [%s]", pub.recorded, tx.ID)
		}
	})

	t.Run("rejects invalid input without writing", func(t *testing.T) {
		store := storage.NewMemoryStore()
		pub := &fakePublisher{}
		svc := NewLedgerService(store, pub)

		in := validInput()
		in.Amount = "0"
		_, err := svc.RecordTransaction(ctx, in)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !core.IsValidationError(err) {
			t.Errorf("error %v should be a validation error", err)
		}

		txns := store.LoadTransactions(ctx)
		if len(txns) != 0 {
			t.Errorf("ledger should stay empty, got %d transactions", len(txns))
		}
		if len(pub.recorded) != 0 {
			t.Error("no event should be published for rejected input")
		}
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		store := storage.NewMemoryStore()
		pub := &fakePublisher{err: errors.New("broker down")}
		svc := NewLedgerService(store, pub)

		tx, err := svc.RecordTransaction(ctx, validInput())
		if err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}

		txns := store.LoadTransactions(ctx)
		if len(txns) != 1 || txns[0].ID != tx.ID {
			t.Error("transaction should be persisted despite publish failure")
		}
	})

	t.Run("nil publisher is tolerated", func(t *testing.T) {
		svc := NewLedgerService(storage.NewMemoryStore(), nil)
		if _, err := svc.RecordTransaction(ctx, validInput()); err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
	})
}

func TestLedgerService_SetBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts limit and publishes", func(t *testing.T) {
		store := storage.NewMemoryStore()
		pub := &fakePublisher{}
		svc := NewLedgerService(store, pub)

		entry, err := svc.SetBudget(ctx, core.BudgetInput{Category: "  Food  ", Amount: "200"})
		if err != nil {
			t.Fatalf("SetBudget: %v", err)
		}
		if entry.Category != "Food" {
			t.Errorf("Category = %q, want Food", entry.Category)
		}

		// Overwrite the same category
		if _, err := svc.SetBudget(ctx, core.BudgetInput{Category: "Food", Amount: "150.25"}); err != nil {
			t.Fatalf("SetBudget overwrite: %v", err)
		}

		budgets := store.LoadBudgets(ctx)
		if len(budgets) != 1 {
			t.Fatalf("budgets = %v, want single entry", budgets)
		}
		if budgets["Food"].Cents != 15025 {
			t.Errorf("budgets[Food] = %d cents, want 15025", budgets["Food"].Cents)
		}

		if len(pub.budgets) != 2 {
			t.Errorf("published %d budget events, want 2", len(pub.budgets))
		}
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		svc := NewLedgerService(storage.NewMemoryStore(), &fakePublisher{})
		_, err := svc.SetBudget(ctx, core.BudgetInput{Category: "Food", Amount: "-5"})
		if !core.IsValidationError(err) {
			t.Errorf("error = %v, want validation error", err)
		}
	})
}

func TestLedgerService_ViewAt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewLedgerService(store, nil)

	inputs := []core.TransactionInput{
		{Amount: "1000", Type: "Income", Category: "Salary", Date: "2026-08-01", PaymentMode: "UPI"},
		{Amount: "120", Type: "Expense", Category: "Food", Date: "2026-08-10", PaymentMode: "Card"},
		{Amount: "80", Type: "Expense", Category: "Travel", Date: "2026-07-20", PaymentMode: "Cash"},
	}
	for _, in := range inputs {
		if _, err := svc.RecordTransaction(ctx, in); err != nil {
			t.Fatalf("seed transaction: %v", err)
		}
	}
	if _, err := svc.SetBudget(ctx, core.BudgetInput{Category: "Food", Amount: "100"}); err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	view := svc.ViewAt(ctx, core.FilterCriteria{Period: core.PeriodMonthly, Page: 1}, now)

	if len(view.Page.Rows) != 2 {
		t.Fatalf("monthly view rows = %d, want 2", len(view.Page.Rows))
	}
	if view.Summary.Income.Cents != 100000 {
		t.Errorf("Summary.Income = %d, want 100000", view.Summary.Income.Cents)
	}
	if view.Summary.Expense.Cents != 12000 {
		t.Errorf("Summary.Expense = %d, want 12000", view.Summary.Expense.Cents)
	}

	if len(view.Budgets) != 1 || view.Budgets[0].Status != core.StatusOver {
		t.Errorf("Budgets = %+v, want Food over limit", view.Budgets)
	}
}

func TestLedgerService_TransactionByID(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewLedgerService(store, nil)

	tx, err := svc.RecordTransaction(ctx, validInput())
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	got, found := svc.TransactionByID(ctx, tx.ID)
	if !found {
		t.Fatalf("TransactionByID(%s) not found", tx.ID)
	}
	if got.Category != "Food" {
		t.Errorf("Category = %q, want Food", got.Category)
	}

	if _, found := svc.TransactionByID(ctx, "missing"); found {
		t.Error("lookup of unknown ID should not be found")
	}
}

func TestLedgerService_Close(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(storage.NewMemoryStore(), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed {
		t.Error("Close should close the publisher")
	}
}
