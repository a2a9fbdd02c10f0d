package core

import (
	"fmt"
	"testing"
)

func makeTransactions(n int) []Transaction {
	txns := make([]Transaction, n)
	for i := range txns {
		txns[i] = tx(fmt.Sprintf("t%02d", i), "2024-01-01", "Food", int64(i+1)*100, Expense)
	}
	return txns
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		page       int
		wantPage   int
		wantTotal  int
		wantRows   int
		wantPrev   bool
		wantNext   bool
	}{
		{"empty list is one empty page", 0, 1, 1, 1, 0, false, false},
		{"single partial page", 3, 1, 1, 1, 3, false, false},
		{"exact page boundary", 8, 1, 1, 1, 8, false, false},
		{"second page remainder", 10, 2, 2, 2, 2, true, false},
		{"first of two pages", 10, 1, 1, 2, 8, false, true},
		{"page beyond end clamps down", 10, 7, 2, 2, 2, true, false},
		{"page zero clamps up", 10, 0, 1, 2, 8, false, true},
		{"negative page clamps up", 10, -3, 1, 2, 8, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(makeTransactions(tt.n), tt.page, PageSize)
			if got.Page != tt.wantPage {
				t.Fatalf("page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.TotalPages != tt.wantTotal {
				t.Fatalf("totalPages = %d, want %d", got.TotalPages, tt.wantTotal)
			}
			if len(got.Rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(got.Rows), tt.wantRows)
			}
			if got.HasPrev != tt.wantPrev || got.HasNext != tt.wantNext {
				t.Fatalf("hasPrev/hasNext = %v/%v, want %v/%v",
					got.HasPrev, got.HasNext, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestPaginateTotalPagesProperty(t *testing.T) {
	for n := 0; n <= 40; n++ {
		got := Paginate(makeTransactions(n), 1, PageSize)
		want := (n + PageSize - 1) / PageSize
		if want < 1 {
			want = 1
		}
		if got.TotalPages != want {
			t.Fatalf("n=%d: totalPages = %d, want %d", n, got.TotalPages, want)
		}
		// Requesting far beyond the last page always clamps to it.
		beyond := Paginate(makeTransactions(n), got.TotalPages+5, PageSize)
		if beyond.Page != got.TotalPages {
			t.Fatalf("n=%d: page = %d, want clamp to %d", n, beyond.Page, got.TotalPages)
		}
	}
}

func TestPaginateSliceContents(t *testing.T) {
	txns := makeTransactions(10)
	second := Paginate(txns, 2, PageSize)
	if len(second.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(second.Rows))
	}
	if second.Rows[0].ID != "t08" || second.Rows[1].ID != "t09" {
		t.Fatalf("unexpected rows: %s %s", second.Rows[0].ID, second.Rows[1].ID)
	}
}
