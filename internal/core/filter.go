package core

import (
	"sort"
	"strings"
)

const (
	DateDesc   SortMode = "dateDesc"
	DateAsc    SortMode = "dateAsc"
	AmountDesc SortMode = "amountDesc"
	AmountAsc  SortMode = "amountAsc"
)

// SortMode selects one of the four defined orderings. The zero value and any
// unknown value fall back to DateDesc.
type SortMode string

// FilterTransactions returns the transactions matching the free-text query and
// the resolved time window. The query matches case-insensitively against the
// category and notes joined by a space. A transaction whose date string does
// not parse is excluded regardless of the window, including the unbounded one:
// a malformed stored date silently drops out of derived views instead of
// raising.
func FilterTransactions(txns []Transaction, query string, win *Window) []Transaction {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if query != "" {
			haystack := strings.ToLower(txn.Category + " " + txn.Notes)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		day, ok := ParseDay(txn.Date)
		if !ok {
			continue
		}
		if win != nil && !win.Contains(day) {
			continue
		}
		matched = append(matched, txn)
	}
	return matched
}

// SortTransactions orders txns in place. Every mode sorts stably so that equal
// keys keep their prior relative order, which keeps pagination deterministic.
// Date modes compare the raw date strings: lexicographic order on YYYY-MM-DD
// is chronological order.
func SortTransactions(txns []Transaction, mode SortMode) {
	var less func(a, b Transaction) bool
	switch mode {
	case DateAsc:
		less = func(a, b Transaction) bool { return a.Date < b.Date }
	case AmountDesc:
		less = func(a, b Transaction) bool { return a.Amount.Cents > b.Amount.Cents }
	case AmountAsc:
		less = func(a, b Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	default: // DateDesc
		less = func(a, b Transaction) bool { return a.Date > b.Date }
	}
	sort.SliceStable(txns, func(i, j int) bool { return less(txns[i], txns[j]) })
}
