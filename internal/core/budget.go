package core

import (
	"sort"
	"time"
)

const (
	StatusWithin = "within"
	StatusOver   = "over"
)

// BudgetStatus is the utilization of one budgeted category for the current
// calendar month.
type BudgetStatus struct {
	Category  string `json:"category"`
	Limit     Money  `json:"limit"`
	Spent     Money  `json:"spent"`
	Remaining Money  `json:"remaining"`
	Status    string `json:"status"`
}

// EvaluateBudgets computes per-category utilization over the full transaction
// list, scoped to now's calendar month and independent of any active filter.
// A budgeted category with no matching expenses reports zero spend and status
// within. Results are sorted ascending by category name.
func EvaluateBudgets(txns []Transaction, budgets map[string]Money, now time.Time) []BudgetStatus {
	if len(budgets) == 0 {
		return nil
	}

	year, month, _ := now.Date()
	spent := make(map[string]Money)
	for _, txn := range txns {
		if txn.Type != Expense {
			continue
		}
		day, ok := ParseDay(txn.Date)
		if !ok {
			continue
		}
		if day.Year() != year || day.Month() != month {
			continue
		}
		spent[txn.Category] = spent[txn.Category].Add(txn.Amount)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for category, limit := range budgets {
		remaining := limit.Sub(spent[category])
		status := StatusWithin
		if remaining.IsNegative() {
			status = StatusOver
		}
		statuses = append(statuses, BudgetStatus{
			Category:  category,
			Limit:     limit,
			Spent:     spent[category],
			Remaining: remaining,
			Status:    status,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Category < statuses[j].Category })
	return statuses
}
