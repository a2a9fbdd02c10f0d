package core

import "time"

type (
	// FilterCriteria is the caller's transient view selection. It is
	// reconstructed on every render cycle and never mutated here; the clamped
	// page number is reported back inside the View.
	FilterCriteria struct {
		Query       string   `json:"query"`
		Period      Period   `json:"period"`
		CustomStart string   `json:"customStart,omitempty"`
		CustomEnd   string   `json:"customEnd,omitempty"`
		SortMode    SortMode `json:"sortMode"`
		Page        int      `json:"page"`
	}

	// View is the full derived output of one render cycle: the visible page,
	// the aggregates over the filtered set, and the filter-independent budget
	// statuses.
	View struct {
		Page              PageSlice        `json:"page"`
		Summary           Summary          `json:"summary"`
		ExpenseByCategory map[string]Money `json:"expenseByCategory"`
		MonthlySeries     []MonthTotals    `json:"monthlySeries"`
		Budgets           []BudgetStatus   `json:"budgets"`
	}
)

// ComputeView derives everything the presentation layer consumes from one
// snapshot of the ledger. Filtering, sorting and pagination feed the visible
// rows; the aggregates cover the whole filtered set, not just the visible
// page; budget evaluation runs over the entire transaction list, scoped to
// now's calendar month regardless of the active filter. The function is pure:
// identical inputs with an identical now yield an identical View.
func ComputeView(txns []Transaction, budgets map[string]Money, crit FilterCriteria, now time.Time) View {
	win := ResolveWindow(crit.Period, crit.CustomStart, crit.CustomEnd, now)
	filtered := FilterTransactions(txns, crit.Query, win)
	SortTransactions(filtered, crit.SortMode)

	return View{
		Page:              Paginate(filtered, crit.Page, PageSize),
		Summary:           Summarize(filtered),
		ExpenseByCategory: ExpenseByCategory(filtered),
		MonthlySeries:     MonthlySeries(filtered),
		Budgets:           EvaluateBudgets(txns, budgets, now),
	}
}
