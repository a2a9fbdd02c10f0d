package core

import "sort"

type (
	// Summary holds the income/expense/net totals of a filtered set.
	Summary struct {
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
		Net     Money `json:"net"`
		Count   int   `json:"count"`
	}

	// MonthTotals is one point of the monthly series: income and expense sums
	// for a YYYY-MM month key.
	MonthTotals struct {
		Month   string `json:"month"`
		Income  Money  `json:"income"`
		Expense Money  `json:"expense"`
	}
)

// Summarize computes the totals over the filtered (unpaginated) set.
func Summarize(txns []Transaction) Summary {
	s := Summary{Count: len(txns)}
	for _, txn := range txns {
		switch txn.Type {
		case Income:
			s.Income = s.Income.Add(txn.Amount)
		case Expense:
			s.Expense = s.Expense.Add(txn.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// ExpenseByCategory sums expense amounts per category. Categories with no
// matching expenses are absent from the map, not zero.
func ExpenseByCategory(txns []Transaction) map[string]Money {
	out := make(map[string]Money)
	for _, txn := range txns {
		if txn.Type != Expense {
			continue
		}
		out[txn.Category] = out[txn.Category].Add(txn.Amount)
	}
	return out
}

// MonthlySeries groups income and expense sums by the YYYY-MM prefix of the
// date, sorted ascending. Month keys sort lexicographically, which is
// chronological for this layout; months with no transactions are omitted.
func MonthlySeries(txns []Transaction) []MonthTotals {
	byMonth := make(map[string]MonthTotals)
	for _, txn := range txns {
		key := MonthKey(txn.Date)
		mt := byMonth[key]
		mt.Month = key
		switch txn.Type {
		case Income:
			mt.Income = mt.Income.Add(txn.Amount)
		case Expense:
			mt.Expense = mt.Expense.Add(txn.Amount)
		}
		byMonth[key] = mt
	}

	series := make([]MonthTotals, 0, len(byMonth))
	for _, mt := range byMonth {
		series = append(series, mt)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}
