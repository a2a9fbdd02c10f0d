package core

import "time"

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

const (
	Cash PaymentMode = "Cash"
	Card PaymentMode = "Card"
	UPI  PaymentMode = "UPI"
)

// DateLayout is the calendar-date format transactions carry. Dates are kept as
// strings in the model: lexicographic order on this layout is chronological
// order, and a stored value that fails to parse must survive load so it can be
// excluded from derived views instead of breaking them.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	PaymentMode string

	Money struct {
		Cents int64 `json:"cents"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        string          `json:"date"`
		PaymentMode PaymentMode     `json:"paymentMode"`
		Notes       string          `json:"notes"`
	}

	// BudgetEntry is one category's monthly spending ceiling.
	BudgetEntry struct {
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
	}
)

// IsValid reports whether t is one of the two defined transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// IsValid reports whether m is one of the defined payment modes.
func (m PaymentMode) IsValid() bool {
	switch m {
	case Cash, Card, UPI:
		return true
	default:
		return false
	}
}

// ParseDay parses a YYYY-MM-DD date string into its midnight UTC instant.
// The second return is false when the string is not a valid calendar date.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthKey returns the YYYY-MM prefix of a date string, used to group the
// monthly series.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
