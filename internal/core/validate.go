package core

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxCategoryLen = 30
	MaxNotesLen    = 80
)

// ValidationError is a rejected user input. The string is the single
// human-readable message surfaced to the submitter; validation stops at the
// first failing rule, so one submission yields at most one message.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var (
	ErrInvalidAmount      = ValidationError("Amount must be greater than 0.")
	ErrInvalidType        = ValidationError("Please select a valid transaction type.")
	ErrEmptyCategory      = ValidationError("Category is required.")
	ErrCategoryTooLong    = ValidationError("Category should be 30 characters or less.")
	ErrInvalidDate        = ValidationError("Please provide a valid date.")
	ErrInvalidPaymentMode = ValidationError("Please select a valid payment mode.")
	ErrNotesTooLong       = ValidationError("Notes should be 80 characters or less.")

	ErrEmptyBudgetCategory = ValidationError("Budget category is required.")
	ErrInvalidBudgetAmount = ValidationError("Budget amount must be greater than 0.")
)

// IsValidationError reports whether err is a rejected user input, as opposed
// to a storage or infrastructure failure.
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// TransactionInput carries the raw form fields of a transaction submission,
// before any normalization.
type TransactionInput struct {
	Amount      string
	Type        string
	Category    string
	Date        string
	PaymentMode string
	Notes       string
}

// BudgetInput carries the raw form fields of a budget submission.
type BudgetInput struct {
	Category string
	Amount   string
}

// NormalizeCategory trims the value and collapses internal whitespace runs to
// single spaces.
func NormalizeCategory(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValidateTransaction checks the raw fields in rule order and, on success,
// returns a normalized Transaction carrying a fresh unique identifier. The
// rule order is part of the contract: when several fields are invalid at once,
// the message of the first failing rule wins.
func ValidateTransaction(in TransactionInput) (Transaction, error) {
	cents, err := ParseDecimalToCents(in.Amount)
	if err != nil {
		return Transaction{}, ErrInvalidAmount
	}

	txType := TransactionType(in.Type)
	if !txType.IsValid() {
		return Transaction{}, ErrInvalidType
	}

	category := NormalizeCategory(in.Category)
	if category == "" {
		return Transaction{}, ErrEmptyCategory
	}
	if utf8.RuneCountInString(category) > MaxCategoryLen {
		return Transaction{}, ErrCategoryTooLong
	}

	if _, ok := ParseDay(in.Date); !ok {
		return Transaction{}, ErrInvalidDate
	}

	mode := PaymentMode(in.PaymentMode)
	if !mode.IsValid() {
		return Transaction{}, ErrInvalidPaymentMode
	}

	notes := strings.TrimSpace(in.Notes)
	if utf8.RuneCountInString(notes) > MaxNotesLen {
		return Transaction{}, ErrNotesTooLong
	}

	return Transaction{
		ID:          uuid.NewString(),
		Amount:      Money{Cents: cents},
		Type:        txType,
		Category:    category,
		Date:        in.Date,
		PaymentMode: mode,
		Notes:       notes,
	}, nil
}

// ValidateBudgetEntry checks the raw budget fields and returns the entry to
// upsert into the budget map; submitting an existing category replaces its
// limit.
func ValidateBudgetEntry(in BudgetInput) (BudgetEntry, error) {
	category := NormalizeCategory(in.Category)
	if category == "" {
		return BudgetEntry{}, ErrEmptyBudgetCategory
	}
	if utf8.RuneCountInString(category) > MaxCategoryLen {
		return BudgetEntry{}, ErrCategoryTooLong
	}

	cents, err := ParseDecimalToCents(in.Amount)
	if err != nil {
		return BudgetEntry{}, ErrInvalidBudgetAmount
	}

	return BudgetEntry{Category: category, Limit: Money{Cents: cents}}, nil
}
