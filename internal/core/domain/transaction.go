package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for ledger dates.
const DateLayout = "2006-01-02"

// TransactionKind selects the ledger collection a record lives in.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// ErrUnknownKind is returned when a kind is neither income nor expense.
var ErrUnknownKind = errors.New("unknown transaction kind")

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// ParseTransactionKind accepts "income"/"expense" (and the plural "expenses")
// in any letter case.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME":
		return Income, nil
	case "EXPENSE", "EXPENSES":
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// LedgerRecord is a single income or expense row owned by a username.
type LedgerRecord struct {
	ID          int64           `json:"id"`
	Kind        TransactionKind `json:"kind"`
	Owner       string          `json:"owner"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewLedgerRecord is the input of an append. The store assigns ID and CreatedAt.
type NewLedgerRecord struct {
	Kind        TransactionKind
	Owner       string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
}

// ClearResult reports how many rows a clear removed from each collection.
type ClearResult struct {
	IncomeRemoved   int64 `json:"incomeRemoved"`
	ExpensesRemoved int64 `json:"expensesRemoved"`
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
