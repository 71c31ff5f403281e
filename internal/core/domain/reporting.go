package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SeriesPoint is one record of a date-ordered series used for charting.
type SeriesPoint struct {
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// Period is an inclusive date range. A zero From or To leaves that side open.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// IsZero reports whether the period is unbounded on both sides.
func (p Period) IsZero() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// Contains reports whether the calendar day of d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	if !p.From.IsZero() && day.Before(DateOnly(p.From)) {
		return false
	}
	if !p.To.IsZero() && day.After(DateOnly(p.To)) {
		return false
	}
	return true
}

// Summary is the aggregate view over one owner's ledger. It is recomputed on
// every request. Surplus is nil when there is no recorded activity at all.
type Summary struct {
	IncomeByCategory   []CategoryTotal  `json:"incomeByCategory"`
	ExpensesByCategory []CategoryTotal  `json:"expensesByCategory"`
	IncomeSeries       []SeriesPoint    `json:"incomeSeries"`
	ExpenseSeries      []SeriesPoint    `json:"expenseSeries"`
	TotalIncome        decimal.Decimal  `json:"totalIncome"`
	TotalExpenses      decimal.Decimal  `json:"totalExpenses"`
	Surplus            *decimal.Decimal `json:"surplus,omitempty"`
	Period             *Period          `json:"period,omitempty"`
}
