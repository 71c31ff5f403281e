// Package accounting holds the pure aggregation logic that turns ledger rows
// into summary figures. Nothing here performs I/O.
package accounting

import (
	"sort"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summarize builds the aggregate view over one owner's income and expense records.
// The surplus is only set when at least one of the two sequences is non-empty.
func Summarize(income, expenses []domain.LedgerRecord) *domain.Summary {
	summary := &domain.Summary{
		IncomeByCategory:   TotalsByCategory(income),
		ExpensesByCategory: TotalsByCategory(expenses),
		IncomeSeries:       DateSeries(income),
		ExpenseSeries:      DateSeries(expenses),
		TotalIncome:        TotalAmount(income),
		TotalExpenses:      TotalAmount(expenses),
	}

	if len(income) > 0 || len(expenses) > 0 {
		surplus := summary.TotalIncome.Sub(summary.TotalExpenses)
		summary.Surplus = &surplus
	}

	return summary
}

// TotalAmount sums the amounts of records.
func TotalAmount(records []domain.LedgerRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// TotalsByCategory groups records by exact category string and sums each group.
// Groups are returned in order of first appearance. "Food" and "food" are distinct.
func TotalsByCategory(records []domain.LedgerRecord) []domain.CategoryTotal {
	totals := make([]domain.CategoryTotal, 0)
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, domain.CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
	}

	return totals
}

// DateSeries returns one point per record ordered by date ascending.
// Records sharing a date keep their original relative order.
func DateSeries(records []domain.LedgerRecord) []domain.SeriesPoint {
	points := make([]domain.SeriesPoint, len(records))
	for i, r := range records {
		points[i] = domain.SeriesPoint{
			Date:     domain.DateOnly(r.Date),
			Amount:   r.Amount,
			Category: r.Category,
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// FilterByPeriod keeps the records whose date falls inside period, preserving order.
func FilterByPeriod(records []domain.LedgerRecord, period domain.Period) []domain.LedgerRecord {
	if period.IsZero() {
		return records
	}
	filtered := make([]domain.LedgerRecord, 0, len(records))
	for _, r := range records {
		if period.Contains(r.Date) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
