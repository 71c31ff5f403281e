package dto

import (
	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams are the query parameters of GET /api/v1/summary.
type SummaryParams struct {
	Period string `form:"period,default=all" binding:"omitempty,oneof=all month year custom"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// CategoryTotalResponse is the total of one category.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SeriesPointResponse is one charting point.
type SeriesPointResponse struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// SummaryResponse is the aggregate view of the caller's ledger.
// Surplus is absent when nothing has been recorded.
type SummaryResponse struct {
	From               string                  `json:"from,omitempty"`
	To                 string                  `json:"to,omitempty"`
	TotalIncome        decimal.Decimal         `json:"totalIncome"`
	TotalExpenses      decimal.Decimal         `json:"totalExpenses"`
	Surplus            *decimal.Decimal        `json:"surplus,omitempty"`
	IncomeByCategory   []CategoryTotalResponse `json:"incomeByCategory"`
	ExpensesByCategory []CategoryTotalResponse `json:"expensesByCategory"`
	IncomeSeries       []SeriesPointResponse   `json:"incomeSeries"`
	ExpenseSeries      []SeriesPointResponse   `json:"expenseSeries"`
}

func toCategoryTotals(in []domain.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(in))
	for i, c := range in {
		out[i] = CategoryTotalResponse{Category: c.Category, Total: c.Total}
	}
	return out
}

func toSeries(in []domain.SeriesPoint) []SeriesPointResponse {
	out := make([]SeriesPointResponse, len(in))
	for i, p := range in {
		out[i] = SeriesPointResponse{Date: p.Date.Format(domain.DateLayout), Amount: p.Amount, Category: p.Category}
	}
	return out
}

// ToSummaryResponse converts a domain summary.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpenses:      s.TotalExpenses,
		Surplus:            s.Surplus,
		IncomeByCategory:   toCategoryTotals(s.IncomeByCategory),
		ExpensesByCategory: toCategoryTotals(s.ExpensesByCategory),
		IncomeSeries:       toSeries(s.IncomeSeries),
		ExpenseSeries:      toSeries(s.ExpenseSeries),
	}
	if s.Period != nil {
		if !s.Period.From.IsZero() {
			resp.From = s.Period.From.Format(domain.DateLayout)
		}
		if !s.Period.To.IsZero() {
			resp.To = s.Period.To.Format(domain.DateLayout)
		}
	}
	return resp
}
