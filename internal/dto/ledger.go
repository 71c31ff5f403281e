package dto

import (
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body for adding an income or expense record.
// Date is YYYY-MM-DD and defaults to today.
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required,max=128"`
	Date        string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description string           `json:"description" binding:"max=512"`
}

// ListTransactionsParams selects the collection for GET /api/v1/transactions.
type ListTransactionsParams struct {
	Kind string `form:"kind" binding:"required"`
}

// CreatedResponse carries the id assigned to a new record.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// TransactionResponse is one ledger record.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListTransactionsResponse wraps the records of one kind.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ClearLedgerResponse reports how many records were removed per collection.
type ClearLedgerResponse struct {
	IncomeRemoved   int64 `json:"incomeRemoved"`
	ExpensesRemoved int64 `json:"expensesRemoved"`
}

// ToTransactionResponse converts a domain record.
func ToTransactionResponse(r domain.LedgerRecord) TransactionResponse {
	return TransactionResponse{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date.Format(domain.DateLayout),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// ToListTransactionsResponse converts a slice of records. The list is never null in JSON.
func ToListTransactionsResponse(records []domain.LedgerRecord) ListTransactionsResponse {
	out := make([]TransactionResponse, len(records))
	for i, r := range records {
		out[i] = ToTransactionResponse(r)
	}
	return ListTransactionsResponse{Transactions: out}
}
