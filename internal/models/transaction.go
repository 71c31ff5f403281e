package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persisted shape of a row in the income or expenses table.
// Both tables share this layout; the table itself encodes the kind.
type LedgerEntry struct {
	ID          int64           `db:"id"`
	Owner       string          `db:"owner"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	EntryDate   time.Time       `db:"entry_date"`
	Description sql.NullString  `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}
