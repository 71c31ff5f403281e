package mapping

import (
	"database/sql"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/SscSPs/finance_flow/internal/models"
)

// ToModelLedgerEntry converts an append request into a row. ID and CreatedAt are left for the store.
func ToModelLedgerEntry(d domain.NewLedgerRecord) models.LedgerEntry {
	return models.LedgerEntry{
		Owner:       d.Owner,
		Amount:      d.Amount,
		Category:    d.Category,
		EntryDate:   domain.DateOnly(d.Date),
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
	}
}

// ToDomainLedgerRecord converts a stored row of the given kind into a domain record.
func ToDomainLedgerRecord(kind domain.TransactionKind, m models.LedgerEntry) domain.LedgerRecord {
	return domain.LedgerRecord{
		ID:          m.ID,
		Kind:        kind,
		Owner:       m.Owner,
		Amount:      m.Amount,
		Category:    m.Category,
		Date:        domain.DateOnly(m.EntryDate),
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainLedgerRecords converts a slice of rows of one kind. The result is never nil.
func ToDomainLedgerRecords(kind domain.TransactionKind, ms []models.LedgerEntry) []domain.LedgerRecord {
	ds := make([]domain.LedgerRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerRecord(kind, m)
	}
	return ds
}
