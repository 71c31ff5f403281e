package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.TransactionKind
		wantErr bool
	}{
		{name: "lower income", input: "income", want: domain.Income},
		{name: "upper expense", input: "EXPENSE", want: domain.Expense},
		{name: "plural expenses", input: "expenses", want: domain.Expense},
		{name: "padded", input: "  Income ", want: domain.Income},
		{name: "unknown", input: "transfer", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseTransactionKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, domain.Income.Valid())
	assert.True(t, domain.Expense.Valid())
	assert.False(t, domain.TransactionKind("income").Valid())
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 1, 2, 23, 59, 1, 5, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), domain.DateOnly(in))
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDate("01/02/2024")
	assert.Error(t, err)
}

func TestPeriod_Contains(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period domain.Period
		date   time.Time
		want   bool
	}{
		{name: "unbounded", period: domain.Period{}, date: jan1, want: true},
		{name: "inclusive from", period: domain.Period{From: jan1, To: jan31}, date: jan1, want: true},
		{name: "inclusive to", period: domain.Period{From: jan1, To: jan31}, date: jan31.Add(13 * time.Hour), want: true},
		{name: "before", period: domain.Period{From: jan1, To: jan31}, date: jan1.AddDate(0, 0, -1), want: false},
		{name: "after", period: domain.Period{From: jan1, To: jan31}, date: jan31.AddDate(0, 0, 1), want: false},
		{name: "open end", period: domain.Period{From: jan1}, date: jan31.AddDate(5, 0, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Contains(tt.date))
		})
	}
}

func TestIdentity_IsZero(t *testing.T) {
	assert.True(t, domain.Identity{}.IsZero())
	assert.False(t, domain.Identity{Username: "alice"}.IsZero())
}
