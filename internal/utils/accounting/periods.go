package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/jinzhu/now"
)

// Named periods accepted by PeriodByName.
const (
	PeriodAll   = "all"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) domain.Period {
	n := now.With(t.UTC())
	return domain.Period{
		From: domain.DateOnly(n.BeginningOfMonth()),
		To:   domain.DateOnly(n.EndOfMonth()),
	}
}

// YearOf returns the calendar year containing t.
func YearOf(t time.Time) domain.Period {
	n := now.With(t.UTC())
	return domain.Period{
		From: domain.DateOnly(n.BeginningOfYear()),
		To:   domain.DateOnly(n.EndOfYear()),
	}
}

// PeriodByName resolves "all", "month" or "year" relative to ref.
func PeriodByName(name string, ref time.Time) (domain.Period, error) {
	switch name {
	case "", PeriodAll:
		return domain.Period{}, nil
	case PeriodMonth:
		return MonthOf(ref), nil
	case PeriodYear:
		return YearOf(ref), nil
	default:
		return domain.Period{}, fmt.Errorf("unknown period %q", name)
	}
}
