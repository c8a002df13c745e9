package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/valueobject"
	"github.com/centavo/installments/pkg/money"
)

const (
	// MinPeriods and MaxPeriods bound the period count of any schedule.
	MinPeriods = 1
	MaxPeriods = 120
)

// InstallmentRow is one period of an amortization schedule. All monetary
// fields are integer cents. RemainingCents is the balance still owed after
// this row is paid.
type InstallmentRow struct {
	Number         int
	DueDate        time.Time
	TotalCents     int64
	PrincipalCents int64
	InterestCents  int64
	RemainingCents int64
	Status         valueobject.RowStatus
	PaymentDate    *time.Time
	Notes          string
}

// StatusAt derives the effective status at the given instant: a pending row
// whose due date has passed reads as OVERDUE. Nothing is stored.
func (r InstallmentRow) StatusAt(now time.Time) valueobject.RowStatus {
	if r.Status.Equal(valueobject.RowStatusCompleted) {
		return valueobject.RowStatusCompleted
	}
	if r.DueDate.Before(truncateToDate(now)) {
		return valueobject.RowStatusOverdue
	}
	return valueobject.RowStatusPending
}

// GenerateSchedule computes a declining-balance amortization schedule over
// integer cents.
//
// For rate > 0 the level installment is
//
//	A = P * r * (1+r)^n / ((1+r)^n - 1)
//
// rounded half-up at the cent boundary; per row, interest is rounded first
// and the principal portion is the difference, with the final row clamped to
// the exact remaining balance so rounding drift is absorbed there. A zero
// rate degenerates to an even principal split with the remainder on the last
// row.
//
// Due dates advance in calendar months from start; the first row is due one
// period after start. Dates carry no time of day.
func GenerateSchedule(
	principalCents int64,
	rate valueobject.Rate,
	periods int,
	start time.Time,
) ([]InstallmentRow, error) {
	if principalCents <= 0 {
		return nil, fault.NewValidation("principal", "must be positive, got %d", principalCents)
	}
	if periods < MinPeriods || periods > MaxPeriods {
		return nil, fault.NewValidation("periodCount", "must be between %d and %d, got %d", MinPeriods, MaxPeriods, periods)
	}

	start = truncateToDate(start)

	var rows []InstallmentRow
	if rate.IsZero() {
		rows = generateZeroRate(principalCents, periods, start)
	} else {
		rows = generateLevelPayment(principalCents, rate, periods, start)
	}

	if err := verifySchedule(principalCents, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func generateZeroRate(principalCents int64, periods int, start time.Time) []InstallmentRow {
	shares := money.DistributeEvenly(principalCents, periods)

	rows := make([]InstallmentRow, 0, periods)
	remaining := principalCents
	for i := 1; i <= periods; i++ {
		share := shares[i-1]
		remaining -= share
		rows = append(rows, InstallmentRow{
			Number:         i,
			DueDate:        dueDate(start, i),
			TotalCents:     share,
			PrincipalCents: share,
			InterestCents:  0,
			RemainingCents: remaining,
			Status:         valueobject.RowStatusPending,
		})
	}
	return rows
}

func generateLevelPayment(principalCents int64, rate valueobject.Rate, periods int, start time.Time) []InstallmentRow {
	r := rate.Fraction()
	one := decimal.NewFromInt(1)
	factor := one.Add(r).Pow(decimal.NewFromInt(int64(periods)))

	p := decimal.NewFromInt(principalCents)
	// The only division in the kernel.
	installment := money.RoundCents(p.Mul(r).Mul(factor).Div(factor.Sub(one)))

	rows := make([]InstallmentRow, 0, periods)
	remaining := principalCents
	for i := 1; i <= periods; i++ {
		interest := money.RoundCents(decimal.NewFromInt(remaining).Mul(r))
		principal := installment - interest
		if i == periods || principal >= remaining {
			// Clamp so the balance lands on exactly zero.
			principal = remaining
		}
		remaining -= principal
		rows = append(rows, InstallmentRow{
			Number:         i,
			DueDate:        dueDate(start, i),
			TotalCents:     principal + interest,
			PrincipalCents: principal,
			InterestCents:  interest,
			RemainingCents: remaining,
			Status:         valueobject.RowStatusPending,
		})
	}
	return rows
}

// verifySchedule checks the arithmetic invariants before a schedule is
// released. A violation is an internal-consistency failure, never a
// wrong-numbers success.
func verifySchedule(principalCents int64, rows []InstallmentRow) error {
	var sumPrincipal int64
	prevRemaining := principalCents
	for i, row := range rows {
		if row.Number != i+1 {
			return fault.NewInternal("row numbering gap at position %d: got %d", i, row.Number)
		}
		if row.PrincipalCents+row.InterestCents != row.TotalCents {
			return fault.NewInternal("row %d: principal %d + interest %d != total %d",
				row.Number, row.PrincipalCents, row.InterestCents, row.TotalCents)
		}
		if row.PrincipalCents < 0 || row.InterestCents < 0 {
			return fault.NewInternal("row %d: negative portion", row.Number)
		}
		if row.RemainingCents != prevRemaining-row.PrincipalCents {
			return fault.NewInternal("row %d: remaining %d does not continue from %d",
				row.Number, row.RemainingCents, prevRemaining)
		}
		prevRemaining = row.RemainingCents
		sumPrincipal += row.PrincipalCents
	}
	if sumPrincipal != principalCents {
		return fault.NewInternal("principal sum mismatch: got %d, want %d", sumPrincipal, principalCents)
	}
	if n := len(rows); n > 0 && rows[n-1].RemainingCents != 0 {
		return fault.NewInternal("final remaining balance is %d, want 0", rows[n-1].RemainingCents)
	}
	return nil
}

func dueDate(start time.Time, period int) time.Time {
	return truncateToDate(start.AddDate(0, period, 0))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
