package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centavo/installments/internal/domain/event"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/valueobject"
	"github.com/centavo/installments/pkg/money"
)

// MaxDescriptionLen bounds the free-text description of a plan.
const MaxDescriptionLen = 200

// ---------------------------------------------------------------------------
// InstallmentPlan aggregate root
// ---------------------------------------------------------------------------

// InstallmentPlan is an immutable aggregate. Mutations return a new copy.
// Rows with status COMPLETED are historical facts: no transition alters
// their monetary fields or due dates.
type InstallmentPlan struct {
	id                    uuid.UUID
	cardAccountID         uuid.UUID
	purchaseTransactionID uuid.UUID
	financingCategoryID   uuid.UUID
	currency              money.Currency
	principalCents        int64
	rate                  valueobject.Rate
	periodCount           int
	startDate             time.Time
	description           string
	status                valueobject.PlanStatus
	rows                  []InstallmentRow
	installmentCents      int64
	totalPrincipalCents   int64
	totalInterestCents    int64
	totalCents            int64
	version               int
	createdAt             time.Time
	updatedAt             time.Time
	domainEvents          []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewInstallmentPlan validates the terms, generates the full schedule and
// returns an ACTIVE plan carrying a PlanCreated event.
func NewInstallmentPlan(
	cardAccountID, purchaseTransactionID, financingCategoryID uuid.UUID,
	currency money.Currency,
	principalCents int64,
	rate valueobject.Rate,
	periodCount int,
	startDate time.Time,
	description string,
	now time.Time,
) (InstallmentPlan, error) {
	if cardAccountID == uuid.Nil {
		return InstallmentPlan{}, fault.NewValidation("cardAccountID", "is required")
	}
	if purchaseTransactionID == uuid.Nil {
		return InstallmentPlan{}, fault.NewValidation("purchaseTransactionID", "is required")
	}
	if financingCategoryID == uuid.Nil {
		return InstallmentPlan{}, fault.NewValidation("financingCategoryID", "is required")
	}
	if currency.IsZero() {
		return InstallmentPlan{}, fault.NewValidation("currency", "is required")
	}
	if len(description) > MaxDescriptionLen {
		return InstallmentPlan{}, fault.NewValidation("description", "exceeds %d characters", MaxDescriptionLen)
	}

	rows, err := GenerateSchedule(principalCents, rate, periodCount, startDate)
	if err != nil {
		return InstallmentPlan{}, err
	}

	id := uuid.New()
	plan := InstallmentPlan{
		id:                    id,
		cardAccountID:         cardAccountID,
		purchaseTransactionID: purchaseTransactionID,
		financingCategoryID:   financingCategoryID,
		currency:              currency,
		principalCents:        principalCents,
		rate:                  rate,
		periodCount:           periodCount,
		startDate:             truncateToDate(startDate),
		description:           description,
		status:                valueobject.PlanStatusActive,
		rows:                  rows,
		version:               1,
		createdAt:             now,
		updatedAt:             now,
	}
	plan.recomputeTotals()

	plan.domainEvents = append(plan.domainEvents, event.NewPlanCreated(
		id.String(), cardAccountID.String(), purchaseTransactionID.String(),
		currency.Code(), principalCents, rate.Percent(), periodCount, plan.startDate,
	))

	return plan, nil
}

// ReconstructPlan rebuilds an InstallmentPlan aggregate from persistence.
func ReconstructPlan(
	id, cardAccountID, purchaseTransactionID, financingCategoryID uuid.UUID,
	currency money.Currency,
	principalCents int64,
	rate valueobject.Rate,
	periodCount int,
	startDate time.Time,
	description string,
	status valueobject.PlanStatus,
	rows []InstallmentRow,
	version int,
	createdAt, updatedAt time.Time,
) InstallmentPlan {
	plan := InstallmentPlan{
		id:                    id,
		cardAccountID:         cardAccountID,
		purchaseTransactionID: purchaseTransactionID,
		financingCategoryID:   financingCategoryID,
		currency:              currency,
		principalCents:        principalCents,
		rate:                  rate,
		periodCount:           periodCount,
		startDate:             startDate,
		description:           description,
		status:                status,
		rows:                  rows,
		version:               version,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
	plan.recomputeTotals()
	return plan
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Edit regenerates the unpaid suffix of the schedule under new terms. Rows
// already completed are kept byte-for-byte; the suffix is re-amortized over
// the principal remaining after the last completed row, anchored at that
// row's due date, and renumbered to continue the sequence.
func (p InstallmentPlan) Edit(
	newRate valueobject.Rate,
	newPeriodCount int,
	description string,
	now time.Time,
) (InstallmentPlan, error) {
	if !p.status.Equal(valueobject.PlanStatusActive) {
		return p, fault.NewState(fault.CodePlanNotActive, "cannot edit a %s plan", p.status)
	}
	if len(description) > MaxDescriptionLen {
		return p, fault.NewValidation("description", "exceeds %d characters", MaxDescriptionLen)
	}
	if newPeriodCount < MinPeriods || newPeriodCount > MaxPeriods {
		return p, fault.NewValidation("periodCount", "must be between %d and %d, got %d", MinPeriods, MaxPeriods, newPeriodCount)
	}

	k := p.CompletedRowCount()
	remaining := p.remainingAfter(k)
	if newPeriodCount < k {
		return p, fault.NewState(fault.CodeEditBelowPaid,
			"new period count %d is below the %d installments already paid", newPeriodCount, k)
	}
	if newPeriodCount == k && remaining > 0 {
		return p, fault.NewState(fault.CodeEditBelowPaid,
			"%d cents of principal remain but no periods are left to carry them", remaining)
	}

	anchor := p.startDate
	if k > 0 {
		anchor = p.rows[k-1].DueDate
	}

	suffix, err := GenerateSchedule(remaining, newRate, newPeriodCount-k, anchor)
	if err != nil {
		return p, err
	}
	for i := range suffix {
		suffix[i].Number = k + i + 1
	}

	next := p
	next.rows = make([]InstallmentRow, 0, newPeriodCount)
	next.rows = append(next.rows, p.rows[:k]...)
	next.rows = append(next.rows, suffix...)
	next.rate = newRate
	next.periodCount = newPeriodCount
	next.description = description
	next.updatedAt = now
	next.recomputeTotals()

	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPlanEdited(
		p.id.String(), k, newPeriodCount, newRate.Percent(),
	))

	return next, nil
}

// Cancel transitions ACTIVE -> CANCELLED. Rows are retained for audit; they
// are no longer payable.
func (p InstallmentPlan) Cancel(now time.Time) (InstallmentPlan, error) {
	if !p.status.Equal(valueobject.PlanStatusActive) {
		return p, fault.NewState(fault.CodePlanNotActive, "cannot cancel a %s plan", p.status)
	}

	next := p
	next.status = valueobject.PlanStatusCancelled
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPlanCancelled(
		p.id.String(), p.periodCount-p.CompletedRowCount(),
	))
	return next, nil
}

// RecordPayment marks exactly one row COMPLETED. If it was the last pending
// row, the plan transitions to COMPLETED as a derived state change.
func (p InstallmentPlan) RecordPayment(
	installmentNumber int,
	paymentDate time.Time,
	sourceAccountID uuid.UUID,
	notes string,
	now time.Time,
) (InstallmentPlan, error) {
	if !p.status.Equal(valueobject.PlanStatusActive) {
		return p, fault.NewState(fault.CodePlanNotActive, "plan is %s", p.status)
	}

	idx := -1
	for i, row := range p.rows {
		if row.Number == installmentNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, fault.NewNotFound("installment", fmt.Sprintf("%s/%d", p.id, installmentNumber))
	}
	if p.rows[idx].Status.Equal(valueobject.RowStatusCompleted) {
		return p, fault.NewState(fault.CodeAlreadyPaid, "installment %d is already paid", installmentNumber)
	}
	// Completed rows must stay a contiguous prefix, otherwise Edit's
	// paid/unpaid partition is undefined.
	if next := p.CompletedRowCount() + 1; installmentNumber != next {
		return p, fault.NewState(fault.CodeOutOfOrder,
			"installments settle in order; next payable is %d, got %d", next, installmentNumber)
	}

	paid := truncateToDate(paymentDate)

	next := p
	next.rows = make([]InstallmentRow, len(p.rows))
	copy(next.rows, p.rows)
	next.rows[idx].Status = valueobject.RowStatusCompleted
	next.rows[idx].PaymentDate = &paid
	next.rows[idx].Notes = notes
	next.updatedAt = now

	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewInstallmentPaid(
		p.id.String(), installmentNumber,
		p.rows[idx].PrincipalCents, p.rows[idx].InterestCents,
		paid, sourceAccountID.String(),
	))

	if next.CompletedRowCount() == next.periodCount {
		next.status = valueobject.PlanStatusCompleted
		next.domainEvents = append(next.domainEvents, event.NewPlanCompleted(
			p.id.String(), next.totalInterestCents,
		))
	}

	return next, nil
}

// ---------------------------------------------------------------------------
// Derived state
// ---------------------------------------------------------------------------

// CompletedRowCount returns the number of rows already settled.
func (p InstallmentPlan) CompletedRowCount() int {
	n := 0
	for _, row := range p.rows {
		if row.Status.Equal(valueobject.RowStatusCompleted) {
			n++
		}
	}
	return n
}

// remainingAfter returns the principal still owed after row k. Completed
// rows always form a prefix, so rows[k-1] carries the balance.
func (p InstallmentPlan) remainingAfter(k int) int64 {
	if k == 0 {
		return p.principalCents
	}
	return p.rows[k-1].RemainingCents
}

// RemainingPrincipalCents returns the principal not yet collected.
func (p InstallmentPlan) RemainingPrincipalCents() int64 {
	return p.remainingAfter(p.CompletedRowCount())
}

func (p *InstallmentPlan) recomputeTotals() {
	p.totalPrincipalCents = 0
	p.totalInterestCents = 0
	p.totalCents = 0
	for _, row := range p.rows {
		p.totalPrincipalCents += row.PrincipalCents
		p.totalInterestCents += row.InterestCents
		p.totalCents += row.TotalCents
	}
	if len(p.rows) > 0 {
		p.installmentCents = p.rows[0].TotalCents
	} else {
		p.installmentCents = 0
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p InstallmentPlan) ID() uuid.UUID                    { return p.id }
func (p InstallmentPlan) CardAccountID() uuid.UUID         { return p.cardAccountID }
func (p InstallmentPlan) PurchaseTransactionID() uuid.UUID { return p.purchaseTransactionID }
func (p InstallmentPlan) FinancingCategoryID() uuid.UUID   { return p.financingCategoryID }
func (p InstallmentPlan) Currency() money.Currency         { return p.currency }
func (p InstallmentPlan) PrincipalCents() int64            { return p.principalCents }
func (p InstallmentPlan) Rate() valueobject.Rate           { return p.rate }
func (p InstallmentPlan) PeriodCount() int                 { return p.periodCount }
func (p InstallmentPlan) StartDate() time.Time             { return p.startDate }
func (p InstallmentPlan) Description() string              { return p.description }
func (p InstallmentPlan) Status() valueobject.PlanStatus   { return p.status }
func (p InstallmentPlan) InstallmentCents() int64          { return p.installmentCents }
func (p InstallmentPlan) TotalPrincipalCents() int64       { return p.totalPrincipalCents }
func (p InstallmentPlan) TotalInterestCents() int64        { return p.totalInterestCents }
func (p InstallmentPlan) TotalCents() int64                { return p.totalCents }
func (p InstallmentPlan) Version() int                     { return p.version }
func (p InstallmentPlan) CreatedAt() time.Time             { return p.createdAt }
func (p InstallmentPlan) UpdatedAt() time.Time             { return p.updatedAt }
func (p InstallmentPlan) DomainEvents() []event.DomainEvent {
	return p.domainEvents
}

// Rows returns a defensive copy of the schedule.
func (p InstallmentPlan) Rows() []InstallmentRow {
	if p.rows == nil {
		return nil
	}
	out := make([]InstallmentRow, len(p.rows))
	copy(out, p.rows)
	return out
}

// Row returns the row with the given installment number.
func (p InstallmentPlan) Row(installmentNumber int) (InstallmentRow, bool) {
	for _, row := range p.rows {
		if row.Number == installmentNumber {
			return row, true
		}
	}
	return InstallmentRow{}, false
}

// ClearEvents returns a copy with an empty event list.
func (p InstallmentPlan) ClearEvents() InstallmentPlan {
	next := p
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
