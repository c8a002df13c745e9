package event

import (
	"time"

	"github.com/centavo/installments/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Plan lifecycle events
// ---------------------------------------------------------------------------

// PlanCreated is raised when a purchase is converted into an installment plan.
type PlanCreated struct {
	events.BaseEvent
	CardAccountID         string `json:"card_account_id"`
	PurchaseTransactionID string `json:"purchase_transaction_id"`
	Currency              string `json:"currency"`
	PrincipalCents        int64  `json:"principal_cents"`
	RatePercent           string `json:"rate_percent"`
	PeriodCount           int    `json:"period_count"`
	StartDate             string `json:"start_date"`
}

func NewPlanCreated(
	planID, cardAccountID, purchaseTransactionID, currency string,
	principalCents int64, ratePercent string, periodCount int, startDate time.Time,
) PlanCreated {
	return PlanCreated{
		BaseEvent:             events.NewBaseEvent("installments.plan.created", planID, "InstallmentPlan"),
		CardAccountID:         cardAccountID,
		PurchaseTransactionID: purchaseTransactionID,
		Currency:              currency,
		PrincipalCents:        principalCents,
		RatePercent:           ratePercent,
		PeriodCount:           periodCount,
		StartDate:             startDate.Format("2006-01-02"),
	}
}

// PlanEdited is raised when the unpaid suffix of a schedule is regenerated.
type PlanEdited struct {
	events.BaseEvent
	CompletedRows  int    `json:"completed_rows"`
	NewPeriodCount int    `json:"new_period_count"`
	NewRatePercent string `json:"new_rate_percent"`
}

func NewPlanEdited(planID string, completedRows, newPeriodCount int, newRatePercent string) PlanEdited {
	return PlanEdited{
		BaseEvent:      events.NewBaseEvent("installments.plan.edited", planID, "InstallmentPlan"),
		CompletedRows:  completedRows,
		NewPeriodCount: newPeriodCount,
		NewRatePercent: newRatePercent,
	}
}

// PlanCancelled is raised when an active plan is explicitly cancelled.
type PlanCancelled struct {
	events.BaseEvent
	PendingRows int `json:"pending_rows"`
}

func NewPlanCancelled(planID string, pendingRows int) PlanCancelled {
	return PlanCancelled{
		BaseEvent:   events.NewBaseEvent("installments.plan.cancelled", planID, "InstallmentPlan"),
		PendingRows: pendingRows,
	}
}

// PlanCompleted is raised when the last pending row settles. This transition
// is derived, never requested by a caller.
type PlanCompleted struct {
	events.BaseEvent
	TotalInterestCents int64 `json:"total_interest_cents"`
}

func NewPlanCompleted(planID string, totalInterestCents int64) PlanCompleted {
	return PlanCompleted{
		BaseEvent:          events.NewBaseEvent("installments.plan.completed", planID, "InstallmentPlan"),
		TotalInterestCents: totalInterestCents,
	}
}

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// InstallmentPaid is raised when exactly one schedule row settles.
type InstallmentPaid struct {
	events.BaseEvent
	InstallmentNumber int    `json:"installment_number"`
	PrincipalCents    int64  `json:"principal_cents"`
	InterestCents     int64  `json:"interest_cents"`
	PaymentDate       string `json:"payment_date"`
	SourceAccountID   string `json:"source_account_id"`
}

func NewInstallmentPaid(
	planID string, installmentNumber int,
	principalCents, interestCents int64,
	paymentDate time.Time, sourceAccountID string,
) InstallmentPaid {
	return InstallmentPaid{
		BaseEvent:         events.NewBaseEvent("installments.installment.paid", planID, "InstallmentPlan"),
		InstallmentNumber: installmentNumber,
		PrincipalCents:    principalCents,
		InterestCents:     interestCents,
		PaymentDate:       paymentDate.Format("2006-01-02"),
		SourceAccountID:   sourceAccountID,
	}
}
