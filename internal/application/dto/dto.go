package dto

import (
	"time"

	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/model"
)

// DateLayout is the single canonical calendar-date format on the wire.
const DateLayout = "2006-01-02"

// ParseDate parses a wire date, reporting the offending field on failure.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fault.NewValidation(field, "must be a %s date, got %q", DateLayout, value)
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreatePlanRequest carries the terms for converting a purchase into a plan.
// Amounts are integer cents; the rate is a two-decimal percent string.
type CreatePlanRequest struct {
	CardAccountID         string `json:"card_account_id"`
	PurchaseTransactionID string `json:"purchase_transaction_id"`
	PrincipalCents        int64  `json:"principal_cents"`
	RatePercent           string `json:"rate_percent"`
	PeriodCount           int    `json:"period_count"`
	StartDate             string `json:"start_date"`
	Description           string `json:"description,omitempty"`
}

// EditPlanRequest carries new terms for the unpaid suffix of a plan.
type EditPlanRequest struct {
	PlanID      string `json:"plan_id"`
	RatePercent string `json:"rate_percent"`
	PeriodCount int    `json:"period_count"`
	Description string `json:"description,omitempty"`
}

// CancelPlanRequest identifies a plan to cancel.
type CancelPlanRequest struct {
	PlanID string `json:"plan_id"`
}

// RecordPaymentRequest carries one installment settlement.
type RecordPaymentRequest struct {
	PlanID            string `json:"plan_id"`
	InstallmentNumber int    `json:"installment_number"`
	PaymentDate       string `json:"payment_date"`
	SourceAccountID   string `json:"source_account_id"`
	Notes             string `json:"notes,omitempty"`
}

// GetPlanRequest identifies a plan to retrieve.
type GetPlanRequest struct {
	PlanID string `json:"plan_id"`
}

// ListPlansRequest identifies the card account whose plans to list.
type ListPlansRequest struct {
	CardAccountID string `json:"card_account_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentRowResponse is the external representation of one schedule row.
// Status is derived at read time, so an unpaid row past its due date reads
// OVERDUE.
type InstallmentRowResponse struct {
	Number         int    `json:"number"`
	DueDate        string `json:"due_date"`
	TotalCents     int64  `json:"total_cents"`
	PrincipalCents int64  `json:"principal_cents"`
	InterestCents  int64  `json:"interest_cents"`
	RemainingCents int64  `json:"remaining_cents"`
	Status         string `json:"status"`
	PaymentDate    string `json:"payment_date,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// PlanResponse is the external representation of an installment plan.
type PlanResponse struct {
	ID                    string                   `json:"id"`
	CardAccountID         string                   `json:"card_account_id"`
	PurchaseTransactionID string                   `json:"purchase_transaction_id"`
	FinancingCategoryID   string                   `json:"financing_category_id"`
	Currency              string                   `json:"currency"`
	PrincipalCents        int64                    `json:"principal_cents"`
	RatePercent           string                   `json:"rate_percent"`
	PeriodCount           int                      `json:"period_count"`
	StartDate             string                   `json:"start_date"`
	Description           string                   `json:"description,omitempty"`
	Status                string                   `json:"status"`
	InstallmentCents      int64                    `json:"installment_cents"`
	TotalPrincipalCents   int64                    `json:"total_principal_cents"`
	TotalInterestCents    int64                    `json:"total_interest_cents"`
	TotalCents            int64                    `json:"total_cents"`
	Rows                  []InstallmentRowResponse `json:"rows,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

// ListPlansResponse wraps the plans of one card account.
type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// PaymentResponse reports one settled installment and its ledger side
// effects.
type PaymentResponse struct {
	PlanID                  string `json:"plan_id"`
	InstallmentNumber       int    `json:"installment_number"`
	PrincipalCents          int64  `json:"principal_cents"`
	InterestCents           int64  `json:"interest_cents"`
	PrincipalTransferID     string `json:"principal_transfer_id"`
	InterestExpenseID       string `json:"interest_expense_id,omitempty"`
	PlanStatus              string `json:"plan_status"`
	RemainingPrincipalCents int64  `json:"remaining_principal_cents"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

// PlanResponseFrom maps the aggregate to its external representation,
// deriving row statuses at the given instant.
func PlanResponseFrom(plan model.InstallmentPlan, now time.Time) PlanResponse {
	rows := plan.Rows()
	rowResponses := make([]InstallmentRowResponse, 0, len(rows))
	for _, row := range rows {
		r := InstallmentRowResponse{
			Number:         row.Number,
			DueDate:        row.DueDate.Format(DateLayout),
			TotalCents:     row.TotalCents,
			PrincipalCents: row.PrincipalCents,
			InterestCents:  row.InterestCents,
			RemainingCents: row.RemainingCents,
			Status:         row.StatusAt(now).String(),
			Notes:          row.Notes,
		}
		if row.PaymentDate != nil {
			r.PaymentDate = row.PaymentDate.Format(DateLayout)
		}
		rowResponses = append(rowResponses, r)
	}

	return PlanResponse{
		ID:                    plan.ID().String(),
		CardAccountID:         plan.CardAccountID().String(),
		PurchaseTransactionID: plan.PurchaseTransactionID().String(),
		FinancingCategoryID:   plan.FinancingCategoryID().String(),
		Currency:              plan.Currency().Code(),
		PrincipalCents:        plan.PrincipalCents(),
		RatePercent:           plan.Rate().Percent(),
		PeriodCount:           plan.PeriodCount(),
		StartDate:             plan.StartDate().Format(DateLayout),
		Description:           plan.Description(),
		Status:                plan.Status().String(),
		InstallmentCents:      plan.InstallmentCents(),
		TotalPrincipalCents:   plan.TotalPrincipalCents(),
		TotalInterestCents:    plan.TotalInterestCents(),
		TotalCents:            plan.TotalCents(),
		Rows:                  rowResponses,
		CreatedAt:             plan.CreatedAt(),
		UpdatedAt:             plan.UpdatedAt(),
	}
}
