package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/centavo/installments/pkg/events"
	"github.com/centavo/installments/pkg/money"
)

// AccountType distinguishes asset from liability accounts. Credit-card
// accounts are liabilities.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
)

// Account is the read model returned by the external account directory.
type Account struct {
	ID               uuid.UUID
	Name             string
	Currency         money.Currency
	Type             AccountType
	Active           bool
	BalanceCents     int64
	CreditLimitCents int64
}

// AvailableCreditCents returns the credit still drawable on a liability
// account. The balance of a liability account is the amount owed.
func (a Account) AvailableCreditCents() int64 {
	return a.CreditLimitCents - a.BalanceCents
}

// AccountDirectory resolves accounts owned by the external account store.
type AccountDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
}

// Transfer is a principal movement handed to the external ledger. Reference
// is deterministic per (plan, installment, leg) so the ledger can
// deduplicate a re-sent posting.
type Transfer struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	AmountCents   int64
	Date          time.Time
	Reference     string
}

// Expense is a categorized cost entry handed to the external ledger.
type Expense struct {
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	AmountCents int64
	Date        time.Time
	Note        string
	Reference   string
}

// LedgerPoster posts ledger entries and returns their durable identifiers.
// The engine records the identifiers for traceability but never interprets
// ledger internals.
type LedgerPoster interface {
	PostTransfer(ctx context.Context, t Transfer) (string, error)
	PostExpense(ctx context.Context, e Expense) (string, error)
}

// CategoryResolver ensures the financing expense category exists.
// EnsureFinancingCategory is idempotent.
type CategoryResolver interface {
	EnsureFinancingCategory(ctx context.Context, name string) (uuid.UUID, error)
}

// EventPublisher broadcasts committed domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
