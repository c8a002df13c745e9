// Package port declares the boundary interfaces the installment engine
// consumes. Implementations live in infrastructure.
package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/centavo/installments/internal/domain/model"
	"github.com/centavo/installments/pkg/events"
)

// PlanRepository is the persistence surface for installment plans. Create and
// Save persist the plan, all of its rows and the given outbox entries in a
// single transaction, never partially. Save additionally enforces the
// aggregate's optimistic version.
type PlanRepository interface {
	Create(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error
	Save(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (model.InstallmentPlan, error)
	ListByCardAccount(ctx context.Context, cardAccountID uuid.UUID) ([]model.InstallmentPlan, error)
}
