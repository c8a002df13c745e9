package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/model"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/pkg/events"
)

// CreatePlanUseCase converts a credit-card purchase into an installment plan
// with its full amortization schedule.
type CreatePlanUseCase struct {
	planRepo   port.PlanRepository
	accounts   port.AccountDirectory
	categories port.CategoryResolver
	publisher  port.EventPublisher
}

// NewCreatePlanUseCase wires dependencies.
func NewCreatePlanUseCase(
	planRepo port.PlanRepository,
	accounts port.AccountDirectory,
	categories port.CategoryResolver,
	publisher port.EventPublisher,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:   planRepo,
		accounts:   accounts,
		categories: categories,
		publisher:  publisher,
	}
}

// Execute validates the terms, resolves the collaborating card account and
// financing category, and persists the plan with all rows atomically.
func (uc *CreatePlanUseCase) Execute(
	ctx context.Context,
	req dto.CreatePlanRequest,
) (dto.PlanResponse, error) {
	cardAccountID, err := parseUUID("cardAccountId", req.CardAccountID)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	purchaseID, err := parseUUID("purchaseTransactionId", req.PurchaseTransactionID)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	rate, err := parseRate("ratePercent", req.RatePercent)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	startDate, err := dto.ParseDate("startDate", req.StartDate)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	// 1. Resolve the credit-card account; its currency becomes the plan's.
	account, err := uc.accounts.FindByID(ctx, cardAccountID)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("find card account: %w", err)
	}
	if !account.Active {
		return dto.PlanResponse{}, fault.NewValidation("cardAccountId", "account %s is inactive", cardAccountID)
	}
	if account.Type != port.AccountTypeLiability {
		return dto.PlanResponse{}, fault.NewValidation("cardAccountId", "account %s is not a liability account", cardAccountID)
	}

	// 2. Ensure the financing category exists.
	categoryID, err := uc.categories.EnsureFinancingCategory(ctx, FinancingCategoryName)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("ensure financing category: %w", err)
	}

	// 3. Build the aggregate with its full schedule.
	now := time.Now().UTC()
	plan, err := model.NewInstallmentPlan(
		cardAccountID, purchaseID, categoryID,
		account.Currency, req.PrincipalCents, rate, req.PeriodCount,
		startDate, req.Description, now,
	)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("create plan: %w", err)
	}

	// 4. Persist plan, rows and outbox in one transaction.
	outbox := events.FromDomainEvents(plan.DomainEvents())
	if err := uc.planRepo.Create(ctx, plan, outbox); err != nil {
		return dto.PlanResponse{}, fmt.Errorf("persist plan: %w", err)
	}

	// 5. Publish post-commit.
	publishCommitted(ctx, uc.publisher, plan.DomainEvents())

	return dto.PlanResponseFrom(plan, now), nil
}
