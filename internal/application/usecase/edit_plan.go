package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/pkg/events"
)

// EditPlanUseCase re-amortizes the unpaid suffix of an active plan under new
// terms, leaving the paid prefix untouched.
type EditPlanUseCase struct {
	planRepo  port.PlanRepository
	publisher port.EventPublisher
	locks     *PlanLocks
}

// NewEditPlanUseCase wires dependencies.
func NewEditPlanUseCase(
	planRepo port.PlanRepository,
	publisher port.EventPublisher,
	locks *PlanLocks,
) *EditPlanUseCase {
	return &EditPlanUseCase{
		planRepo:  planRepo,
		publisher: publisher,
		locks:     locks,
	}
}

// Execute applies the new terms to the plan's future rows.
func (uc *EditPlanUseCase) Execute(
	ctx context.Context,
	req dto.EditPlanRequest,
) (dto.PlanResponse, error) {
	planID, err := parseUUID("planId", req.PlanID)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	rate, err := parseRate("ratePercent", req.RatePercent)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	unlock := uc.locks.Lock(planID)
	defer unlock()

	plan, err := uc.planRepo.FindByID(ctx, planID)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("find plan: %w", err)
	}

	now := time.Now().UTC()
	plan, err = plan.Edit(rate, req.PeriodCount, req.Description, now)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("edit plan: %w", err)
	}

	outbox := events.FromDomainEvents(plan.DomainEvents())
	if err := uc.planRepo.Save(ctx, plan, outbox); err != nil {
		return dto.PlanResponse{}, fmt.Errorf("save plan: %w", err)
	}

	publishCommitted(ctx, uc.publisher, plan.DomainEvents())

	return dto.PlanResponseFrom(plan, now), nil
}
