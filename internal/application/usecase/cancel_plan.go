package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/pkg/events"
)

// CancelPlanUseCase cancels an active plan, retaining its rows as history.
type CancelPlanUseCase struct {
	planRepo  port.PlanRepository
	publisher port.EventPublisher
	locks     *PlanLocks
}

// NewCancelPlanUseCase wires dependencies.
func NewCancelPlanUseCase(
	planRepo port.PlanRepository,
	publisher port.EventPublisher,
	locks *PlanLocks,
) *CancelPlanUseCase {
	return &CancelPlanUseCase{
		planRepo:  planRepo,
		publisher: publisher,
		locks:     locks,
	}
}

// Execute transitions the plan to CANCELLED.
func (uc *CancelPlanUseCase) Execute(
	ctx context.Context,
	req dto.CancelPlanRequest,
) (dto.PlanResponse, error) {
	planID, err := parseUUID("planId", req.PlanID)
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
	plan, err = plan.Cancel(now)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("cancel plan: %w", err)
	}

	outbox := events.FromDomainEvents(plan.DomainEvents())
	if err := uc.planRepo.Save(ctx, plan, outbox); err != nil {
		return dto.PlanResponse{}, fmt.Errorf("save plan: %w", err)
	}

	publishCommitted(ctx, uc.publisher, plan.DomainEvents())

	return dto.PlanResponseFrom(plan, now), nil
}
