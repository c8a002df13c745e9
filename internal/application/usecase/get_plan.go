package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/port"
)

// GetPlanUseCase retrieves one plan with its schedule. Row statuses are
// derived at read time.
type GetPlanUseCase struct {
	planRepo port.PlanRepository
}

// NewGetPlanUseCase wires dependencies.
func NewGetPlanUseCase(planRepo port.PlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo}
}

// Execute loads the plan.
func (uc *GetPlanUseCase) Execute(
	ctx context.Context,
	req dto.GetPlanRequest,
) (dto.PlanResponse, error) {
	planID, err := parseUUID("planId", req.PlanID)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	plan, err := uc.planRepo.FindByID(ctx, planID)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("find plan: %w", err)
	}

	return dto.PlanResponseFrom(plan, time.Now().UTC()), nil
}
