package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/port"
)

// ListPlansUseCase lists the plans of one card account.
type ListPlansUseCase struct {
	planRepo port.PlanRepository
}

// NewListPlansUseCase wires dependencies.
func NewListPlansUseCase(planRepo port.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

// Execute lists the account's plans, newest first per the repository order.
func (uc *ListPlansUseCase) Execute(
	ctx context.Context,
	req dto.ListPlansRequest,
) (dto.ListPlansResponse, error) {
	cardAccountID, err := parseUUID("cardAccountId", req.CardAccountID)
	if err != nil {
		return dto.ListPlansResponse{}, err
	}

	plans, err := uc.planRepo.ListByCardAccount(ctx, cardAccountID)
	if err != nil {
		return dto.ListPlansResponse{}, fmt.Errorf("list plans: %w", err)
	}

	now := time.Now().UTC()
	out := dto.ListPlansResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, plan := range plans {
		out.Plans = append(out.Plans, dto.PlanResponseFrom(plan, now))
	}
	return out, nil
}
