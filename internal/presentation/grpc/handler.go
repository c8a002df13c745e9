package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/application/usecase"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/pkg/auth"
)

// Compile-time assertion that InstallmentHandler implements InstallmentServiceServer.
var _ InstallmentServiceServer = (*InstallmentHandler)(nil)

// InstallmentHandler implements the gRPC InstallmentServiceServer interface.
type InstallmentHandler struct {
	UnimplementedInstallmentServiceServer
	createUC  *usecase.CreatePlanUseCase
	getUC     *usecase.GetPlanUseCase
	listUC    *usecase.ListPlansUseCase
	editUC    *usecase.EditPlanUseCase
	cancelUC  *usecase.CancelPlanUseCase
	paymentUC *usecase.RecordPaymentUseCase

	authEnabled bool
}

// NewInstallmentHandler creates a new InstallmentHandler. When authEnabled is
// false role checks are skipped; the server then runs without the auth
// interceptor and no claims reach the context.
func NewInstallmentHandler(
	createUC *usecase.CreatePlanUseCase,
	getUC *usecase.GetPlanUseCase,
	listUC *usecase.ListPlansUseCase,
	editUC *usecase.EditPlanUseCase,
	cancelUC *usecase.CancelPlanUseCase,
	paymentUC *usecase.RecordPaymentUseCase,
	authEnabled bool,
) *InstallmentHandler {
	return &InstallmentHandler{
		createUC:    createUC,
		getUC:       getUC,
		listUC:      listUC,
		editUC:      editUC,
		cancelUC:    cancelUC,
		paymentUC:   paymentUC,
		authEnabled: authEnabled,
	}
}

// ---------------------------------------------------------------------------
// Proto-aligned request/response message types. The request messages are the
// application DTOs themselves: the JSON codec puts them on the wire unchanged.
// ---------------------------------------------------------------------------

type (
	// CreatePlanRequest represents the proto CreatePlanRequest message.
	CreatePlanRequest = dto.CreatePlanRequest
	// GetPlanRequest represents the proto GetPlanRequest message.
	GetPlanRequest = dto.GetPlanRequest
	// ListPlansRequest represents the proto ListPlansRequest message.
	ListPlansRequest = dto.ListPlansRequest
	// EditPlanRequest represents the proto EditPlanRequest message.
	EditPlanRequest = dto.EditPlanRequest
	// CancelPlanRequest represents the proto CancelPlanRequest message.
	CancelPlanRequest = dto.CancelPlanRequest
	// RecordPaymentRequest represents the proto RecordPaymentRequest message.
	RecordPaymentRequest = dto.RecordPaymentRequest

	// PlanMsg represents the proto InstallmentPlan message.
	PlanMsg = dto.PlanResponse
	// PaymentMsg represents the proto PaymentResult message.
	PaymentMsg = dto.PaymentResponse
)

// CreatePlanResponse represents the proto CreatePlanResponse message.
type CreatePlanResponse struct {
	Plan *PlanMsg `json:"plan"`
}

// GetPlanResponse represents the proto GetPlanResponse message.
type GetPlanResponse struct {
	Plan *PlanMsg `json:"plan"`
}

// ListPlansResponse represents the proto ListPlansResponse message.
type ListPlansResponse struct {
	Plans []PlanMsg `json:"plans"`
}

// EditPlanResponse represents the proto EditPlanResponse message.
type EditPlanResponse struct {
	Plan *PlanMsg `json:"plan"`
}

// CancelPlanResponse represents the proto CancelPlanResponse message.
type CancelPlanResponse struct {
	Plan *PlanMsg `json:"plan"`
}

// RecordPaymentResponse represents the proto RecordPaymentResponse message.
type RecordPaymentResponse struct {
	Payment *PaymentMsg `json:"payment"`
}

// requireRole checks that the caller has at least one of the given roles.
func (h *InstallmentHandler) requireRole(ctx context.Context, roles ...string) error {
	if !h.authEnabled {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// statusFromError translates domain faults into gRPC status codes. Anything
// unclassified is reported as Internal without leaking its message.
func statusFromError(err error) error {
	var verr *fault.ValidationError
	if errors.As(err, &verr) {
		return status.Error(codes.InvalidArgument, verr.Error())
	}
	var serr *fault.StateError
	if errors.As(err, &serr) {
		if serr.Code == fault.CodeVersionConflict {
			return status.Error(codes.Aborted, serr.Error())
		}
		return status.Error(codes.FailedPrecondition, serr.Error())
	}
	var nferr *fault.NotFoundError
	if errors.As(err, &nferr) {
		return status.Error(codes.NotFound, nferr.Error())
	}
	var derr *fault.DependencyError
	if errors.As(err, &derr) {
		return status.Error(codes.Unavailable, derr.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

// CreatePlan handles the gRPC request to convert a purchase into an installment plan.
func (h *InstallmentHandler) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*CreatePlanResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.createUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &CreatePlanResponse{Plan: &resp}, nil
}

// GetPlan handles the gRPC request to retrieve a plan with its schedule.
func (h *InstallmentHandler) GetPlan(ctx context.Context, req *GetPlanRequest) (*GetPlanResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleCardholder, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.getUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetPlanResponse{Plan: &resp}, nil
}

// ListPlans handles the gRPC request to list the plans of a card account.
func (h *InstallmentHandler) ListPlans(ctx context.Context, req *ListPlansRequest) (*ListPlansResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleCardholder, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.listUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &ListPlansResponse{Plans: resp.Plans}, nil
}

// EditPlan handles the gRPC request to re-amortize the unpaid suffix of a plan.
func (h *InstallmentHandler) EditPlan(ctx context.Context, req *EditPlanRequest) (*EditPlanResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.editUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &EditPlanResponse{Plan: &resp}, nil
}

// CancelPlan handles the gRPC request to cancel an active plan.
func (h *InstallmentHandler) CancelPlan(ctx context.Context, req *CancelPlanRequest) (*CancelPlanResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.cancelUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &CancelPlanResponse{Plan: &resp}, nil
}

// RecordPayment handles the gRPC request to settle one installment.
func (h *InstallmentHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleCardholder, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.paymentUC.Execute(ctx, *req)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &RecordPaymentResponse{Payment: &resp}, nil
}
