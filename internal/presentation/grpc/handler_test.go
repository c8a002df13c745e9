package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/centavo/installments/internal/application/usecase"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/model"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/internal/infrastructure/adapter"
	"github.com/centavo/installments/pkg/auth"
	"github.com/centavo/installments/pkg/events"
	"github.com/centavo/installments/pkg/money"
)

// --- Mock implementations ---

var _ port.PlanRepository = (*memPlanRepo)(nil)

type memPlanRepo struct {
	plans map[uuid.UUID]model.InstallmentPlan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[uuid.UUID]model.InstallmentPlan)}
}

func (r *memPlanRepo) Create(_ context.Context, plan model.InstallmentPlan, _ []events.OutboxEntry) error {
	r.plans[plan.ID()] = plan.ClearEvents()
	return nil
}

func (r *memPlanRepo) Save(_ context.Context, plan model.InstallmentPlan, _ []events.OutboxEntry) error {
	r.plans[plan.ID()] = plan.ClearEvents()
	return nil
}

func (r *memPlanRepo) FindByID(_ context.Context, id uuid.UUID) (model.InstallmentPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return model.InstallmentPlan{}, fault.NewNotFound("plan", id.String())
	}
	return plan, nil
}

func (r *memPlanRepo) ListByCardAccount(_ context.Context, cardAccountID uuid.UUID) ([]model.InstallmentPlan, error) {
	var out []model.InstallmentPlan
	for _, plan := range r.plans {
		if plan.CardAccountID() == cardAccountID {
			out = append(out, plan)
		}
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ...events.DomainEvent) error { return nil }

// --- Helpers ---

var (
	testCardAccountID   = uuid.MustParse("8b8e8a52-0c5f-4a2f-9d95-1f3e6a7b9c01")
	testSourceAccountID = uuid.MustParse("3f9d2a1e-6b4c-4d8e-a7f0-2c5b8e9d0a02")
)

func testAccounts() *adapter.StubAccountDirectory {
	return adapter.NewStubAccountDirectory(
		port.Account{
			ID:               testCardAccountID,
			Name:             "Visa Credit",
			Currency:         money.USD,
			Type:             port.AccountTypeLiability,
			Active:           true,
			CreditLimitCents: 50_000_00,
		},
		port.Account{
			ID:           testSourceAccountID,
			Name:         "Checking",
			Currency:     money.USD,
			Type:         port.AccountTypeAsset,
			Active:       true,
			BalanceCents: 100_000_00,
		},
	)
}

func buildTestHandler(authEnabled bool) (*InstallmentHandler, *memPlanRepo) {
	repo := newMemPlanRepo()
	accounts := testAccounts()
	ledger := adapter.NewStubLedgerPoster()
	categories := adapter.NewStubCategoryResolver()
	publisher := noopPublisher{}
	locks := usecase.NewPlanLocks()

	h := NewInstallmentHandler(
		usecase.NewCreatePlanUseCase(repo, accounts, categories, publisher),
		usecase.NewGetPlanUseCase(repo),
		usecase.NewListPlansUseCase(repo),
		usecase.NewEditPlanUseCase(repo, publisher, locks),
		usecase.NewCancelPlanUseCase(repo, publisher, locks),
		usecase.NewRecordPaymentUseCase(repo, accounts, ledger, publisher, locks),
		authEnabled,
	)
	return h, repo
}

func contextWithClaims(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID:    uuid.New(),
		AccountID: testCardAccountID,
		Roles:     roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func validCreateRequest() *CreatePlanRequest {
	return &CreatePlanRequest{
		CardAccountID:         testCardAccountID.String(),
		PurchaseTransactionID: uuid.New().String(),
		PrincipalCents:        1_200_000,
		RatePercent:           "2.00",
		PeriodCount:           12,
		StartDate:             "2025-01-15",
		Description:           "new laptop",
	}
}

func createTestPlan(t *testing.T, h *InstallmentHandler) *PlanMsg {
	t.Helper()
	resp, err := h.CreatePlan(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)
	return resp.Plan
}

// --- Tests ---

func TestCreatePlanHandler(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		_, err := h.CreatePlan(context.Background(), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("happy path returns the plan with its schedule", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		resp, err := h.CreatePlan(context.Background(), validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Plan)
		assert.Equal(t, "ACTIVE", resp.Plan.Status)
		assert.Equal(t, "2.00", resp.Plan.RatePercent)
		assert.Len(t, resp.Plan.Rows, 12)
		assert.Equal(t, "2025-02-15", resp.Plan.Rows[0].DueDate)
	})

	t.Run("malformed rate returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		req := validCreateRequest()
		req.RatePercent = "two percent"
		_, err := h.CreatePlan(context.Background(), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown card account returns NotFound", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		req := validCreateRequest()
		req.CardAccountID = uuid.New().String()
		_, err := h.CreatePlan(context.Background(), req)
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestGetPlanHandler(t *testing.T) {
	t.Run("unknown plan returns NotFound", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		_, err := h.GetPlan(context.Background(), &GetPlanRequest{PlanID: uuid.New().String()})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("happy path returns the stored plan", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		resp, err := h.GetPlan(context.Background(), &GetPlanRequest{PlanID: created.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.Plan)
		assert.Equal(t, created.ID, resp.Plan.ID)
		assert.Len(t, resp.Plan.Rows, 12)
	})
}

func TestListPlansHandler(t *testing.T) {
	h, _ := buildTestHandler(false)
	createTestPlan(t, h)

	resp, err := h.ListPlans(context.Background(), &ListPlansRequest{CardAccountID: testCardAccountID.String()})
	require.NoError(t, err)
	assert.Len(t, resp.Plans, 1)

	resp, err = h.ListPlans(context.Background(), &ListPlansRequest{CardAccountID: uuid.New().String()})
	require.NoError(t, err)
	assert.Empty(t, resp.Plans)
}

func TestEditPlanHandler(t *testing.T) {
	t.Run("rewrites the schedule under new terms", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		resp, err := h.EditPlan(context.Background(), &EditPlanRequest{
			PlanID:      created.ID,
			RatePercent: "0.00",
			PeriodCount: 6,
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00", resp.Plan.RatePercent)
		assert.Len(t, resp.Plan.Rows, 6)
	})

	t.Run("shrinking below paid rows returns FailedPrecondition", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		for n := 1; n <= 3; n++ {
			_, err := h.RecordPayment(context.Background(), &RecordPaymentRequest{
				PlanID:            created.ID,
				InstallmentNumber: n,
				PaymentDate:       "2025-02-15",
				SourceAccountID:   testSourceAccountID.String(),
			})
			require.NoError(t, err)
		}

		_, err := h.EditPlan(context.Background(), &EditPlanRequest{
			PlanID:      created.ID,
			RatePercent: "2.00",
			PeriodCount: 2,
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestCancelPlanHandler(t *testing.T) {
	h, _ := buildTestHandler(false)
	created := createTestPlan(t, h)

	resp, err := h.CancelPlan(context.Background(), &CancelPlanRequest{PlanID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Plan.Status)

	_, err = h.CancelPlan(context.Background(), &CancelPlanRequest{PlanID: created.ID})
	requireGRPCCode(t, err, codes.FailedPrecondition)
}

func TestRecordPaymentHandler(t *testing.T) {
	t.Run("settles an installment", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		resp, err := h.RecordPayment(context.Background(), &RecordPaymentRequest{
			PlanID:            created.ID,
			InstallmentNumber: 1,
			PaymentDate:       "2025-02-15",
			SourceAccountID:   testSourceAccountID.String(),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Payment)
		assert.Equal(t, 1, resp.Payment.InstallmentNumber)
		assert.NotEmpty(t, resp.Payment.PrincipalTransferID)
	})

	t.Run("paying twice returns FailedPrecondition", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		req := &RecordPaymentRequest{
			PlanID:            created.ID,
			InstallmentNumber: 1,
			PaymentDate:       "2025-02-15",
			SourceAccountID:   testSourceAccountID.String(),
		}
		_, err := h.RecordPayment(context.Background(), req)
		require.NoError(t, err)
		_, err = h.RecordPayment(context.Background(), req)
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})

	t.Run("malformed payment date returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler(false)
		created := createTestPlan(t, h)

		_, err := h.RecordPayment(context.Background(), &RecordPaymentRequest{
			PlanID:            created.ID,
			InstallmentNumber: 1,
			PaymentDate:       "15/02/2025",
			SourceAccountID:   testSourceAccountID.String(),
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})
}

func TestAuthz(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h, _ := buildTestHandler(true)
		_, err := h.CreatePlan(context.Background(), validCreateRequest())
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("cardholder cannot create plans", func(t *testing.T) {
		h, _ := buildTestHandler(true)
		_, err := h.CreatePlan(contextWithClaims(auth.RoleCardholder), validCreateRequest())
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("operator can create plans", func(t *testing.T) {
		h, _ := buildTestHandler(true)
		resp, err := h.CreatePlan(contextWithClaims(auth.RoleOperator), validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Plan)
	})
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", fault.NewValidation("rate_percent", "out of range"), codes.InvalidArgument},
		{"state", fault.NewState(fault.CodeAlreadyPaid, "installment 3 already paid"), codes.FailedPrecondition},
		{"version conflict", fault.NewState(fault.CodeVersionConflict, "stale version"), codes.Aborted},
		{"not found", fault.NewNotFound("plan", uuid.New().String()), codes.NotFound},
		{"dependency", fault.NewDependency("ledger", fmt.Errorf("connection refused")), codes.Unavailable},
		{"unclassified", fmt.Errorf("boom"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireGRPCCode(t, statusFromError(tc.err), tc.want)
		})
	}

	t.Run("wrapped faults keep their code", func(t *testing.T) {
		wrapped := fmt.Errorf("recording payment: %w", fault.NewState(fault.CodePlanNotActive, "plan is CANCELLED"))
		requireGRPCCode(t, statusFromError(wrapped), codes.FailedPrecondition)
	})
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}
