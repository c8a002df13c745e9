package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/application/usecase"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/model"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/internal/domain/valueobject"
	"github.com/centavo/installments/pkg/events"
	"github.com/centavo/installments/pkg/money"
)

// --- Mock implementations ---

type mockPlanRepository struct {
	createFunc   func(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error
	saveFunc     func(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.InstallmentPlan, error)
	listFunc     func(ctx context.Context, cardAccountID uuid.UUID) ([]model.InstallmentPlan, error)

	created []model.InstallmentPlan
	saved   []model.InstallmentPlan
	outbox  [][]events.OutboxEntry
	plans   map[uuid.UUID]model.InstallmentPlan
}

func newMockPlanRepository() *mockPlanRepository {
	return &mockPlanRepository{plans: make(map[uuid.UUID]model.InstallmentPlan)}
}

func (m *mockPlanRepository) Create(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, plan, outbox)
	}
	m.created = append(m.created, plan)
	m.outbox = append(m.outbox, outbox)
	m.plans[plan.ID()] = plan.ClearEvents()
	return nil
}

func (m *mockPlanRepository) Save(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, plan, outbox)
	}
	m.saved = append(m.saved, plan)
	m.outbox = append(m.outbox, outbox)
	m.plans[plan.ID()] = plan.ClearEvents()
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.InstallmentPlan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	plan, ok := m.plans[id]
	if !ok {
		return model.InstallmentPlan{}, fault.NewNotFound("plan", id.String())
	}
	return plan, nil
}

func (m *mockPlanRepository) ListByCardAccount(ctx context.Context, cardAccountID uuid.UUID) ([]model.InstallmentPlan, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, cardAccountID)
	}
	var out []model.InstallmentPlan
	for _, plan := range m.plans {
		if plan.CardAccountID() == cardAccountID {
			out = append(out, plan)
		}
	}
	return out, nil
}

type mockAccountDirectory struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (port.Account, error)
	accounts     map[uuid.UUID]port.Account
}

func newMockAccountDirectory(accounts ...port.Account) *mockAccountDirectory {
	m := &mockAccountDirectory{accounts: make(map[uuid.UUID]port.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountDirectory) FindByID(ctx context.Context, id uuid.UUID) (port.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	a, ok := m.accounts[id]
	if !ok {
		return port.Account{}, fault.NewNotFound("account", id.String())
	}
	return a, nil
}

type mockLedgerPoster struct {
	postTransferFunc func(ctx context.Context, t port.Transfer) (string, error)
	postExpenseFunc  func(ctx context.Context, e port.Expense) (string, error)

	transfers []port.Transfer
	expenses  []port.Expense
}

func (m *mockLedgerPoster) PostTransfer(ctx context.Context, t port.Transfer) (string, error) {
	if m.postTransferFunc != nil {
		return m.postTransferFunc(ctx, t)
	}
	m.transfers = append(m.transfers, t)
	return "transfer-" + t.Reference, nil
}

func (m *mockLedgerPoster) PostExpense(ctx context.Context, e port.Expense) (string, error) {
	if m.postExpenseFunc != nil {
		return m.postExpenseFunc(ctx, e)
	}
	m.expenses = append(m.expenses, e)
	return "expense-" + e.Reference, nil
}

type mockCategoryResolver struct {
	ensureFunc func(ctx context.Context, name string) (uuid.UUID, error)
	categoryID uuid.UUID
	calls      int
}

func (m *mockCategoryResolver) EnsureFinancingCategory(ctx context.Context, name string) (uuid.UUID, error) {
	m.calls++
	if m.ensureFunc != nil {
		return m.ensureFunc(ctx, name)
	}
	return m.categoryID, nil
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
	published   []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

// --- Shared fixtures ---

var (
	cardAccountID   = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	sourceAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000012")
	purchaseID      = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	categoryID      = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)

func cardAccount() port.Account {
	return port.Account{
		ID:               cardAccountID,
		Name:             "Visa Platinum",
		Currency:         money.USD,
		Type:             port.AccountTypeLiability,
		Active:           true,
		BalanceCents:     250_000,
		CreditLimitCents: 1_000_000,
	}
}

func sourceAccount(c money.Currency) port.Account {
	return port.Account{
		ID:       sourceAccountID,
		Name:     "Checking",
		Currency: c,
		Type:     port.AccountTypeAsset,
		Active:   true,
	}
}

func seedPlan(t *testing.T, repo *mockPlanRepository, principal int64, bps int64, periods int) model.InstallmentPlan {
	t.Helper()
	rate, err := valueobject.NewRateBps(bps)
	require.NoError(t, err)
	plan, err := model.NewInstallmentPlan(
		cardAccountID, purchaseID, categoryID,
		money.USD, principal, rate, periods,
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), "",
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	plan = plan.ClearEvents()
	repo.plans[plan.ID()] = plan
	return plan
}

func validCreateRequest() dto.CreatePlanRequest {
	return dto.CreatePlanRequest{
		CardAccountID:         cardAccountID.String(),
		PurchaseTransactionID: purchaseID.String(),
		PrincipalCents:        1_200_000,
		RatePercent:           "2.00",
		PeriodCount:           12,
		StartDate:             "2025-01-15",
		Description:           "new laptop",
	}
}

// --- Tests ---

func TestCreatePlan_Execute(t *testing.T) {
	t.Run("creates an active plan with its full schedule", func(t *testing.T) {
		repo := newMockPlanRepository()
		accounts := newMockAccountDirectory(cardAccount())
		categories := &mockCategoryResolver{categoryID: categoryID}
		publisher := &mockEventPublisher{}

		uc := usecase.NewCreatePlanUseCase(repo, accounts, categories, publisher)
		resp, err := uc.Execute(context.Background(), validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Equal(t, "USD", resp.Currency, "plan currency comes from the card account")
		assert.Equal(t, int64(1_200_000), resp.PrincipalCents)
		assert.Equal(t, "2.00", resp.RatePercent)
		assert.Len(t, resp.Rows, 12)
		assert.Equal(t, "2025-02-15", resp.Rows[0].DueDate)
		assert.Equal(t, int64(0), resp.Rows[11].RemainingCents)
		assert.Equal(t, categoryID.String(), resp.FinancingCategoryID)

		require.Len(t, repo.created, 1)
		assert.Equal(t, 1, categories.calls)

		// The plan, its rows and the outbox travel in one repository call.
		require.Len(t, repo.outbox, 1)
		require.Len(t, repo.outbox[0], 1)
		assert.Equal(t, "installments.plan.created", repo.outbox[0][0].EventType)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, "installments.plan.created", publisher.published[0].EventType())
	})

	t.Run("rejects a non-liability card account", func(t *testing.T) {
		asset := cardAccount()
		asset.Type = port.AccountTypeAsset
		repo := newMockPlanRepository()

		uc := usecase.NewCreatePlanUseCase(repo, newMockAccountDirectory(asset), &mockCategoryResolver{categoryID: categoryID}, &mockEventPublisher{})
		_, err := uc.Execute(context.Background(), validCreateRequest())

		assert.True(t, fault.IsValidation(err))
		assert.Empty(t, repo.created)
	})

	t.Run("rejects an inactive card account", func(t *testing.T) {
		inactive := cardAccount()
		inactive.Active = false

		uc := usecase.NewCreatePlanUseCase(newMockPlanRepository(), newMockAccountDirectory(inactive), &mockCategoryResolver{categoryID: categoryID}, &mockEventPublisher{})
		_, err := uc.Execute(context.Background(), validCreateRequest())

		assert.True(t, fault.IsValidation(err))
	})

	t.Run("reports a missing card account", func(t *testing.T) {
		uc := usecase.NewCreatePlanUseCase(newMockPlanRepository(), newMockAccountDirectory(), &mockCategoryResolver{categoryID: categoryID}, &mockEventPublisher{})
		_, err := uc.Execute(context.Background(), validCreateRequest())

		assert.True(t, fault.IsNotFound(err))
	})

	t.Run("rejects malformed input before touching collaborators", func(t *testing.T) {
		categories := &mockCategoryResolver{categoryID: categoryID}
		uc := usecase.NewCreatePlanUseCase(newMockPlanRepository(), newMockAccountDirectory(cardAccount()), categories, &mockEventPublisher{})

		bad := validCreateRequest()
		bad.CardAccountID = "not-a-uuid"
		_, err := uc.Execute(context.Background(), bad)
		assert.True(t, fault.IsValidation(err))

		bad = validCreateRequest()
		bad.RatePercent = "2.005"
		_, err = uc.Execute(context.Background(), bad)
		assert.True(t, fault.IsValidation(err))

		bad = validCreateRequest()
		bad.StartDate = "15/01/2025"
		_, err = uc.Execute(context.Background(), bad)
		assert.True(t, fault.IsValidation(err))

		assert.Equal(t, 0, categories.calls)
	})

	t.Run("surfaces a repository failure", func(t *testing.T) {
		repo := newMockPlanRepository()
		repo.createFunc = func(context.Context, model.InstallmentPlan, []events.OutboxEntry) error {
			return errors.New("connection reset")
		}

		uc := usecase.NewCreatePlanUseCase(repo, newMockAccountDirectory(cardAccount()), &mockCategoryResolver{categoryID: categoryID}, &mockEventPublisher{})
		_, err := uc.Execute(context.Background(), validCreateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist plan")
	})
}
