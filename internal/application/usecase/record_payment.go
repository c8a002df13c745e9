package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/installments/internal/application/dto"
	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/pkg/events"
)

// RecordPaymentUseCase settles one installment row: it validates every
// precondition, posts the ledger side effects, then persists the settled row
// atomically. A precondition failure aborts before anything is posted.
type RecordPaymentUseCase struct {
	planRepo  port.PlanRepository
	accounts  port.AccountDirectory
	ledger    port.LedgerPoster
	publisher port.EventPublisher
	locks     *PlanLocks
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	planRepo port.PlanRepository,
	accounts port.AccountDirectory,
	ledger port.LedgerPoster,
	publisher port.EventPublisher,
	locks *PlanLocks,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		planRepo:  planRepo,
		accounts:  accounts,
		ledger:    ledger,
		publisher: publisher,
		locks:     locks,
	}
}

// Execute applies one payment. The principal moves source -> card account;
// interest, when present, is posted as a separate expense under the plan's
// financing category so it shows up as spending while the principal transfer
// does not.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.PaymentResponse, error) {
	planID, err := parseUUID("planId", req.PlanID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	sourceAccountID, err := parseUUID("sourceAccountId", req.SourceAccountID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	paymentDate, err := dto.ParseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	unlock := uc.locks.Lock(planID)
	defer unlock()

	// 1. Load the plan.
	plan, err := uc.planRepo.FindByID(ctx, planID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find plan: %w", err)
	}

	// 2. Resolve the source account and enforce the currency match.
	source, err := uc.accounts.FindByID(ctx, sourceAccountID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find source account: %w", err)
	}
	if !source.Active {
		return dto.PaymentResponse{}, fault.NewValidation("sourceAccountId", "account %s is inactive", sourceAccountID)
	}
	if source.Currency.Code() != plan.Currency().Code() {
		return dto.PaymentResponse{}, fault.NewState(fault.CodeCurrencyMismatch,
			"source account currency %s does not match plan currency %s",
			source.Currency.Code(), plan.Currency().Code())
	}

	// 3. Settle the row in memory. This validates the plan state and the
	// row; nothing external has been touched yet.
	now := time.Now().UTC()
	updated, err := plan.RecordPayment(req.InstallmentNumber, paymentDate, sourceAccountID, req.Notes, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("record payment: %w", err)
	}
	row, ok := updated.Row(req.InstallmentNumber)
	if !ok {
		return dto.PaymentResponse{}, fault.NewInternal("settled row %d disappeared", req.InstallmentNumber)
	}

	// 4. Post the ledger side effects. References are deterministic per
	// (plan, installment, leg) so the ledger can deduplicate a resend.
	transferRef := fmt.Sprintf("plan/%s/installment/%d/principal", planID, req.InstallmentNumber)
	transferID, err := uc.ledger.PostTransfer(ctx, port.Transfer{
		FromAccountID: sourceAccountID,
		ToAccountID:   plan.CardAccountID(),
		AmountCents:   row.PrincipalCents,
		Date:          paymentDate,
		Reference:     transferRef,
	})
	if err != nil {
		return dto.PaymentResponse{}, fault.NewDependency("ledger", fmt.Errorf("post principal transfer: %w", err))
	}

	var expenseID string
	if row.InterestCents > 0 {
		expenseRef := fmt.Sprintf("plan/%s/installment/%d/interest", planID, req.InstallmentNumber)
		expenseID, err = uc.ledger.PostExpense(ctx, port.Expense{
			AccountID:   sourceAccountID,
			CategoryID:  plan.FinancingCategoryID(),
			AmountCents: row.InterestCents,
			Date:        paymentDate,
			Note:        fmt.Sprintf("installment %d/%d interest", req.InstallmentNumber, updated.PeriodCount()),
			Reference:   expenseRef,
		})
		if err != nil {
			return dto.PaymentResponse{}, fault.NewDependency("ledger", fmt.Errorf("post interest expense: %w", err))
		}
	}

	// 5. Persist the settled row, plan state and outbox in one transaction.
	outbox := events.FromDomainEvents(updated.DomainEvents())
	if err := uc.planRepo.Save(ctx, updated, outbox); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save plan: %w", err)
	}

	// 6. Publish post-commit.
	publishCommitted(ctx, uc.publisher, updated.DomainEvents())

	return dto.PaymentResponse{
		PlanID:                  planID.String(),
		InstallmentNumber:       req.InstallmentNumber,
		PrincipalCents:          row.PrincipalCents,
		InterestCents:           row.InterestCents,
		PrincipalTransferID:     transferID,
		InterestExpenseID:       expenseID,
		PlanStatus:              updated.Status().String(),
		RemainingPrincipalCents: updated.RemainingPrincipalCents(),
	}, nil
}
