package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/model"
	"github.com/centavo/installments/internal/domain/valueobject"
	"github.com/centavo/installments/pkg/events"
	"github.com/centavo/installments/pkg/money"
	pgutil "github.com/centavo/installments/pkg/postgres"
)

// PlanRepo implements port.PlanRepository on PostgreSQL. Plan, rows and
// outbox travel in one transaction in both Create and Save.
type PlanRepo struct {
	pool *pgxpool.Pool
}

// NewPlanRepo creates a new PostgreSQL-backed plan repository.
func NewPlanRepo(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

// Create persists a new plan with its full schedule.
func (r *PlanRepo) Create(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error {
	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		planQuery := `
			INSERT INTO installment_plans (
				id, card_account_id, purchase_transaction_id, financing_category_id,
				currency, principal_cents, rate_bps, period_count,
				start_date, description, status, version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		`
		_, err := tx.Exec(ctx, planQuery,
			plan.ID(), plan.CardAccountID(), plan.PurchaseTransactionID(), plan.FinancingCategoryID(),
			plan.Currency().Code(), plan.PrincipalCents(), plan.Rate().Bps(), plan.PeriodCount(),
			plan.StartDate(), plan.Description(), plan.Status().String(),
			plan.Version(), plan.CreatedAt(), plan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert plan: %w", err)
		}

		if err := upsertRows(ctx, tx, plan); err != nil {
			return err
		}
		return insertOutbox(ctx, tx, outbox)
	})
}

// Save persists a mutated plan under its optimistic version. A stale version
// is a state conflict, not a silent overwrite.
func (r *PlanRepo) Save(ctx context.Context, plan model.InstallmentPlan, outbox []events.OutboxEntry) error {
	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		planQuery := `
			UPDATE installment_plans SET
				rate_bps     = $3,
				period_count = $4,
				description  = $5,
				status       = $6,
				version      = installment_plans.version + 1,
				updated_at   = $7
			WHERE id = $1 AND version = $2
		`
		tag, err := tx.Exec(ctx, planQuery,
			plan.ID(), plan.Version(),
			plan.Rate().Bps(), plan.PeriodCount(), plan.Description(),
			plan.Status().String(), plan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("update plan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fault.NewState(fault.CodeVersionConflict,
				"plan %s was modified concurrently (version %d is stale)", plan.ID(), plan.Version())
		}

		if err := upsertRows(ctx, tx, plan); err != nil {
			return err
		}

		// An edit may have shortened the schedule.
		if _, err := tx.Exec(ctx,
			`DELETE FROM installment_rows WHERE plan_id = $1 AND installment_no > $2`,
			plan.ID(), plan.PeriodCount(),
		); err != nil {
			return fmt.Errorf("trim rows: %w", err)
		}

		return insertOutbox(ctx, tx, outbox)
	})
}

// FindByID retrieves a plan and its schedule by id.
func (r *PlanRepo) FindByID(ctx context.Context, id uuid.UUID) (model.InstallmentPlan, error) {
	query := selectPlanQuery + ` WHERE id = $1`
	plan, err := scanPlanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InstallmentPlan{}, fault.NewNotFound("plan", id.String())
		}
		return model.InstallmentPlan{}, err
	}

	rows, err := loadRows(ctx, r.pool, plan.ID())
	if err != nil {
		return model.InstallmentPlan{}, err
	}

	return reconstructWithRows(plan, rows), nil
}

// ListByCardAccount retrieves all plans of a card account, newest first.
func (r *PlanRepo) ListByCardAccount(ctx context.Context, cardAccountID uuid.UUID) ([]model.InstallmentPlan, error) {
	query := selectPlanQuery + ` WHERE card_account_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, cardAccountID)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []model.InstallmentPlan
	for rows.Next() {
		plan, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}

	for i, plan := range plans {
		scheduleRows, err := loadRows(ctx, r.pool, plan.ID())
		if err != nil {
			return nil, err
		}
		plans[i] = reconstructWithRows(plan, scheduleRows)
	}
	return plans, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectPlanQuery = `
	SELECT id, card_account_id, purchase_transaction_id, financing_category_id,
	       currency, principal_cents, rate_bps, period_count,
	       start_date, description, status, version, created_at, updated_at
	FROM installment_plans`

type scannable interface {
	Scan(dest ...any) error
}

func scanPlanRow(s scannable) (model.InstallmentPlan, error) {
	var (
		id, cardAccountID, purchaseID, categoryID uuid.UUID
		currencyCode                              string
		principalCents                            int64
		rateBps                                   int64
		periodCount                               int
		startDate                                 time.Time
		description                               string
		statusStr                                 string
		version                                   int
		createdAt, updatedAt                      time.Time
	)

	err := s.Scan(
		&id, &cardAccountID, &purchaseID, &categoryID,
		&currencyCode, &principalCents, &rateBps, &periodCount,
		&startDate, &description, &statusStr, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InstallmentPlan{}, err
		}
		return model.InstallmentPlan{}, fmt.Errorf("scan plan: %w", err)
	}

	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return model.InstallmentPlan{}, fmt.Errorf("parse currency: %w", err)
	}
	rate, err := valueobject.NewRateBps(rateBps)
	if err != nil {
		return model.InstallmentPlan{}, fmt.Errorf("parse rate: %w", err)
	}
	status, err := valueobject.NewPlanStatus(statusStr)
	if err != nil {
		return model.InstallmentPlan{}, fmt.Errorf("parse plan status: %w", err)
	}

	return model.ReconstructPlan(
		id, cardAccountID, purchaseID, categoryID,
		currency, principalCents, rate, periodCount,
		startDate, description, status, nil,
		version, createdAt, updatedAt,
	), nil
}

func reconstructWithRows(plan model.InstallmentPlan, rows []model.InstallmentRow) model.InstallmentPlan {
	return model.ReconstructPlan(
		plan.ID(), plan.CardAccountID(), plan.PurchaseTransactionID(), plan.FinancingCategoryID(),
		plan.Currency(), plan.PrincipalCents(), plan.Rate(), plan.PeriodCount(),
		plan.StartDate(), plan.Description(), plan.Status(), rows,
		plan.Version(), plan.CreatedAt(), plan.UpdatedAt(),
	)
}

func loadRows(ctx context.Context, q pgutil.Querier, planID uuid.UUID) ([]model.InstallmentRow, error) {
	query := `
		SELECT installment_no, due_date, total_cents, principal_cents, interest_cents,
		       remaining_cents, status, payment_date, notes
		FROM installment_rows
		WHERE plan_id = $1
		ORDER BY installment_no
	`
	rows, err := q.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("query installment rows: %w", err)
	}
	defer rows.Close()

	var out []model.InstallmentRow
	for rows.Next() {
		var (
			row       model.InstallmentRow
			statusStr string
		)
		if err := rows.Scan(
			&row.Number, &row.DueDate, &row.TotalCents, &row.PrincipalCents,
			&row.InterestCents, &row.RemainingCents, &statusStr, &row.PaymentDate, &row.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan installment row: %w", err)
		}
		row.Status, err = valueobject.NewRowStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse row status: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func upsertRows(ctx context.Context, tx pgx.Tx, plan model.InstallmentPlan) error {
	query := `
		INSERT INTO installment_rows (
			plan_id, installment_no, due_date, total_cents, principal_cents,
			interest_cents, remaining_cents, status, payment_date, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (plan_id, installment_no) DO UPDATE SET
			due_date        = EXCLUDED.due_date,
			total_cents     = EXCLUDED.total_cents,
			principal_cents = EXCLUDED.principal_cents,
			interest_cents  = EXCLUDED.interest_cents,
			remaining_cents = EXCLUDED.remaining_cents,
			status          = EXCLUDED.status,
			payment_date    = EXCLUDED.payment_date,
			notes           = EXCLUDED.notes
	`
	for _, row := range plan.Rows() {
		if _, err := tx.Exec(ctx, query,
			plan.ID(), row.Number, row.DueDate, row.TotalCents, row.PrincipalCents,
			row.InterestCents, row.RemainingCents, row.Status.String(), row.PaymentDate, row.Notes,
		); err != nil {
			return fmt.Errorf("upsert installment row %d: %w", row.Number, err)
		}
	}
	return nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, outbox []events.OutboxEntry) error {
	query := `
		INSERT INTO outbox_events (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING
	`
	for _, entry := range outbox {
		if _, err := tx.Exec(ctx, query,
			entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert outbox event %s: %w", entry.ID, err)
		}
	}
	return nil
}
