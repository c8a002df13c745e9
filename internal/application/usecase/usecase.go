// Package usecase contains the application services orchestrating the
// installment engine: each usecase validates input, drives the aggregate,
// persists atomically and publishes committed events.
package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/centavo/installments/internal/domain/fault"
	"github.com/centavo/installments/internal/domain/port"
	"github.com/centavo/installments/internal/domain/valueobject"
	"github.com/centavo/installments/pkg/events"
)

// FinancingCategoryName is the expense category under which interest
// postings are grouped. Resolved once per plan creation, idempotently.
const FinancingCategoryName = "Financing"

func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fault.NewValidation(field, "must be a UUID, got %q", value)
	}
	return id, nil
}

func parseRate(field, value string) (valueobject.Rate, error) {
	rate, err := valueobject.ParseRatePercent(value)
	if err != nil {
		return valueobject.Rate{}, fault.NewValidation(field, "%v", err)
	}
	return rate, nil
}

// publishCommitted broadcasts events that are already durable in the outbox.
// A broker failure here is logged, not surfaced: the commit stands and the
// outbox carries the events for redelivery.
func publishCommitted(ctx context.Context, publisher port.EventPublisher, evts []events.DomainEvent) {
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		slog.WarnContext(ctx, "event publish failed, outbox retains events",
			"error", err, "event_count", len(evts))
	}
}
