package events

import (
	"encoding/json"
	"time"
)

// OutboxEntry is a domain event as stored in the outbox table. The outbox is
// written in the same transaction as the aggregate it belongs to, so a
// committed state change and the record of its side effects are inseparable.
type OutboxEntry struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry creates an OutboxEntry from a DomainEvent.
// The payload is produced by JSON-marshalling the event itself.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	payload, _ := json.Marshal(event)
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
		PublishedAt:   nil,
	}
}

// FromDomainEvents converts a batch of domain events to outbox entries.
func FromDomainEvents(evts []DomainEvent) []OutboxEntry {
	entries := make([]OutboxEntry, 0, len(evts))
	for _, e := range evts {
		entries = append(entries, NewOutboxEntry(e))
	}
	return entries
}
