package logging

import (
	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// EventPublisher writes committed domain events to the audit log.
type EventPublisher struct {
	log *zap.Logger
}

func NewEventPublisher(log *zap.Logger) *EventPublisher {
	return &EventPublisher{log: log.Named("audit")}
}

func (p *EventPublisher) Publish(event shared.DomainEvent) error {
	p.log.Info(event.EventType(), eventFields(event)...)
	return nil
}

func (p *EventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

// subjectEvent is implemented by audit events that act on something
// other than their aggregate.
type subjectEvent interface {
	Subject() string
}

func eventFields(event shared.DomainEvent) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.EventID()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *giftcard.CardActivatedEvent:
		if !e.CustomerID().IsEmpty() {
			fields = append(fields, zap.String("customer_id", e.CustomerID().String()))
		}
	case *giftcard.BalanceChangedEvent:
		fields = append(fields,
			zap.String("transaction_id", e.TransactionID().String()),
			zap.String("amount", e.Amount().String()),
			zap.String("balance_after", e.BalanceAfter().String()),
		)
		if !e.StaffID().IsEmpty() {
			fields = append(fields, zap.String("staff_id", e.StaffID().String()))
		}
	case *giftcard.BalanceReconciledEvent:
		fields = append(fields,
			zap.String("previous", e.Previous().String()),
			zap.String("replayed", e.Replayed().String()),
			zap.String("reason", e.Reason()),
		)
	case subjectEvent:
		fields = append(fields, zap.String("subject", e.Subject()))
	}
	return fields
}

var _ shared.EventPublisher = (*EventPublisher)(nil)
