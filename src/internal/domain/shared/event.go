package shared

import "time"

// DomainEvent is something that happened to an aggregate.
type DomainEvent interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// EventPublisher is defined here and implemented by infrastructure.
// Events are published after the transaction that produced them commits.
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}
