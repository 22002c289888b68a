package ledger

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

type noopPublisher struct{}

func (noopPublisher) Publish(shared.DomainEvent) error { return nil }
func (noopPublisher) PublishBatch([]shared.DomainEvent) error { return nil }

func publisherOrNoop(p shared.EventPublisher) shared.EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// publishCommitted hands events to the publisher once the transaction
// that produced them has committed. The ledger change stands even when
// delivery fails; the publisher is responsible for reporting that.
func publishCommitted(p shared.EventPublisher, events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	_ = p.PublishBatch(events)
}
