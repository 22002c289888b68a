package auth

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	EventTypeCardPinRevealed = "auth.card_pin_revealed"
	EventTypeStaffLoggedIn   = "auth.staff_logged_in"
)

// AuditEvent records a security relevant action for the audit trail.
type AuditEvent struct {
	eventID    string
	eventType  string
	occurredAt time.Time
	staffID    string
	subject    string
}

func newAuditEvent(eventType, staffID, subject string, at time.Time) *AuditEvent {
	return &AuditEvent{
		eventID:    uuid.NewString(),
		eventType:  eventType,
		occurredAt: at,
		staffID:    staffID,
		subject:    subject,
	}
}

func (e *AuditEvent) EventID() string { return e.eventID }
func (e *AuditEvent) EventType() string { return e.eventType }
func (e *AuditEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID is the staff member who acted.
func (e *AuditEvent) AggregateID() string { return e.staffID }

// Subject is what was acted on (a card code for PIN reveals).
func (e *AuditEvent) Subject() string { return e.subject }
