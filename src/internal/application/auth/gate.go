package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ===========================
// Authorization Gate
// ===========================

// Gate authenticates staff and guards the sensitive card actions.
type Gate struct {
	staffRepo staff.StaffRepository
	cards     giftcard.CardRepository
	hasher    staff.PinHasher
	tokens    TokenIssuer
	events    shared.EventPublisher
	log       *zap.Logger
	ttl       time.Duration
	now       func() time.Time
}

// NewGate wires the gate. ttl is the lifetime of issued sessions. A nil
// log discards audit delivery failures.
func NewGate(
	staffRepo staff.StaffRepository,
	cards giftcard.CardRepository,
	hasher staff.PinHasher,
	tokens TokenIssuer,
	events shared.EventPublisher,
	log *zap.Logger,
	ttl time.Duration,
) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{
		staffRepo: staffRepo,
		cards:     cards,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
		log:       log,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate logs a staff member in by PIN.
//
// Errors:
//   - staff.ErrAccessDenied: malformed or unknown PIN
//   - shared.ErrStoreUnavailable and other store failures, unchanged
func (g *Gate) Authenticate(ctx context.Context, pin string) (*Session, error) {
	member, err := staff.FindByPIN(shared.ReadOnly(ctx), g.staffRepo, g.hasher, pin)
	if err != nil {
		return nil, denyUnlessInfrastructure(err)
	}

	now := g.now()
	claims := SessionClaims{
		StaffID:   member.ID().String(),
		Name:      member.Name(),
		Role:      member.Role(),
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}
	token, err := g.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	g.audit(newAuditEvent(EventTypeStaffLoggedIn, claims.StaffID, claims.Name, now))
	return sessionFromClaims(claims, token), nil
}

// ParseSession restores a session from its token. The staff record is
// re-read so a deactivated member or a changed role takes effect at once.
//
// Errors: staff.ErrAccessDenied for bad, expired or revoked tokens.
func (g *Gate) ParseSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, staff.ErrAccessDenied
	}
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, staff.ErrAccessDenied.WithContext("reason", err.Error())
	}

	id, err := staff.StaffIDFromString(claims.StaffID)
	if err != nil {
		return nil, staff.ErrAccessDenied
	}
	member, err := g.staffRepo.FindByID(shared.ReadOnly(ctx), id)
	if err != nil {
		return nil, denyUnlessInfrastructure(err)
	}

	claims.Name = member.Name()
	claims.Role = member.Role()
	return sessionFromClaims(claims, token), nil
}

// RevealCardPin returns a card's 4-digit PIN to a staff member who
// re-enters their own PIN. Every way of failing (bad staff PIN, unknown
// card, malformed input) yields the same staff.ErrAccessDenied so the
// response reveals nothing about which part was wrong.
func (g *Gate) RevealCardPin(ctx context.Context, cardCode, staffPin string) (string, error) {
	member, err := staff.FindByPIN(shared.ReadOnly(ctx), g.staffRepo, g.hasher, staffPin)
	if err != nil {
		return "", denyUnlessInfrastructure(err)
	}

	code, err := giftcard.NewCardCode(cardCode)
	if err != nil {
		return "", staff.ErrAccessDenied
	}
	card, err := g.cards.FindByCode(shared.ReadOnly(ctx), code)
	if err != nil {
		return "", denyUnlessInfrastructure(err)
	}

	g.audit(newAuditEvent(EventTypeCardPinRevealed, member.ID().String(), code.String(), g.now()))
	return card.PIN().String(), nil
}

func (g *Gate) audit(event *AuditEvent) {
	if g.events == nil {
		return
	}
	if err := g.events.Publish(event); err != nil {
		g.log.Error("failed to publish audit event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID()),
			zap.String("staff_id", event.AggregateID()),
			zap.String("subject", event.Subject()),
			zap.Error(err),
		)
	}
}

func sessionFromClaims(claims SessionClaims, token string) *Session {
	return &Session{
		StaffID:   claims.StaffID,
		Name:      claims.Name,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
		Token:     token,
	}
}

// denyUnlessInfrastructure collapses domain failures into the uniform
// ErrAccessDenied. Store outages are passed through so callers can tell
// "try again" from "wrong PIN".
func denyUnlessInfrastructure(err error) error {
	if errors.Is(err, shared.ErrStoreUnavailable) || errors.Is(err, shared.ErrRepositoryError) {
		return err
	}
	return staff.ErrAccessDenied
}
