package auth

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// Session is the explicit proof that a staff member logged in. It is
// passed to every protected operation instead of living in ambient
// client storage.
type Session struct {
	StaffID   string
	Name      string
	Role      staff.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == staff.RoleAdmin
}

// SessionClaims is what a token carries.
type SessionClaims struct {
	StaffID   string
	Name      string
	Role      staff.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies session tokens. Implemented by
// infrastructure (JWT).
type TokenIssuer interface {
	Issue(claims SessionClaims) (string, error)
	// Parse returns an error for malformed, tampered or expired tokens.
	Parse(token string) (SessionClaims, error)
}

// RequireRole is the capability check applied at the routing boundary
// before a protected operation runs.
//
// Errors:
//   - staff.ErrAccessDenied: no session
//   - staff.ErrForbidden: the session's role does not satisfy required
func RequireRole(session *Session, required staff.Role) error {
	if session == nil || session.StaffID == "" {
		return staff.ErrAccessDenied
	}
	if !session.Role.Satisfies(required) {
		return staff.ErrForbidden.WithContext("staff_id", session.StaffID, "role", session.Role.String(), "required", required.String())
	}
	return nil
}
