package staff

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// StaffID identifies a staff member.
type StaffID = shared.StaffID

// NewStaffID generates a new StaffID.
func NewStaffID() StaffID {
	return shared.NewEntityID[shared.StaffMarker]()
}

// StaffIDFromString parses a StaffID.
func StaffIDFromString(value string) (StaffID, error) {
	return shared.EntityIDFromString[shared.StaffMarker](value, ErrInvalidStaffID)
}

// ===========================
// Role
// ===========================

// Role is the permission level of a staff member.
type Role string

const (
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

// ParseRole accepts "cashier" or "admin" in any case.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCashier:
		return RoleCashier, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole.WithContext("input", raw)
}

func (r Role) String() string { return string(r) }

// Satisfies reports whether r meets required. Admin is a superset of
// cashier.
func (r Role) Satisfies(required Role) bool {
	if required == RoleCashier {
		return r == RoleCashier || r == RoleAdmin
	}
	return r == required
}

// ===========================
// PIN
// ===========================

var staffPinPattern = regexp.MustCompile(`^[0-9]{4,12}$`)

// ValidatePIN checks the login PIN format.
func ValidatePIN(pin string) error {
	if !staffPinPattern.MatchString(pin) {
		return ErrInvalidStaffPin.WithContext("length", len(pin))
	}
	return nil
}

// PinHasher hashes and verifies staff PINs. Implemented by infrastructure
// (bcrypt); staff PINs are never stored in clear.
type PinHasher interface {
	Hash(pin string) (string, error)
	Compare(hash, pin string) bool
}

// ===========================
// Staff
// ===========================

// Staff is an employee who can operate the till.
type Staff struct {
	id        StaffID
	name      string
	pinHash   string
	role      Role
	createdAt time.Time
	updatedAt time.Time
}

// NewStaff validates the inputs and hashes pin.
func NewStaff(name, pin string, role Role, hasher PinHasher) (*Staff, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, ErrInvalidStaffName
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if err := ValidatePIN(pin); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(pin)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Staff{
		id:        NewStaffID(),
		name:      n,
		pinHash:   hash,
		role:      role,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructStaff rebuilds a stored staff member.
func ReconstructStaff(id StaffID, name, pinHash string, role Role, createdAt, updatedAt time.Time) (*Staff, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidStaffID.WithContext("reason", "empty id in database")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &Staff{
		id:        id,
		name:      name,
		pinHash:   pinHash,
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Staff) ID() StaffID { return s.id }
func (s *Staff) Name() string { return s.name }
func (s *Staff) Role() Role { return s.role }
func (s *Staff) PinHash() string { return s.pinHash }
func (s *Staff) CreatedAt() time.Time { return s.createdAt }
func (s *Staff) UpdatedAt() time.Time { return s.updatedAt }

// IsAdmin reports whether the staff member has the admin role.
func (s *Staff) IsAdmin() bool { return s.role == RoleAdmin }

// VerifyPIN compares pin against the stored hash.
func (s *Staff) VerifyPIN(pin string, hasher PinHasher) bool {
	return s.pinHash != "" && hasher.Compare(s.pinHash, pin)
}

// Rename changes the display name.
func (s *Staff) Rename(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return ErrInvalidStaffName
	}
	s.name = n
	s.updatedAt = time.Now().UTC()
	return nil
}

// ChangeRole sets a new role.
func (s *Staff) ChangeRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	s.role = role
	s.updatedAt = time.Now().UTC()
	return nil
}

// ChangePIN validates and re-hashes the PIN.
func (s *Staff) ChangePIN(pin string, hasher PinHasher) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	hash, err := hasher.Hash(pin)
	if err != nil {
		return err
	}
	s.pinHash = hash
	s.updatedAt = time.Now().UTC()
	return nil
}
