package staff

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

// StaffRepository persists active staff. Delete deactivates: removed
// staff no longer appear in List and can no longer log in.
type StaffRepository interface {
	Save(tx shared.TransactionContext, s *Staff) error

	// FindByID returns the staff member or ErrStaffNotFound.
	FindByID(tx shared.TransactionContext, id StaffID) (*Staff, error)

	// List returns active staff ordered by name.
	List(tx shared.TransactionContext) ([]*Staff, error)

	Update(tx shared.TransactionContext, s *Staff) error

	Delete(tx shared.TransactionContext, id StaffID) error
}

// FindByPIN scans active staff for the one whose hash matches pin. PINs
// are hashed with a per-row salt, so there is no indexed lookup; staff
// lists are small.
func FindByPIN(tx shared.TransactionContext, repo StaffRepository, hasher PinHasher, pin string) (*Staff, error) {
	if err := ValidatePIN(pin); err != nil {
		return nil, ErrStaffNotFound
	}
	all, err := repo.List(tx)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.VerifyPIN(pin, hasher) {
			return s, nil
		}
	}
	return nil, ErrStaffNotFound
}
