package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ===========================
// Staff Directory
// ===========================

// StaffDirectory manages staff accounts. Its mutating methods are only
// routed for admins.
//
// Invariants kept here:
//   - a PIN identifies at most one active staff member
//   - at least one active admin remains
type StaffDirectory struct {
	repo      staff.StaffRepository
	hasher    staff.PinHasher
	txManager shared.TransactionManager
}

func NewStaffDirectory(repo staff.StaffRepository, hasher staff.PinHasher, txManager shared.TransactionManager) *StaffDirectory {
	return &StaffDirectory{repo: repo, hasher: hasher, txManager: txManager}
}

// CreateStaffCommand describes a new staff member.
type CreateStaffCommand struct {
	Name string
	PIN  string
	Role string
}

// UpdateStaffCommand changes a staff member. Empty fields are left as
// they are.
type UpdateStaffCommand struct {
	ID   string
	Name string
	PIN  string
	Role string
}

// FindByPin returns the active staff member using pin.
func (d *StaffDirectory) FindByPin(ctx context.Context, pin string) (*staff.Staff, error) {
	return staff.FindByPIN(shared.ReadOnly(ctx), d.repo, d.hasher, pin)
}

// List returns active staff ordered by name.
func (d *StaffDirectory) List(ctx context.Context) ([]*staff.Staff, error) {
	return d.repo.List(shared.ReadOnly(ctx))
}

// Create adds a staff member.
//
// Errors: ErrInvalidStaffName, ErrInvalidStaffPin, ErrInvalidRole,
// ErrDuplicateStaffPin.
func (d *StaffDirectory) Create(ctx context.Context, cmd CreateStaffCommand) (*staff.Staff, error) {
	role, err := staff.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	member, err := staff.NewStaff(cmd.Name, cmd.PIN, role, d.hasher)
	if err != nil {
		return nil, err
	}

	err = d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if err := d.ensurePinFree(tx, cmd.PIN, ""); err != nil {
			return err
		}
		if err := d.repo.Save(tx, member); err != nil {
			return fmt.Errorf("failed to save staff: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Update applies cmd.
//
// Errors: ErrStaffNotFound, validation errors, ErrDuplicateStaffPin,
// ErrLastAdmin when demoting the only admin.
func (d *StaffDirectory) Update(ctx context.Context, cmd UpdateStaffCommand) (*staff.Staff, error) {
	id, err := staff.StaffIDFromString(cmd.ID)
	if err != nil {
		return nil, err
	}
	var role staff.Role
	if cmd.Role != "" {
		if role, err = staff.ParseRole(cmd.Role); err != nil {
			return nil, err
		}
	}
	if cmd.PIN != "" {
		if err := staff.ValidatePIN(cmd.PIN); err != nil {
			return nil, err
		}
	}

	var updated *staff.Staff
	err = d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		member, err := d.repo.FindByID(tx, id)
		if err != nil {
			return err
		}

		if cmd.Name != "" {
			if err := member.Rename(cmd.Name); err != nil {
				return err
			}
		}
		if cmd.PIN != "" {
			if err := d.ensurePinFree(tx, cmd.PIN, member.ID().String()); err != nil {
				return err
			}
			if err := member.ChangePIN(cmd.PIN, d.hasher); err != nil {
				return err
			}
		}
		if role != "" && role != member.Role() {
			if member.IsAdmin() {
				if err := d.ensureAnotherAdmin(tx, member.ID().String()); err != nil {
					return err
				}
			}
			if err := member.ChangeRole(role); err != nil {
				return err
			}
		}

		if err := d.repo.Update(tx, member); err != nil {
			return fmt.Errorf("failed to update staff: %w", err)
		}
		updated = member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deactivates a staff member. Their past ledger entries keep the
// staff id.
func (d *StaffDirectory) Delete(ctx context.Context, id string) error {
	staffID, err := staff.StaffIDFromString(id)
	if err != nil {
		return err
	}

	return d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		member, err := d.repo.FindByID(tx, staffID)
		if err != nil {
			return err
		}
		if member.IsAdmin() {
			if err := d.ensureAnotherAdmin(tx, member.ID().String()); err != nil {
				return err
			}
		}
		if err := d.repo.Delete(tx, staffID); err != nil {
			return fmt.Errorf("failed to delete staff: %w", err)
		}
		return nil
	})
}

// Bootstrap creates the first admin when no staff exist yet, so a fresh
// install can be logged into. It does nothing otherwise.
func (d *StaffDirectory) Bootstrap(ctx context.Context, name, pin string) (bool, error) {
	all, err := d.repo.List(shared.ReadOnly(ctx))
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}
	if _, err := d.Create(ctx, CreateStaffCommand{Name: name, PIN: pin, Role: staff.RoleAdmin.String()}); err != nil {
		return false, err
	}
	return true, nil
}

// ensurePinFree fails when another active member (not exceptID) already
// uses pin.
func (d *StaffDirectory) ensurePinFree(tx shared.TransactionContext, pin, exceptID string) error {
	existing, err := staff.FindByPIN(tx, d.repo, d.hasher, pin)
	if errors.Is(err, staff.ErrStaffNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID().String() == exceptID {
		return nil
	}
	return staff.ErrDuplicateStaffPin
}

func (d *StaffDirectory) ensureAnotherAdmin(tx shared.TransactionContext, exceptID string) error {
	all, err := d.repo.List(tx)
	if err != nil {
		return err
	}
	for _, member := range all {
		if member.IsAdmin() && member.ID().String() != exceptID {
			return nil
		}
	}
	return staff.ErrLastAdmin
}
