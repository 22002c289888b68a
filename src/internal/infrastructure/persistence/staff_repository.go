package persistence

import (
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
	"gorm.io/gorm"
)

// GORMStaffRepository implements staff.StaffRepository with soft delete:
// gorm adds "deleted_at IS NULL" to every query on StaffModel.
type GORMStaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) staff.StaffRepository {
	return &GORMStaffRepository{db: db}
}

func (r *GORMStaffRepository) getDB(tx shared.TransactionContext) *gorm.DB {
	return dbFrom(tx, r.db)
}

func (r *GORMStaffRepository) Save(tx shared.TransactionContext, s *staff.Staff) error {
	if err := r.getDB(tx).Create(staffToModel(s)).Error; err != nil {
		return mapError(err, staff.ErrStaffNotFound)
	}
	return nil
}

func (r *GORMStaffRepository) FindByID(tx shared.TransactionContext, id staff.StaffID) (*staff.Staff, error) {
	var model StaffModel
	err := r.getDB(tx).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		return nil, mapError(err, staff.ErrStaffNotFound.WithContext("staff_id", id.String()))
	}
	return model.toDomain()
}

func (r *GORMStaffRepository) List(tx shared.TransactionContext) ([]*staff.Staff, error) {
	var models []StaffModel
	if err := r.getDB(tx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, staff.ErrStaffNotFound)
	}

	members := make([]*staff.Staff, 0, len(models))
	for i := range models {
		s, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, nil
}

func (r *GORMStaffRepository) Update(tx shared.TransactionContext, s *staff.Staff) error {
	model := staffToModel(s)
	result := r.getDB(tx).Model(&StaffModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"pin_hash":   model.PinHash,
			"role":       model.Role,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return mapError(result.Error, staff.ErrStaffNotFound)
	}
	if result.RowsAffected == 0 {
		return staff.ErrStaffNotFound.WithContext("staff_id", model.ID)
	}
	return nil
}

// Delete marks the row deleted; it stays for ledger references.
func (r *GORMStaffRepository) Delete(tx shared.TransactionContext, id staff.StaffID) error {
	result := r.getDB(tx).Where("id = ?", id.String()).Delete(&StaffModel{})
	if result.Error != nil {
		return mapError(result.Error, staff.ErrStaffNotFound)
	}
	if result.RowsAffected == 0 {
		return staff.ErrStaffNotFound.WithContext("staff_id", id.String())
	}
	return nil
}
