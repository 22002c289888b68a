package persistence

import (
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMCustomerRepository implements customer.CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) customer.CustomerRepository {
	return &GORMCustomerRepository{db: db}
}

func (r *GORMCustomerRepository) getDB(tx shared.TransactionContext) *gorm.DB {
	return dbFrom(tx, r.db)
}

func (r *GORMCustomerRepository) Save(tx shared.TransactionContext, c *customer.Customer) error {
	if err := r.getDB(tx).Create(customerToModel(c)).Error; err != nil {
		return mapError(err, customer.ErrCustomerNotFound)
	}
	return nil
}

func (r *GORMCustomerRepository) FindByID(tx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	var model CustomerModel
	err := r.getDB(tx).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		return nil, mapError(err, customer.ErrCustomerNotFound.WithContext("customer_id", id.String()))
	}
	return model.toDomain()
}

// Search matches on email OR phone. Each row appears once even when both
// criteria hit it.
func (r *GORMCustomerRepository) Search(tx shared.TransactionContext, criteria customer.SearchCriteria) ([]*customer.Customer, error) {
	if criteria.IsEmpty() {
		return nil, customer.ErrEmptySearch
	}

	db := r.getDB(tx)
	stmt := db.Model(&CustomerModel{})
	switch {
	case !criteria.Email.IsZero() && !criteria.Phone.IsZero():
		stmt = stmt.Where("email = ?", criteria.Email.String()).Or("phone = ?", criteria.Phone.String())
	case !criteria.Email.IsZero():
		stmt = stmt.Where("email = ?", criteria.Email.String())
	default:
		stmt = stmt.Where("phone = ?", criteria.Phone.String())
	}

	var models []CustomerModel
	if err := stmt.Order("last_name ASC, first_name ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, customer.ErrCustomerNotFound)
	}
	return customersToDomain(models)
}

func (r *GORMCustomerRepository) Update(tx shared.TransactionContext, c *customer.Customer) error {
	model := customerToModel(c)
	result := r.getDB(tx).Model(&CustomerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"first_name":        model.FirstName,
			"last_name":         model.LastName,
			"email":             model.Email,
			"phone":             model.Phone,
			"address":           model.Address,
			"city":              model.City,
			"state":             model.State,
			"zip":               model.Zip,
			"notes":             model.Notes,
			"newsletter_opt_in": model.NewsletterOptIn,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return mapError(result.Error, customer.ErrCustomerNotFound)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound.WithContext("customer_id", model.ID)
	}
	return nil
}

func (r *GORMCustomerRepository) Delete(tx shared.TransactionContext, id customer.CustomerID) error {
	result := r.getDB(tx).Where("id = ?", id.String()).Delete(&CustomerModel{})
	if result.Error != nil {
		return mapError(result.Error, customer.ErrCustomerNotFound)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound.WithContext("customer_id", id.String())
	}
	return nil
}

func (r *GORMCustomerRepository) List(tx shared.TransactionContext) ([]*customer.Customer, error) {
	var models []CustomerModel
	if err := r.getDB(tx).Order("last_name ASC, first_name ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, customer.ErrCustomerNotFound)
	}
	return customersToDomain(models)
}

func customersToDomain(models []CustomerModel) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
