package persistence

import (
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMCardRepository implements giftcard.CardRepository.
//
// Design:
//   - reads and writes go through the TransactionContext they are given
//   - balance writes are compare-and-swap on version
//   - driver errors leave here as domain errors (see mapError)
type GORMCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a card repository. db is used for reads
// outside a transaction.
func NewCardRepository(db *gorm.DB) giftcard.CardRepository {
	return &GORMCardRepository{db: db}
}

func (r *GORMCardRepository) getDB(tx shared.TransactionContext) *gorm.DB {
	return dbFrom(tx, r.db)
}

// Create inserts a new card row.
func (r *GORMCardRepository) Create(tx shared.TransactionContext, card *giftcard.Card) error {
	model := cardToModel(card)
	if err := r.getDB(tx).Create(model).Error; err != nil {
		if isUniqueConstraintError(err) {
			return giftcard.ErrAlreadyActivated.WithContext("card_code", model.Code)
		}
		return mapError(err, giftcard.ErrCardNotFound)
	}
	return nil
}

// FindByCode loads a card by its code.
func (r *GORMCardRepository) FindByCode(tx shared.TransactionContext, code giftcard.CardCode) (*giftcard.Card, error) {
	var model CardModel
	err := r.getDB(tx).Where("code = ?", code.String()).First(&model).Error
	if err != nil {
		return nil, mapError(err, giftcard.ErrCardNotFound.WithContext("card_code", code.String()))
	}
	return model.toDomain()
}

// Update writes the balance under a compare-and-swap on the version
// column. Zero affected rows means either the card is gone or another
// writer got there first.
func (r *GORMCardRepository) Update(tx shared.TransactionContext, card *giftcard.Card) error {
	db := r.getDB(tx)
	model := cardToModel(card)
	expected := card.Version() - 1

	result := db.Model(&CardModel{}).
		Where("code = ? AND version = ?", model.Code, expected).
		Updates(map[string]interface{}{
			"pin":                 model.Pin,
			"balance_cents":       model.BalanceCents,
			"customer_id":         model.CustomerID,
			"last_transaction_at": model.LastTransactionAt,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return mapError(result.Error, giftcard.ErrCardNotFound)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&CardModel{}).Where("code = ?", model.Code).Count(&count).Error; err != nil {
		return mapError(err, giftcard.ErrCardNotFound)
	}
	if count == 0 {
		return giftcard.ErrCardNotFound.WithContext("card_code", model.Code)
	}
	return shared.ErrConcurrentModification.WithContext(
		"card_code", model.Code,
		"expected_version", expected,
	)
}

// Delete removes the card row. Ledger rows are left in place.
func (r *GORMCardRepository) Delete(tx shared.TransactionContext, code giftcard.CardCode) error {
	result := r.getDB(tx).Where("code = ?", code.String()).Delete(&CardModel{})
	if result.Error != nil {
		return mapError(result.Error, giftcard.ErrCardNotFound)
	}
	if result.RowsAffected == 0 {
		return giftcard.ErrCardNotFound.WithContext("card_code", code.String())
	}
	return nil
}

// List returns every card ordered by code.
func (r *GORMCardRepository) List(tx shared.TransactionContext) ([]*giftcard.Card, error) {
	var models []CardModel
	if err := r.getDB(tx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, giftcard.ErrCardNotFound)
	}

	cards := make([]*giftcard.Card, 0, len(models))
	for i := range models {
		card, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// UnlinkCustomer clears customer_id on the customer's cards. Versions are
// left alone: the balance is not touched, so in-flight balance updates
// must not fail because of it.
func (r *GORMCardRepository) UnlinkCustomer(tx shared.TransactionContext, customerID shared.CustomerID) (int64, error) {
	result := r.getDB(tx).Model(&CardModel{}).
		Where("customer_id = ?", customerID.String()).
		Update("customer_id", nil)
	if result.Error != nil {
		return 0, mapError(result.Error, giftcard.ErrCardNotFound)
	}
	return result.RowsAffected, nil
}
