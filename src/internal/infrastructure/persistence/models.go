package persistence

import (
	"time"

	"gorm.io/gorm"
)

// ===========================
// GORM models
// ===========================
// Models only describe the table layout. Conversion to and from domain
// objects lives in mappers.go; no business rule is enforced here beyond
// the check constraints that back the domain invariants.

// CardModel maps the cards table. Money is stored as integer cents.
//
// Table constraints:
//   - code: primary key
//   - balance_cents: never negative (check constraint)
//   - customer_id: nullable, cleared when the customer is deleted
//   - version: compared and bumped by every balance write
type CardModel struct {
	Code              string     `gorm:"column:code;type:varchar(64);primaryKey"`
	Pin               string     `gorm:"column:pin;type:varchar(4);not null"`
	BalanceCents      int64      `gorm:"column:balance_cents;not null;default:0;check:chk_cards_balance_non_negative,balance_cents >= 0"`
	CustomerID        *string    `gorm:"column:customer_id;type:varchar(36);index:idx_cards_customer_id"`
	LastTransactionAt *time.Time `gorm:"column:last_transaction_at"`
	Version           int        `gorm:"column:version;not null;default:1"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
}

func (CardModel) TableName() string {
	return "cards"
}

// TransactionModel maps the append-only transactions table. Rows survive
// deletion of their card.
type TransactionModel struct {
	ID                string    `gorm:"column:id;type:varchar(36);primaryKey"`
	CardCode          string    `gorm:"column:card_code;type:varchar(64);not null;index:idx_transactions_card_time,priority:1;uniqueIndex:idx_transactions_card_request,priority:1"`
	Type              string    `gorm:"column:type;type:varchar(10);not null"`
	AmountCents       int64     `gorm:"column:amount_cents;not null;check:chk_transactions_amount_positive,amount_cents > 0"`
	BalanceAfterCents int64     `gorm:"column:balance_after_cents;not null;check:chk_transactions_balance_after_non_negative,balance_after_cents >= 0"`
	Note              string    `gorm:"column:note;type:varchar(500);not null;default:''"`
	OccurredAt        time.Time `gorm:"column:occurred_at;not null;index:idx_transactions_card_time,priority:2"`
	Sequence          int       `gorm:"column:sequence;not null"`
	RequestID         *string   `gorm:"column:request_id;type:varchar(128);uniqueIndex:idx_transactions_card_request,priority:2"`
	StaffID           *string   `gorm:"column:staff_id;type:varchar(36)"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// CustomerModel maps the customers table.
type CustomerModel struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey"`
	FirstName       string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName        string    `gorm:"column:last_name;type:varchar(100);not null;default:''"`
	Email           *string   `gorm:"column:email;type:varchar(254);index:idx_customers_email"`
	Phone           *string   `gorm:"column:phone;type:varchar(10);index:idx_customers_phone"`
	Address         string    `gorm:"column:address;type:varchar(200);not null;default:''"`
	City            string    `gorm:"column:city;type:varchar(100);not null;default:''"`
	State           string    `gorm:"column:state;type:varchar(100);not null;default:''"`
	Zip             string    `gorm:"column:zip;type:varchar(20);not null;default:''"`
	Notes           string    `gorm:"column:notes;type:text;not null;default:''"`
	NewsletterOptIn bool      `gorm:"column:newsletter_opt_in;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// StaffModel maps the staff table. Rows are soft deleted so ledger
// entries keep a resolvable staff id.
type StaffModel struct {
	ID        string         `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string         `gorm:"column:name;type:varchar(100);not null"`
	PinHash   string         `gorm:"column:pin_hash;type:varchar(100);not null"`
	Role      string         `gorm:"column:role;type:varchar(20);not null"`
	CreatedAt time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (StaffModel) TableName() string {
	return "staff"
}

// AllModels lists every model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&CardModel{},
		&TransactionModel{},
		&CustomerModel{},
		&StaffModel{},
	}
}
