package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidCustomer means the identifier is malformed or does not
// resolve to a live customer record
var ErrInvalidCustomer = errors.New("invalid customer")

// Customer represents a registered buyer. The sale path only ever reads
// customers; mutation happens through the admin operations.
type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FullName  string         `json:"full_name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string         `json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// CustomerRepository defines the contract for customer data access
type CustomerRepository interface {
	Create(customer *Customer) error
	FindByID(id uint) (*Customer, error)
	FindByEmail(email string) (*Customer, error)
	FindAll(limit, offset int) ([]Customer, error)
	Update(customer *Customer) error
	Delete(id uint) error
}
