package domain

import (
	"time"

	inventory "github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// SaleLineItem is one quantity x price entry within a sale. UnitPriceAtSale
// is the price snapshotted during validation, not a live reference.
type SaleLineItem struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	SaleID          uint               `json:"-" gorm:"not null;index"`
	ItemID          uint               `json:"item_id" gorm:"not null"`
	ItemCategory    inventory.Category `json:"item_category" gorm:"type:varchar(16);not null"`
	ItemName        string             `json:"item_name"`
	Quantity        int                `json:"quantity" gorm:"not null"`
	UnitPriceAtSale float64            `json:"unit_price_at_sale" gorm:"not null"`
	Subtotal        float64            `json:"subtotal" gorm:"not null"`
}

// TableName specifies the table name
func (SaleLineItem) TableName() string {
	return "sale_line_items"
}

// Sale is one committed transaction: a vehicle line plus zero or more
// accessory lines. Sales are append-only and never mutated.
type Sale struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	SaleNumber string         `json:"sale_number" gorm:"uniqueIndex;not null"`
	CustomerID uint           `json:"customer_id" gorm:"not null;index"`
	SoldBy     string         `json:"sold_by" gorm:"not null"`
	SaleDate   time.Time      `json:"sale_date" gorm:"not null;index"`
	LineItems  []SaleLineItem `json:"line_items" gorm:"foreignKey:SaleID"`
	TotalPrice float64        `json:"total_price" gorm:"not null"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SaleRepository is the append-only ledger of committed sales.
// FindByCustomerID returns most-recent-first; nil date bounds mean
// unbounded on that side, and every call re-reads committed state.
type SaleRepository interface {
	Create(sale *Sale) error
	FindByID(id uint) (*Sale, error)
	FindBySaleNumber(saleNumber string) (*Sale, error)
	FindByCustomerID(customerID uint, from, to *time.Time, limit, offset int) ([]Sale, error)
	FindAll(limit, offset int) ([]Sale, error)
}
