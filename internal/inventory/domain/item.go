package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Category of a stock-tracked product line
type Category string

const (
	CategoryVehicle   Category = "vehicle"
	CategoryAccessory Category = "accessory"
	CategoryMaterial  Category = "material"
)

// Valid reports whether the category is one of the known stock pools
func (c Category) Valid() bool {
	switch c {
	case CategoryVehicle, CategoryAccessory, CategoryMaterial:
		return true
	}
	return false
}

// InventoryItem represents one stock-tracked product line. Status is
// derived from Quantity via StatusFor and is never stored on its own;
// Version is the optimistic-concurrency token bumped on every mutation.
type InventoryItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Category  Category       `json:"category" gorm:"type:varchar(16);not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	UnitPrice float64        `json:"unit_price" gorm:"not null"`
	Quantity  int            `json:"quantity" gorm:"not null;default:0"`
	Version   uint64         `json:"version" gorm:"not null;default:0"`
	Status    StockStatus    `json:"status" gorm:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// AfterFind recomputes the derived status whenever GORM loads the row
func (i *InventoryItem) AfterFind(*gorm.DB) error {
	i.RefreshStatus()
	return nil
}

// RefreshStatus recomputes Status from the current Quantity
func (i *InventoryItem) RefreshStatus() {
	i.Status = StatusFor(i.Quantity, i.Category)
}

// InventoryRepository defines the contract for inventory data access.
// TryDecrement and Restock are the only mutation paths the sale
// transaction uses; both are atomic per item.
type InventoryRepository interface {
	Create(item *InventoryItem) error
	FindByID(id uint) (*InventoryItem, error)
	FindByCategory(category Category, limit, offset int) ([]InventoryItem, error)
	FindAll(limit, offset int) ([]InventoryItem, error)
	Update(item *InventoryItem) error
	Delete(id uint) error

	// TryDecrement atomically decrements the item's quantity iff the
	// stored version equals expectedVersion and quantity >= amount.
	// Returns the new version on success, or ErrNotFound,
	// ErrInsufficientStock, ErrVersionConflict.
	TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error)

	// Restock unconditionally adds amount back to the item's quantity,
	// bumping the version. Used for admin restock and for compensating
	// a partially reserved sale.
	Restock(ctx context.Context, id uint, amount int) (uint64, error)
}
