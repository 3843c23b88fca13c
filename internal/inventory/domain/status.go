package domain

// StockStatus is the label derived from an item's on-hand quantity
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// lowStockThresholds is the single source of truth for the low-stock
// cut-off per category. Every status computation in the system goes
// through StatusFor so the label can never diverge between call sites.
var lowStockThresholds = map[Category]int{
	CategoryVehicle:   3,
	CategoryAccessory: 5,
	CategoryMaterial:  10,
}

// defaultLowStockThreshold applies to unknown categories
const defaultLowStockThreshold = 5

// LowStockThreshold returns the low-stock cut-off for a category
func LowStockThreshold(category Category) int {
	if t, ok := lowStockThresholds[category]; ok {
		return t
	}
	return defaultLowStockThreshold
}

// StatusFor maps an on-hand quantity to its stock status. Pure and
// defined for every non-negative quantity; negative quantities are a
// caller bug and are reported as out of stock rather than panicking.
func StatusFor(quantity int, category Category) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockThreshold(category):
		return StatusLowStock
	default:
		return StatusInStock
	}
}
