package domain

import "testing"

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		category Category
		want     StockStatus
	}{
		{"vehicle zero is out of stock", 0, CategoryVehicle, StatusOutOfStock},
		{"vehicle negative is out of stock", -1, CategoryVehicle, StatusOutOfStock},
		{"vehicle at threshold is low", 3, CategoryVehicle, StatusLowStock},
		{"vehicle below threshold is low", 1, CategoryVehicle, StatusLowStock},
		{"vehicle above threshold is in stock", 4, CategoryVehicle, StatusInStock},
		{"accessory at threshold is low", 5, CategoryAccessory, StatusLowStock},
		{"accessory above threshold is in stock", 6, CategoryAccessory, StatusInStock},
		{"material at threshold is low", 10, CategoryMaterial, StatusLowStock},
		{"material above threshold is in stock", 11, CategoryMaterial, StatusInStock},
		{"unknown category uses default threshold", 5, Category("spare"), StatusLowStock},
		{"unknown category above default is in stock", 6, Category("spare"), StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.quantity, tt.category); got != tt.want {
				t.Errorf("StatusFor(%d, %s) = %s, want %s", tt.quantity, tt.category, got, tt.want)
			}
		})
	}
}

func TestLowStockThreshold(t *testing.T) {
	if got := LowStockThreshold(CategoryVehicle); got != 3 {
		t.Errorf("vehicle threshold = %d, want 3", got)
	}
	if got := LowStockThreshold(CategoryMaterial); got != 10 {
		t.Errorf("material threshold = %d, want 10", got)
	}
	if got := LowStockThreshold(Category("spare")); got != defaultLowStockThreshold {
		t.Errorf("unknown category threshold = %d, want %d", got, defaultLowStockThreshold)
	}
}

func TestRefreshStatus(t *testing.T) {
	item := InventoryItem{Category: CategoryVehicle, Quantity: 2}
	item.RefreshStatus()
	if item.Status != StatusLowStock {
		t.Errorf("Status = %s, want %s", item.Status, StatusLowStock)
	}

	item.Quantity = 0
	item.RefreshStatus()
	if item.Status != StatusOutOfStock {
		t.Errorf("Status = %s, want %s", item.Status, StatusOutOfStock)
	}
}
