package command

import (
	"fmt"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// CreateItemCommand represents the command to create an inventory item
type CreateItemCommand struct {
	Category  domain.Category
	Name      string
	UnitPrice float64
	Quantity  int
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.InventoryRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.InventoryRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(cmd CreateItemCommand) (*domain.InventoryItem, error) {
	if !cmd.Category.Valid() {
		return nil, fmt.Errorf("category must be one of vehicle, accessory, material")
	}

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	item := &domain.InventoryItem{
		Category:  cmd.Category,
		Name:      cmd.Name,
		UnitPrice: cmd.UnitPrice,
		Quantity:  cmd.Quantity,
	}

	if err := h.repo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}
