package command

import (
	"fmt"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// UpdateItemCommand represents the command to update an inventory item
type UpdateItemCommand struct {
	ID        uint
	Name      string
	UnitPrice float64
	Quantity  int
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.InventoryRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.InventoryRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.InventoryItem, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	item, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		item.Name = cmd.Name
	}
	item.UnitPrice = cmd.UnitPrice
	item.Quantity = cmd.Quantity

	if err := h.repo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return item, nil
}
