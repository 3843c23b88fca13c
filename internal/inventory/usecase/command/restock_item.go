package command

import (
	"context"
	"fmt"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// RestockItemCommand represents the command to add stock to an item
type RestockItemCommand struct {
	ID     uint
	Amount int
}

// RestockItemHandler handles restock item command
type RestockItemHandler struct {
	repo domain.InventoryRepository
}

// NewRestockItemHandler creates a new restock item handler
func NewRestockItemHandler(repo domain.InventoryRepository) *RestockItemHandler {
	return &RestockItemHandler{repo: repo}
}

// Handle executes the restock item command
func (h *RestockItemHandler) Handle(ctx context.Context, cmd RestockItemCommand) (*domain.InventoryItem, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	if cmd.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	if _, err := h.repo.Restock(ctx, cmd.ID, cmd.Amount); err != nil {
		return nil, err
	}

	item, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload item after restock: %w", err)
	}

	return item, nil
}
