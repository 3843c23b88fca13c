package query

import (
	"fmt"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// GetItemQuery represents the query to get an inventory item
type GetItemQuery struct {
	ID uint
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.InventoryRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.InventoryRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(query GetItemQuery) (*domain.InventoryItem, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
