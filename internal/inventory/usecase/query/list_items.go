package query

import (
	"fmt"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// ListItemsQuery represents the query to list inventory items
type ListItemsQuery struct {
	Category domain.Category // empty means all categories
	Limit    int
	Offset   int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.InventoryRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.InventoryRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(query ListItemsQuery) ([]domain.InventoryItem, error) {
	if query.Limit == 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	if query.Category != "" {
		if !query.Category.Valid() {
			return nil, fmt.Errorf("unknown category: %s", query.Category)
		}
		return h.repo.FindByCategory(query.Category, query.Limit, query.Offset)
	}

	return h.repo.FindAll(query.Limit, query.Offset)
}
