package query

import (
	"fmt"

	"github.com/nurbek/dealer-pos/internal/customer/domain"
)

// GetCustomerQuery represents the query to get a customer
type GetCustomerQuery struct {
	ID uint
}

// GetCustomerHandler handles get customer query
type GetCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewGetCustomerHandler creates a new get customer handler
func NewGetCustomerHandler(repo domain.CustomerRepository) *GetCustomerHandler {
	return &GetCustomerHandler{repo: repo}
}

// Handle executes the get customer query
func (h *GetCustomerHandler) Handle(query GetCustomerQuery) (*domain.Customer, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
