package customer

import (
	"strconv"

	"github.com/nurbek/dealer-pos/internal/customer/domain"
)

// Registry validates customer identifiers for the sale path. An id is
// valid when it is numeric and resolves to an existing, non-deleted
// record. Lookups have no side effects.
type Registry struct {
	repo domain.CustomerRepository
}

// NewRegistry creates a registry over the customer repository
func NewRegistry(repo domain.CustomerRepository) *Registry {
	return &Registry{repo: repo}
}

// Validate resolves a customer identifier to its profile
func (r *Registry) Validate(customerID string) (*domain.Customer, error) {
	id, err := strconv.ParseUint(customerID, 10, 32)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCustomer
	}

	customer, err := r.repo.FindByID(uint(id))
	if err != nil {
		return nil, domain.ErrInvalidCustomer
	}

	return customer, nil
}
