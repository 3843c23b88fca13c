package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/nurbek/dealer-pos/internal/customer/domain"
)

// MemoryCustomerRepository is the in-memory implementation used for
// DB-less development and tests.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[uint]*domain.Customer
	nextID    uint
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[uint]*domain.Customer),
		nextID:    1,
	}
}

func (r *MemoryCustomerRepository) Create(customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == 0 {
		customer.ID = r.nextID
	}
	if customer.ID >= r.nextID {
		r.nextID = customer.ID + 1
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *MemoryCustomerRepository) FindByID(id uint) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrInvalidCustomer
	}
	clone := *customer
	return &clone, nil
}

func (r *MemoryCustomerRepository) FindByEmail(email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.Email == email {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCustomer
}

func (r *MemoryCustomerRepository) FindAll(limit, offset int) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, *customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })

	if offset >= len(customers) {
		return nil, nil
	}
	customers = customers[offset:]
	if limit > 0 && limit < len(customers) {
		customers = customers[:limit]
	}
	return customers, nil
}

func (r *MemoryCustomerRepository) Update(customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.customers[customer.ID]
	if !ok {
		return domain.ErrInvalidCustomer
	}
	customer.CreatedAt = stored.CreatedAt
	customer.UpdatedAt = time.Now()

	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *MemoryCustomerRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return domain.ErrInvalidCustomer
	}
	delete(r.customers, id)
	return nil
}
