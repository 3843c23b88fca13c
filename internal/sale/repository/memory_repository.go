package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/nurbek/dealer-pos/internal/sale/domain"
)

// MemorySaleRepository is the in-memory ledger used for DB-less
// development and tests. Appends are O(1); committed entries are never
// mutated, and queries copy out of the ledger on every call.
type MemorySaleRepository struct {
	mu     sync.RWMutex
	sales  []domain.Sale
	nextID uint
}

func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{nextID: 1}
}

func (r *MemorySaleRepository) Create(sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale.ID = r.nextID
	r.nextID++
	for i := range sale.LineItems {
		sale.LineItems[i].SaleID = sale.ID
	}

	clone := *sale
	clone.LineItems = append([]domain.SaleLineItem(nil), sale.LineItems...)
	r.sales = append(r.sales, clone)
	return nil
}

func (r *MemorySaleRepository) FindByID(id uint) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sale := range r.sales {
		if sale.ID == id {
			clone := sale
			clone.LineItems = append([]domain.SaleLineItem(nil), sale.LineItems...)
			return &clone, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

func (r *MemorySaleRepository) FindBySaleNumber(saleNumber string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sale := range r.sales {
		if sale.SaleNumber == saleNumber {
			clone := sale
			clone.LineItems = append([]domain.SaleLineItem(nil), sale.LineItems...)
			return &clone, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

func (r *MemorySaleRepository) FindByCustomerID(customerID uint, from, to *time.Time, limit, offset int) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Sale
	for _, sale := range r.sales {
		if sale.CustomerID != customerID {
			continue
		}
		if from != nil && sale.SaleDate.Before(*from) {
			continue
		}
		if to != nil && sale.SaleDate.After(*to) {
			continue
		}
		clone := sale
		clone.LineItems = append([]domain.SaleLineItem(nil), sale.LineItems...)
		matched = append(matched, clone)
	}

	sortByDateDesc(matched)
	return pageSales(matched, limit, offset), nil
}

func (r *MemorySaleRepository) FindAll(limit, offset int) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := make([]domain.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		clone := sale
		clone.LineItems = append([]domain.SaleLineItem(nil), sale.LineItems...)
		sales = append(sales, clone)
	}

	sortByDateDesc(sales)
	return pageSales(sales, limit, offset), nil
}

func sortByDateDesc(sales []domain.Sale) {
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].SaleDate.Equal(sales[j].SaleDate) {
			return sales[i].ID > sales[j].ID
		}
		return sales[i].SaleDate.After(sales[j].SaleDate)
	})
}

func pageSales(sales []domain.Sale, limit, offset int) []domain.Sale {
	if offset >= len(sales) {
		return nil
	}
	sales = sales[offset:]
	if limit > 0 && limit < len(sales) {
		sales = sales[:limit]
	}
	return sales
}
