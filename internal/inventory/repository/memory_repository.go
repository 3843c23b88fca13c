package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

// MemoryInventoryRepository is a mutex-guarded in-memory implementation,
// used when the service runs without a database and as the substrate for
// concurrency tests. TryDecrement holds the lock for the whole
// check-and-write, which makes it atomic per item.
type MemoryInventoryRepository struct {
	mu     sync.RWMutex
	items  map[uint]*domain.InventoryItem
	nextID uint
}

func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{
		items:  make(map[uint]*domain.InventoryItem),
		nextID: 1,
	}
}

func (r *MemoryInventoryRepository) Create(item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.RefreshStatus()

	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *MemoryInventoryRepository) FindByID(id uint) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *item
	clone.RefreshStatus()
	return &clone, nil
}

func (r *MemoryInventoryRepository) FindByCategory(category domain.Category, limit, offset int) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []domain.InventoryItem
	for _, item := range r.items {
		if item.Category == category {
			clone := *item
			clone.RefreshStatus()
			items = append(items, clone)
		}
	}
	sortByID(items)
	return page(items, limit, offset), nil
}

func (r *MemoryInventoryRepository) FindAll(limit, offset int) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		clone.RefreshStatus()
		items = append(items, clone)
	}
	sortByID(items)
	return page(items, limit, offset), nil
}

func (r *MemoryInventoryRepository) Update(item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = time.Now()
	item.Version = stored.Version + 1
	item.RefreshStatus()

	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *MemoryInventoryRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryInventoryRepository) TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if item.Version != expectedVersion {
		return 0, domain.ErrVersionConflict
	}
	if item.Quantity < amount {
		return 0, domain.ErrInsufficientStock
	}

	item.Quantity -= amount
	item.Version++
	item.UpdatedAt = time.Now()
	item.RefreshStatus()
	return item.Version, nil
}

func (r *MemoryInventoryRepository) Restock(ctx context.Context, id uint, amount int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}

	item.Quantity += amount
	item.Version++
	item.UpdatedAt = time.Now()
	item.RefreshStatus()
	return item.Version, nil
}

func sortByID(items []domain.InventoryItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func page(items []domain.InventoryItem, limit, offset int) []domain.InventoryItem {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
