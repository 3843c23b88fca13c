package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

func seedItem(t *testing.T, repo *MemoryInventoryRepository, quantity int) *domain.InventoryItem {
	t.Helper()
	item := &domain.InventoryItem{
		Category:  domain.CategoryVehicle,
		Name:      "Surplus truck",
		UnitPrice: 100000,
		Quantity:  quantity,
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return item
}

func TestTryDecrementSuccess(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 5)

	newVersion, err := repo.TryDecrement(context.Background(), item.ID, 2, item.Version)
	if err != nil {
		t.Fatalf("TryDecrement() error = %v", err)
	}
	if newVersion != item.Version+1 {
		t.Errorf("new version = %d, want %d", newVersion, item.Version+1)
	}

	got, err := repo.FindByID(item.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", got.Quantity)
	}
	if got.Version != newVersion {
		t.Errorf("stored version = %d, want %d", got.Version, newVersion)
	}
}

func TestTryDecrementInsufficientStock(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 1)

	_, err := repo.TryDecrement(context.Background(), item.ID, 2, item.Version)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("TryDecrement() error = %v, want ErrInsufficientStock", err)
	}

	got, _ := repo.FindByID(item.ID)
	if got.Quantity != 1 {
		t.Errorf("quantity changed on failed decrement: %d", got.Quantity)
	}
	if got.Version != item.Version {
		t.Errorf("version changed on failed decrement: %d", got.Version)
	}
}

func TestTryDecrementVersionConflict(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 5)

	if _, err := repo.TryDecrement(context.Background(), item.ID, 1, item.Version); err != nil {
		t.Fatalf("first TryDecrement() error = %v", err)
	}

	// Second caller still holds the pre-decrement version token
	_, err := repo.TryDecrement(context.Background(), item.ID, 1, item.Version)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("TryDecrement() error = %v, want ErrVersionConflict", err)
	}

	got, _ := repo.FindByID(item.ID)
	if got.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", got.Quantity)
	}
}

func TestTryDecrementNotFound(t *testing.T) {
	repo := NewMemoryInventoryRepository()

	_, err := repo.TryDecrement(context.Background(), 42, 1, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("TryDecrement() error = %v, want ErrNotFound", err)
	}
}

func TestRestock(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 0)

	newVersion, err := repo.Restock(context.Background(), item.ID, 3)
	if err != nil {
		t.Fatalf("Restock() error = %v", err)
	}

	got, _ := repo.FindByID(item.ID)
	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", got.Quantity)
	}
	if got.Version != newVersion {
		t.Errorf("version = %d, want %d", got.Version, newVersion)
	}
	if got.Status != domain.StatusLowStock {
		t.Errorf("status = %s, want %s", got.Status, domain.StatusLowStock)
	}
}

// Concurrent decrements against a single unit: exactly one must win and
// the quantity must never go negative.
func TestTryDecrementConcurrentSingleUnit(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 1)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.TryDecrement(context.Background(), item.ID, 1, item.Version); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}

	got, _ := repo.FindByID(item.ID)
	if got.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", got.Quantity)
	}
}

func TestFindByIDReturnsCopy(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	item := seedItem(t, repo, 5)

	got, _ := repo.FindByID(item.ID)
	got.Quantity = 999

	again, _ := repo.FindByID(item.ID)
	if again.Quantity != 5 {
		t.Errorf("stored quantity mutated through returned copy: %d", again.Quantity)
	}
}

func TestFindByCategory(t *testing.T) {
	repo := NewMemoryInventoryRepository()
	seedItem(t, repo, 5)
	accessory := &domain.InventoryItem{
		Category:  domain.CategoryAccessory,
		Name:      "Tow hitch",
		UnitPrice: 2000,
		Quantity:  10,
	}
	if err := repo.Create(accessory); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	vehicles, err := repo.FindByCategory(domain.CategoryVehicle, 10, 0)
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("len(vehicles) = %d, want 1", len(vehicles))
	}
	if vehicles[0].Category != domain.CategoryVehicle {
		t.Errorf("category = %s, want %s", vehicles[0].Category, domain.CategoryVehicle)
	}
}
