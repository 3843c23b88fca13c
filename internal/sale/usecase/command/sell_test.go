package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	customerdomain "github.com/nurbek/dealer-pos/internal/customer/domain"
	inventorydomain "github.com/nurbek/dealer-pos/internal/inventory/domain"
	inventoryrepo "github.com/nurbek/dealer-pos/internal/inventory/repository"
	"github.com/nurbek/dealer-pos/internal/sale/domain"
	salerepo "github.com/nurbek/dealer-pos/internal/sale/repository"
)

// stubRegistry accepts a fixed set of customer ids
type stubRegistry struct {
	mu        sync.Mutex
	known     map[string]uint
	validated []string
}

func newStubRegistry(ids map[string]uint) *stubRegistry {
	return &stubRegistry{known: ids}
}

func (s *stubRegistry) Validate(customerID string) (*customerdomain.Customer, error) {
	s.mu.Lock()
	s.validated = append(s.validated, customerID)
	s.mu.Unlock()

	id, ok := s.known[customerID]
	if !ok {
		return nil, customerdomain.ErrInvalidCustomer
	}
	return &customerdomain.Customer{ID: id, FullName: "Test Customer"}, nil
}

// countingInventory records every repository access on top of the real
// in-memory implementation
type countingInventory struct {
	inventorydomain.InventoryRepository
	mu    sync.Mutex
	reads int
	casts int
}

func (c *countingInventory) FindByID(id uint) (*inventorydomain.InventoryItem, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.InventoryRepository.FindByID(id)
}

func (c *countingInventory) TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error) {
	c.mu.Lock()
	c.casts++
	c.mu.Unlock()
	return c.InventoryRepository.TryDecrement(ctx, id, amount, expectedVersion)
}

// conflictingInventory forces version conflicts on selected items, with
// an optional budget of conflicts before delegating
type conflictingInventory struct {
	inventorydomain.InventoryRepository
	mu         sync.Mutex
	conflictOn map[uint]int // item id -> remaining forced conflicts, -1 means always
}

func (c *conflictingInventory) TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error) {
	c.mu.Lock()
	remaining, ok := c.conflictOn[id]
	if ok && remaining != 0 {
		if remaining > 0 {
			c.conflictOn[id] = remaining - 1
		}
		c.mu.Unlock()
		return 0, inventorydomain.ErrVersionConflict
	}
	c.mu.Unlock()
	return c.InventoryRepository.TryDecrement(ctx, id, amount, expectedVersion)
}

// capturingPublisher records committed sales
type capturingPublisher struct {
	mu    sync.Mutex
	sales []*domain.Sale
}

func (p *capturingPublisher) SaleCommitted(ctx context.Context, sale *domain.Sale) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sales = append(p.sales, sale)
}

func seedInventory(t *testing.T, repo inventorydomain.InventoryRepository, category inventorydomain.Category, name string, price float64, quantity int) uint {
	t.Helper()
	item := &inventorydomain.InventoryItem{
		Category:  category,
		Name:      name,
		UnitPrice: price,
		Quantity:  quantity,
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return item.ID
}

func quantityOf(t *testing.T, repo inventorydomain.InventoryRepository, id uint) int {
	t.Helper()
	item, err := repo.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID(%d): %v", id, err)
	}
	return item.Quantity
}

func TestSellHappyPath(t *testing.T) {
	inventory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, inventory, inventorydomain.CategoryVehicle, "Surplus truck", 100000, 5)
	hitchID := seedInventory(t, inventory, inventorydomain.CategoryAccessory, "Tow hitch", 2000, 3)

	sales := salerepo.NewMemorySaleRepository()
	publisher := &capturingPublisher{}
	handler := NewSellHandler(inventory, newStubRegistry(map[string]uint{"7": 7}), sales, publisher)

	sale, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "7",
		VehicleID:  vehicleID,
		Quantity:   2,
		Accessories: []AccessoryLine{
			{ItemID: hitchID, Quantity: 1},
		},
		SoldBy: "nurbek",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if sale.TotalPrice != 202000 {
		t.Errorf("TotalPrice = %v, want 202000", sale.TotalPrice)
	}
	if sale.CustomerID != 7 {
		t.Errorf("CustomerID = %d, want 7", sale.CustomerID)
	}
	if sale.SoldBy != "nurbek" {
		t.Errorf("SoldBy = %q, want %q", sale.SoldBy, "nurbek")
	}
	if len(sale.LineItems) != 2 {
		t.Fatalf("len(LineItems) = %d, want 2", len(sale.LineItems))
	}
	if sale.SaleNumber == "" {
		t.Error("SaleNumber is empty")
	}

	if got := quantityOf(t, inventory, vehicleID); got != 3 {
		t.Errorf("vehicle quantity = %d, want 3", got)
	}
	if got := quantityOf(t, inventory, hitchID); got != 2 {
		t.Errorf("accessory quantity = %d, want 2", got)
	}

	stored, err := sales.FindByID(sale.ID)
	if err != nil {
		t.Fatalf("sale not in ledger: %v", err)
	}
	if stored.TotalPrice != 202000 {
		t.Errorf("stored TotalPrice = %v, want 202000", stored.TotalPrice)
	}

	if len(publisher.sales) != 1 {
		t.Errorf("published %d events, want 1", len(publisher.sales))
	}
}

func TestSellSnapshotsPriceAtValidation(t *testing.T) {
	inventory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, inventory, inventorydomain.CategoryVehicle, "Surplus truck", 50000, 5)

	sales := salerepo.NewMemorySaleRepository()
	handler := NewSellHandler(inventory, newStubRegistry(map[string]uint{"1": 1}), sales, nil)

	sale, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  vehicleID,
		Quantity:   1,
		SoldBy:     "staff",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if sale.LineItems[0].UnitPriceAtSale != 50000 {
		t.Errorf("UnitPriceAtSale = %v, want 50000", sale.LineItems[0].UnitPriceAtSale)
	}
	if sale.LineItems[0].Subtotal != 50000 {
		t.Errorf("Subtotal = %v, want 50000", sale.LineItems[0].Subtotal)
	}
}

func TestSellInsufficientStock(t *testing.T) {
	inventory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, inventory, inventorydomain.CategoryVehicle, "Surplus truck", 100000, 1)

	sales := salerepo.NewMemorySaleRepository()
	handler := NewSellHandler(inventory, newStubRegistry(map[string]uint{"1": 1}), sales, nil)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  vehicleID,
		Quantity:   2,
		SoldBy:     "staff",
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("Handle() error = %v, want ErrInsufficientStock", err)
	}

	if got := quantityOf(t, inventory, vehicleID); got != 1 {
		t.Errorf("quantity = %d, want 1 (unchanged)", got)
	}
	if _, err := sales.FindByID(1); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Error("failed sale must not be appended to the ledger")
	}
}

func TestSellDuplicateLineItemRejectedBeforeRepoAccess(t *testing.T) {
	counting := &countingInventory{InventoryRepository: inventoryrepo.NewMemoryInventoryRepository()}
	registry := newStubRegistry(map[string]uint{"1": 1})
	handler := NewSellHandler(counting, registry, salerepo.NewMemorySaleRepository(), nil)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  10,
		Quantity:   1,
		Accessories: []AccessoryLine{
			{ItemID: 20, Quantity: 1},
			{ItemID: 20, Quantity: 2},
		},
		SoldBy: "staff",
	})
	if !errors.Is(err, domain.ErrDuplicateLineItem) {
		t.Fatalf("Handle() error = %v, want ErrDuplicateLineItem", err)
	}

	if counting.reads != 0 || counting.casts != 0 {
		t.Errorf("inventory accessed before duplicate rejection: reads=%d casts=%d", counting.reads, counting.casts)
	}
	if len(registry.validated) != 0 {
		t.Errorf("registry consulted before duplicate rejection: %v", registry.validated)
	}
}

func TestSellVehicleDuplicatedAsAccessory(t *testing.T) {
	handler := NewSellHandler(
		inventoryrepo.NewMemoryInventoryRepository(),
		newStubRegistry(map[string]uint{"1": 1}),
		salerepo.NewMemorySaleRepository(),
		nil,
	)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  10,
		Quantity:   1,
		Accessories: []AccessoryLine{
			{ItemID: 10, Quantity: 1},
		},
		SoldBy: "staff",
	})
	if !errors.Is(err, domain.ErrDuplicateLineItem) {
		t.Fatalf("Handle() error = %v, want ErrDuplicateLineItem", err)
	}
}

func TestSellInvalidCustomer(t *testing.T) {
	counting := &countingInventory{InventoryRepository: inventoryrepo.NewMemoryInventoryRepository()}
	handler := NewSellHandler(counting, newStubRegistry(nil), salerepo.NewMemorySaleRepository(), nil)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "999",
		VehicleID:  10,
		Quantity:   1,
		SoldBy:     "staff",
	})
	if !errors.Is(err, domain.ErrInvalidCustomer) {
		t.Fatalf("Handle() error = %v, want ErrInvalidCustomer", err)
	}

	if counting.reads != 0 {
		t.Errorf("inventory read for an invalid customer: %d", counting.reads)
	}
}

func TestSellCategoryMismatch(t *testing.T) {
	inventory := inventoryrepo.NewMemoryInventoryRepository()
	hitchID := seedInventory(t, inventory, inventorydomain.CategoryAccessory, "Tow hitch", 2000, 3)

	handler := NewSellHandler(inventory, newStubRegistry(map[string]uint{"1": 1}), salerepo.NewMemorySaleRepository(), nil)

	// An accessory id passed as the vehicle must be rejected
	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  hitchID,
		Quantity:   1,
		SoldBy:     "staff",
	})
	if !errors.Is(err, domain.ErrInvalidLineItem) {
		t.Fatalf("Handle() error = %v, want ErrInvalidLineItem", err)
	}
}

func TestSellMissingVehicle(t *testing.T) {
	handler := NewSellHandler(
		inventoryrepo.NewMemoryInventoryRepository(),
		newStubRegistry(map[string]uint{"1": 1}),
		salerepo.NewMemorySaleRepository(),
		nil,
	)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  42,
		Quantity:   1,
		SoldBy:     "staff",
	})
	if !errors.Is(err, domain.ErrItemVanished) {
		t.Fatalf("Handle() error = %v, want ErrItemVanished", err)
	}
}

// A conflict on the second reservation must roll back the first one.
func TestSellCompensatesOnMidReserveConflict(t *testing.T) {
	memory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, memory, inventorydomain.CategoryVehicle, "Surplus truck", 100000, 5)
	hitchID := seedInventory(t, memory, inventorydomain.CategoryAccessory, "Tow hitch", 2000, 3)

	conflicting := &conflictingInventory{
		InventoryRepository: memory,
		conflictOn:          map[uint]int{hitchID: -1},
	}

	sales := salerepo.NewMemorySaleRepository()
	handler := NewSellHandler(conflicting, newStubRegistry(map[string]uint{"1": 1}), sales, nil)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  vehicleID,
		Quantity:   2,
		Accessories: []AccessoryLine{
			{ItemID: hitchID, Quantity: 1},
		},
		SoldBy: "staff",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Handle() error = %v, want ErrConflict", err)
	}

	if got := quantityOf(t, memory, vehicleID); got != 5 {
		t.Errorf("vehicle quantity = %d, want 5 (compensated)", got)
	}
	if got := quantityOf(t, memory, hitchID); got != 3 {
		t.Errorf("accessory quantity = %d, want 3 (never decremented)", got)
	}
	if _, err := sales.FindByID(1); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Error("conflicted sale must not be appended to the ledger")
	}
}

// One forced conflict, then success: the retry loop must absorb it.
func TestSellRetriesAfterTransientConflict(t *testing.T) {
	memory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, memory, inventorydomain.CategoryVehicle, "Surplus truck", 100000, 5)

	conflicting := &conflictingInventory{
		InventoryRepository: memory,
		conflictOn:          map[uint]int{vehicleID: 1},
	}

	sales := salerepo.NewMemorySaleRepository()
	handler := NewSellHandler(conflicting, newStubRegistry(map[string]uint{"1": 1}), sales, nil)

	sale, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  vehicleID,
		Quantity:   1,
		SoldBy:     "staff",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if sale.TotalPrice != 100000 {
		t.Errorf("TotalPrice = %v, want 100000", sale.TotalPrice)
	}
	if got := quantityOf(t, memory, vehicleID); got != 4 {
		t.Errorf("vehicle quantity = %d, want 4", got)
	}
}

// Two customers race for the last unit: exactly one sale commits and the
// quantity never goes negative.
func TestSellConcurrentLastUnit(t *testing.T) {
	inventory := inventoryrepo.NewMemoryInventoryRepository()
	vehicleID := seedInventory(t, inventory, inventorydomain.CategoryVehicle, "Surplus truck", 100000, 1)

	sales := salerepo.NewMemorySaleRepository()
	registry := newStubRegistry(map[string]uint{"1": 1, "2": 2})
	handler := NewSellHandler(inventory, registry, sales, nil)

	const buyers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	commits := 0

	for i := 0; i < buyers; i++ {
		customerID := "1"
		if i%2 == 1 {
			customerID = "2"
		}
		wg.Add(1)
		go func(cid string) {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), SellCommand{
				CustomerID: cid,
				VehicleID:  vehicleID,
				Quantity:   1,
				SoldBy:     "staff",
			})
			if err == nil {
				mu.Lock()
				commits++
				mu.Unlock()
			}
		}(customerID)
	}
	wg.Wait()

	if commits != 1 {
		t.Errorf("commits = %d, want exactly 1", commits)
	}
	if got := quantityOf(t, inventory, vehicleID); got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}

	all, err := sales.FindAll(10, 0)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ledger has %d sales, want 1", len(all))
	}
}

func TestSellZeroQuantity(t *testing.T) {
	handler := NewSellHandler(
		inventoryrepo.NewMemoryInventoryRepository(),
		newStubRegistry(map[string]uint{"1": 1}),
		salerepo.NewMemorySaleRepository(),
		nil,
	)

	_, err := handler.Handle(context.Background(), SellCommand{
		CustomerID: "1",
		VehicleID:  10,
		Quantity:   0,
		SoldBy:     "staff",
	})
	if !errors.Is(err, domain.ErrInvalidLineItem) {
		t.Fatalf("Handle() error = %v, want ErrInvalidLineItem", err)
	}
}
