package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	customerdomain "github.com/nurbek/dealer-pos/internal/customer/domain"
	inventorydomain "github.com/nurbek/dealer-pos/internal/inventory/domain"
	"github.com/nurbek/dealer-pos/internal/sale/domain"
	"github.com/nurbek/dealer-pos/pkg/logger"
)

const (
	maxAttempts  = 3
	retryBackoff = 25 * time.Millisecond
)

// AccessoryLine is one requested accessory (id, quantity) pair
type AccessoryLine struct {
	ItemID   uint
	Quantity int
}

// SellCommand represents the command to sell a vehicle with accessories
type SellCommand struct {
	CustomerID  string
	VehicleID   uint
	Quantity    int
	Accessories []AccessoryLine
	SoldBy      string
}

// CustomerRegistry resolves a customer identifier to its profile
type CustomerRegistry interface {
	Validate(customerID string) (*customerdomain.Customer, error)
}

// EventPublisher receives committed sales for downstream consumers.
// Publishing is best-effort: the sale is already durable when it runs.
type EventPublisher interface {
	SaleCommitted(ctx context.Context, sale *domain.Sale)
}

// SellHandler orchestrates the sale transaction: validate against the
// customer registry and inventory, reserve every line item through the
// repository's versioned compare-and-swap, then append the sale to the
// ledger. Reservation failures are compensated so a failed call never
// changes any quantity.
type SellHandler struct {
	inventory inventorydomain.InventoryRepository
	registry  CustomerRegistry
	sales     domain.SaleRepository
	publisher EventPublisher
}

// NewSellHandler creates a new sell handler
func NewSellHandler(
	inventory inventorydomain.InventoryRepository,
	registry CustomerRegistry,
	sales domain.SaleRepository,
	publisher EventPublisher,
) *SellHandler {
	return &SellHandler{
		inventory: inventory,
		registry:  registry,
		sales:     sales,
		publisher: publisher,
	}
}

// Handle executes the sell command. Conflicts with concurrent sales are
// retried from validation with jittered backoff; business failures
// (insufficient stock, invalid customer) surface immediately.
func (h *SellHandler) Handle(ctx context.Context, cmd SellCommand) (*domain.Sale, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sale, err := h.attempt(ctx, cmd)
		if err == nil {
			return sale, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		lastErr = err
		if attempt < maxAttempts {
			backoff := time.Duration(attempt)*retryBackoff + time.Duration(rand.Int63n(int64(retryBackoff)))
			logger.Warn(ctx).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Uint("vehicle_id", cmd.VehicleID).
				Msg("Sale lost a reservation race, retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, lastErr
}

// reservation is one validated line waiting to be decremented
type reservation struct {
	itemID   uint
	category inventorydomain.Category
	name     string
	amount   int
	price    float64
	version  uint64
}

func (h *SellHandler) attempt(ctx context.Context, cmd SellCommand) (*domain.Sale, error) {
	// Validate phase: no mutation. Duplicate lines are rejected before
	// any repository access.
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("%w: vehicle quantity must be greater than 0", domain.ErrInvalidLineItem)
	}
	seen := map[uint]bool{cmd.VehicleID: true}
	for _, acc := range cmd.Accessories {
		if seen[acc.ItemID] {
			return nil, fmt.Errorf("%w: item %d", domain.ErrDuplicateLineItem, acc.ItemID)
		}
		seen[acc.ItemID] = true
		if acc.Quantity <= 0 {
			return nil, fmt.Errorf("%w: accessory %d quantity must be greater than 0", domain.ErrInvalidLineItem, acc.ItemID)
		}
	}

	customer, err := h.registry.Validate(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCustomer, cmd.CustomerID)
	}

	vehicle, err := h.snapshotLine(cmd.VehicleID, cmd.Quantity, inventorydomain.CategoryVehicle)
	if err != nil {
		return nil, err
	}

	reservations := []reservation{*vehicle}
	for _, acc := range cmd.Accessories {
		line, err := h.snapshotLine(acc.ItemID, acc.Quantity, inventorydomain.CategoryAccessory)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *line)
	}

	// Reserve phase: fixed ascending item-id order keeps concurrent
	// multi-item sales commutative and deadlock-free.
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].itemID < reservations[j].itemID
	})

	var applied []reservation
	for _, res := range reservations {
		if _, err := h.inventory.TryDecrement(ctx, res.itemID, res.amount, res.version); err != nil {
			h.compensate(ctx, applied)
			switch {
			case errors.Is(err, inventorydomain.ErrNotFound):
				return nil, fmt.Errorf("%w: item %d", domain.ErrItemVanished, res.itemID)
			case errors.Is(err, inventorydomain.ErrVersionConflict),
				errors.Is(err, inventorydomain.ErrInsufficientStock):
				saleConflicts.Inc()
				return nil, fmt.Errorf("%w: item %d", domain.ErrConflict, res.itemID)
			default:
				return nil, fmt.Errorf("failed to reserve item %d: %w", res.itemID, err)
			}
		}
		applied = append(applied, res)
	}

	// Commit phase: prices were snapshotted at validation and are never
	// re-read here.
	sale := &domain.Sale{
		SaleNumber: fmt.Sprintf("SAL-%s", uuid.New().String()[:8]),
		CustomerID: customer.ID,
		SoldBy:     cmd.SoldBy,
		SaleDate:   time.Now(),
	}
	for _, res := range reservations {
		subtotal := float64(res.amount) * res.price
		sale.LineItems = append(sale.LineItems, domain.SaleLineItem{
			ItemID:          res.itemID,
			ItemCategory:    res.category,
			ItemName:        res.name,
			Quantity:        res.amount,
			UnitPriceAtSale: res.price,
			Subtotal:        subtotal,
		})
		sale.TotalPrice += subtotal
	}

	if err := h.sales.Create(sale); err != nil {
		h.compensate(ctx, applied)
		return nil, fmt.Errorf("failed to append sale: %w", err)
	}

	salesCommitted.Inc()

	if h.publisher != nil {
		h.publisher.SaleCommitted(ctx, sale)
	}

	return sale, nil
}

// snapshotLine reads one item and validates the requested amount against
// current stock, capturing the price and version token for the reserve phase.
func (h *SellHandler) snapshotLine(itemID uint, amount int, want inventorydomain.Category) (*reservation, error) {
	item, err := h.inventory.FindByID(itemID)
	if err != nil {
		if errors.Is(err, inventorydomain.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", domain.ErrItemVanished, itemID)
		}
		return nil, fmt.Errorf("failed to read item %d: %w", itemID, err)
	}

	if item.Category != want {
		return nil, fmt.Errorf("%w: item %d is %s, expected %s", domain.ErrInvalidLineItem, itemID, item.Category, want)
	}

	if item.Quantity < amount {
		return nil, fmt.Errorf("%w: item %d has %d on hand, requested %d",
			domain.ErrInsufficientStock, itemID, item.Quantity, amount)
	}

	return &reservation{
		itemID:   item.ID,
		category: item.Category,
		name:     item.Name,
		amount:   amount,
		price:    item.UnitPrice,
		version:  item.Version,
	}, nil
}

// compensate re-increments every already-applied decrement. A failure
// here should be impossible under correct repository semantics; it is
// logged for manual reconciliation, never swallowed.
func (h *SellHandler) compensate(ctx context.Context, applied []reservation) {
	for i := len(applied) - 1; i >= 0; i-- {
		res := applied[i]
		if _, err := h.inventory.Restock(ctx, res.itemID, res.amount); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("item_id", res.itemID).
				Int("amount", res.amount).
				Msg("Compensation failed, manual reconciliation required")
			continue
		}
		saleCompensations.Inc()
	}
}
