package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/nurbek/dealer-pos/internal/sale/domain"
)

func newSale(customerID uint, saleDate time.Time) *domain.Sale {
	return &domain.Sale{
		SaleNumber: "SAL-" + saleDate.Format("150405.000"),
		CustomerID: customerID,
		SoldBy:     "staff",
		SaleDate:   saleDate,
		TotalPrice: 1000,
		LineItems: []domain.SaleLineItem{
			{ItemID: 1, Quantity: 1, UnitPriceAtSale: 1000, Subtotal: 1000},
		},
	}
}

func TestCreateAssignsIDs(t *testing.T) {
	repo := NewMemorySaleRepository()

	sale := newSale(7, time.Now())
	if err := repo.Create(sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if sale.ID == 0 {
		t.Error("sale ID not assigned")
	}
	if sale.LineItems[0].SaleID != sale.ID {
		t.Errorf("line item SaleID = %d, want %d", sale.LineItems[0].SaleID, sale.ID)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewMemorySaleRepository()

	_, err := repo.FindByID(42)
	if !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("FindByID() error = %v, want ErrSaleNotFound", err)
	}
}

func TestFindBySaleNumber(t *testing.T) {
	repo := NewMemorySaleRepository()
	sale := newSale(7, time.Now())
	if err := repo.Create(sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.FindBySaleNumber(sale.SaleNumber)
	if err != nil {
		t.Fatalf("FindBySaleNumber() error = %v", err)
	}
	if got.ID != sale.ID {
		t.Errorf("ID = %d, want %d", got.ID, sale.ID)
	}

	if _, err := repo.FindBySaleNumber("SAL-missing"); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Errorf("FindBySaleNumber() error = %v, want ErrSaleNotFound", err)
	}
}

// Committed entries must not be reachable through returned copies.
func TestLedgerIsImmutableThroughReads(t *testing.T) {
	repo := NewMemorySaleRepository()
	sale := newSale(7, time.Now())
	if err := repo.Create(sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, _ := repo.FindByID(sale.ID)
	got.TotalPrice = 0
	got.LineItems[0].Quantity = 999

	again, _ := repo.FindByID(sale.ID)
	if again.TotalPrice != 1000 {
		t.Errorf("TotalPrice mutated through returned copy: %v", again.TotalPrice)
	}
	if again.LineItems[0].Quantity != 1 {
		t.Errorf("line item mutated through returned copy: %d", again.LineItems[0].Quantity)
	}
}

func TestFindByCustomerIDPagination(t *testing.T) {
	repo := NewMemorySaleRepository()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := repo.Create(newSale(7, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	firstPage, err := repo.FindByCustomerID(7, nil, nil, 2, 0)
	if err != nil {
		t.Fatalf("FindByCustomerID() error = %v", err)
	}
	if len(firstPage) != 2 {
		t.Fatalf("len(firstPage) = %d, want 2", len(firstPage))
	}

	secondPage, err := repo.FindByCustomerID(7, nil, nil, 2, 2)
	if err != nil {
		t.Fatalf("FindByCustomerID() error = %v", err)
	}
	if len(secondPage) != 2 {
		t.Fatalf("len(secondPage) = %d, want 2", len(secondPage))
	}

	if !firstPage[1].SaleDate.After(secondPage[0].SaleDate) {
		t.Error("pages out of descending date order")
	}
}

func TestFindByCustomerIDTieBreaksOnID(t *testing.T) {
	repo := NewMemorySaleRepository()
	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := newSale(7, when)
	second := newSale(7, when)
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	sales, err := repo.FindByCustomerID(7, nil, nil, 10, 0)
	if err != nil {
		t.Fatalf("FindByCustomerID() error = %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("len(sales) = %d, want 2", len(sales))
	}
	if sales[0].ID != second.ID {
		t.Errorf("same-date ordering: got ID %d first, want %d (later append)", sales[0].ID, second.ID)
	}
}
