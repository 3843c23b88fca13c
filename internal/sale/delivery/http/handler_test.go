package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/nurbek/dealer-pos/internal/customer"
	customerdomain "github.com/nurbek/dealer-pos/internal/customer/domain"
	customerrepo "github.com/nurbek/dealer-pos/internal/customer/repository"
	inventorydomain "github.com/nurbek/dealer-pos/internal/inventory/domain"
	inventoryrepo "github.com/nurbek/dealer-pos/internal/inventory/repository"
	salerepo "github.com/nurbek/dealer-pos/internal/sale/repository"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/command"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/query"
	userhttp "github.com/nurbek/dealer-pos/internal/user/delivery/http"
)

type fixture struct {
	handler   *SaleHandler
	inventory *inventoryrepo.MemoryInventoryRepository
	vehicleID uint
	hitchID   uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	inventory := inventoryrepo.NewMemoryInventoryRepository()
	vehicle := &inventorydomain.InventoryItem{
		Category:  inventorydomain.CategoryVehicle,
		Name:      "Surplus truck",
		UnitPrice: 100000,
		Quantity:  5,
	}
	if err := inventory.Create(vehicle); err != nil {
		t.Fatal(err)
	}
	hitch := &inventorydomain.InventoryItem{
		Category:  inventorydomain.CategoryAccessory,
		Name:      "Tow hitch",
		UnitPrice: 2000,
		Quantity:  3,
	}
	if err := inventory.Create(hitch); err != nil {
		t.Fatal(err)
	}

	customers := customerrepo.NewMemoryCustomerRepository()
	if err := customers.Create(&customerdomain.Customer{FullName: "Askar T.", Email: "askar@example.com"}); err != nil {
		t.Fatal(err)
	}

	sales := salerepo.NewMemorySaleRepository()
	handler := NewSaleHandler(
		command.NewSellHandler(inventory, customer.NewRegistry(customers), sales, nil),
		query.NewGetSaleHandler(sales),
		query.NewPurchaseHistoryHandler(sales),
	)

	return &fixture{
		handler:   handler,
		inventory: inventory,
		vehicleID: vehicle.ID,
		hitchID:   hitch.ID,
	}
}

func authenticated(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), userhttp.UsernameKey, "staff")
	return r.WithContext(ctx)
}

func postSale(t *testing.T, f *fixture, body string, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	if withAuth {
		req = authenticated(req)
	}

	rec := httptest.NewRecorder()
	f.handler.Sell(rec, req)
	return rec
}

func TestSellEndpointHappyPath(t *testing.T) {
	f := newFixture(t)

	body := `{"customer_id":"1","vehicle_id":1,"quantity":2,"accessories":[{"id":2,"quantity":1}]}`
	rec := postSale(t, f, body, true)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalPrice float64 `json:"total_price"`
			SoldBy     string  `json:"sold_by"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Data.TotalPrice != 202000 {
		t.Errorf("total_price = %v, want 202000", resp.Data.TotalPrice)
	}
	if resp.Data.SoldBy != "staff" {
		t.Errorf("sold_by = %q, want staff", resp.Data.SoldBy)
	}
}

func TestSellEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "invalid customer",
			body:       `{"customer_id":"999","vehicle_id":1,"quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_customer",
		},
		{
			name:       "malformed customer id",
			body:       `{"customer_id":"abc","vehicle_id":1,"quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_customer",
		},
		{
			name:       "duplicate line item",
			body:       `{"customer_id":"1","vehicle_id":1,"quantity":1,"accessories":[{"id":2,"quantity":1},{"id":2,"quantity":1}]}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "duplicate_line_item",
		},
		{
			name:       "insufficient stock",
			body:       `{"customer_id":"1","vehicle_id":1,"quantity":10}`,
			wantStatus: http.StatusConflict,
			wantKind:   "insufficient_stock",
		},
		{
			name:       "missing vehicle",
			body:       `{"customer_id":"1","vehicle_id":42,"quantity":1}`,
			wantStatus: http.StatusConflict,
			wantKind:   "item_vanished",
		},
		{
			name:       "category mismatch",
			body:       `{"customer_id":"1","vehicle_id":2,"quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_line_item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := postSale(t, f, tt.body, true)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
		})
	}
}

func TestSellEndpointMalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := postSale(t, f, `{"customer_id":`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSellEndpointRequiresCredential(t *testing.T) {
	f := newFixture(t)

	rec := postSale(t, f, `{"customer_id":"1","vehicle_id":1,"quantity":1}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPurchaseHistoryEndpoint(t *testing.T) {
	f := newFixture(t)

	// Commit two sales, then read them back through the history endpoint
	for i := 0; i < 2; i++ {
		rec := postSale(t, f, `{"customer_id":"1","vehicle_id":1,"quantity":1}`, true)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed sale %d failed: %d %s", i, rec.Code, rec.Body.String())
		}
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/customers/{customer_id}/sales", f.handler.PurchaseHistory).Methods("GET")

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/customers/1/sales", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("history returned %d sales, want 2", len(resp.Data))
	}
}

func TestPurchaseHistoryEndpointBadTimestamp(t *testing.T) {
	f := newFixture(t)

	router := mux.NewRouter()
	router.HandleFunc("/api/customers/{customer_id}/sales", f.handler.PurchaseHistory).Methods("GET")

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/customers/1/sales?from=yesterday", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetSaleEndpointNotFound(t *testing.T) {
	f := newFixture(t)

	router := mux.NewRouter()
	router.HandleFunc("/api/sales/{id}", f.handler.GetSale).Methods("GET")

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/sales/42", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
