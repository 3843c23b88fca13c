package query

import (
	"fmt"
	"time"

	"github.com/nurbek/dealer-pos/internal/sale/domain"
)

// PurchaseHistoryQuery represents the query over a customer's committed
// sales. Nil date bounds mean unbounded on that side.
type PurchaseHistoryQuery struct {
	CustomerID uint
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// PurchaseHistoryHandler handles purchase history query
type PurchaseHistoryHandler struct {
	repo domain.SaleRepository
}

// NewPurchaseHistoryHandler creates a new purchase history handler
func NewPurchaseHistoryHandler(repo domain.SaleRepository) *PurchaseHistoryHandler {
	return &PurchaseHistoryHandler{repo: repo}
}

// Handle executes the purchase history query, most recent first. Each
// call re-reads the committed ledger; there is no shared cursor.
func (h *PurchaseHistoryHandler) Handle(query PurchaseHistoryQuery) ([]domain.Sale, error) {
	if query.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}

	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return nil, fmt.Errorf("date range is inverted")
	}

	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	return h.repo.FindByCustomerID(query.CustomerID, query.From, query.To, query.Limit, query.Offset)
}
