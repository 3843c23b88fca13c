package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nurbek/dealer-pos/internal/sale/domain"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/command"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/query"
	userhttp "github.com/nurbek/dealer-pos/internal/user/delivery/http"
	"github.com/nurbek/dealer-pos/pkg/logger"
)

// SaleHandler handles HTTP requests for the sale transaction core
type SaleHandler struct {
	sellHandler    *command.SellHandler
	getHandler     *query.GetSaleHandler
	historyHandler *query.PurchaseHistoryHandler
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	sellHandler *command.SellHandler,
	getHandler *query.GetSaleHandler,
	historyHandler *query.PurchaseHistoryHandler,
) *SaleHandler {
	return &SaleHandler{
		sellHandler:    sellHandler,
		getHandler:     getHandler,
		historyHandler: historyHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// Sell handles POST /api/sales
func (h *SaleHandler) Sell(w http.ResponseWriter, r *http.Request) {
	soldBy, ok := userhttp.CallerUsername(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Not authenticated",
		})
		return
	}

	var req struct {
		CustomerID  string `json:"customer_id"`
		VehicleID   uint   `json:"vehicle_id"`
		Quantity    int    `json:"quantity"`
		Accessories []struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"accessories"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.SellCommand{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Quantity:   req.Quantity,
		SoldBy:     soldBy,
	}
	for _, acc := range req.Accessories {
		cmd.Accessories = append(cmd.Accessories, command.AccessoryLine{
			ItemID:   acc.ID,
			Quantity: acc.Quantity,
		})
	}

	sale, err := h.sellHandler.Handle(r.Context(), cmd)
	if err != nil {
		status, kind := mapSaleError(err)
		if status == http.StatusInternalServerError {
			logger.Error(r.Context()).Err(err).Msg("Sale failed unexpectedly")
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
			Kind:    kind,
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Sale committed successfully",
		Data:    sale,
	})
}

// GetSale handles GET /api/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid sale ID",
		})
		return
	}

	sale, err := h.getHandler.Handle(query.GetSaleQuery{ID: uint(id)})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrSaleNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   "Sale not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    sale,
	})
}

// PurchaseHistory handles GET /api/customers/{customer_id}/sales
func (h *SaleHandler) PurchaseHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseUint(vars["customer_id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid customer ID",
		})
		return
	}

	from, ok := parseTimeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, r, "to")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sales, err := h.historyHandler.Handle(query.PurchaseHistoryQuery{
		CustomerID: uint(customerID),
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    sales,
	})
}

// RegisterRoutes registers all sale routes; every route needs a credential
func (h *SaleHandler) RegisterRoutes(router *mux.Router, authMW func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/sales", authMW(h.Sell)).Methods("POST")
	router.HandleFunc("/api/sales/{id}", authMW(h.GetSale)).Methods("GET")
	router.HandleFunc("/api/customers/{customer_id}/sales", authMW(h.PurchaseHistory)).Methods("GET")
}

// mapSaleError translates the sale error taxonomy to HTTP status codes:
// validation failures are 400, lost races and stock shortfalls are 409,
// anything unexpected is 500.
func mapSaleError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCustomer):
		return http.StatusBadRequest, "invalid_customer"
	case errors.Is(err, domain.ErrDuplicateLineItem):
		return http.StatusBadRequest, "duplicate_line_item"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "invalid_line_item"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrItemVanished):
		return http.StatusConflict, "item_vanished"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + name + " timestamp, expected RFC 3339",
		})
		return nil, false
	}
	return &t, true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
