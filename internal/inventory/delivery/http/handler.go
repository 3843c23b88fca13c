package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
	"github.com/nurbek/dealer-pos/internal/inventory/usecase/command"
	"github.com/nurbek/dealer-pos/internal/inventory/usecase/query"
	"github.com/nurbek/dealer-pos/pkg/logger"
)

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	createHandler  *command.CreateItemHandler
	updateHandler  *command.UpdateItemHandler
	deleteHandler  *command.DeleteItemHandler
	restockHandler *command.RestockItemHandler
	getHandler     *query.GetItemHandler
	listHandler    *query.ListItemsHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createHandler *command.CreateItemHandler,
	updateHandler *command.UpdateItemHandler,
	deleteHandler *command.DeleteItemHandler,
	restockHandler *command.RestockItemHandler,
	getHandler *query.GetItemHandler,
	listHandler *query.ListItemsHandler,
) *InventoryHandler {
	return &InventoryHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		restockHandler: restockHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category  string  `json:"category"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		Quantity  int     `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.createHandler.Handle(command.CreateItemCommand{
		Category:  domain.Category(req.Category),
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Inventory item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.getHandler.Handle(query.GetItemQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Inventory item not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /api/inventory
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	items, err := h.listHandler.Handle(query.ListItemsQuery{
		Category: domain.Category(category),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list inventory items")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// UpdateItem handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		Quantity  int     `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.updateHandler.Handle(command.UpdateItemCommand{
		ID:        id,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory item updated successfully",
		Data:    item,
	})
}

// RestockItem handles PATCH /api/inventory/{id}/restock
func (h *InventoryHandler) RestockItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Amount int `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.restockHandler.Handle(r.Context(), command.RestockItemCommand{
		ID:     id,
		Amount: req.Amount,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory item restocked successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteItemCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to delete inventory item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory item deleted successfully",
	})
}

// RegisterRoutes registers all inventory routes. Mutations require an
// admin credential; reads only need authentication.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authMW, adminMW func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/inventory", authMW(h.ListItems)).Methods("GET")
	router.HandleFunc("/api/inventory", adminMW(h.CreateItem)).Methods("POST")
	router.HandleFunc("/api/inventory/{id}", authMW(h.GetItem)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", adminMW(h.UpdateItem)).Methods("PUT")
	router.HandleFunc("/api/inventory/{id}/restock", adminMW(h.RestockItem)).Methods("PATCH")
	router.HandleFunc("/api/inventory/{id}", adminMW(h.DeleteItem)).Methods("DELETE")
}

// RegisterHealthCheck registers the health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Dealership service is healthy",
		})
	}).Methods("GET")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
