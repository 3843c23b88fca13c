package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nurbek/dealer-pos/internal/customer/domain"
	"github.com/nurbek/dealer-pos/internal/customer/usecase/command"
	"github.com/nurbek/dealer-pos/internal/customer/usecase/query"
)

// CustomerHandler handles HTTP requests for the customer book
type CustomerHandler struct {
	registerHandler *command.RegisterCustomerHandler
	getHandler      *query.GetCustomerHandler
	listHandler     *query.ListCustomersHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	registerHandler *command.RegisterCustomerHandler,
	getHandler *query.GetCustomerHandler,
	listHandler *query.ListCustomersHandler,
) *CustomerHandler {
	return &CustomerHandler{
		registerHandler: registerHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterCustomer handles POST /api/customers
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	customer, err := h.registerHandler.Handle(command.RegisterCustomerCommand{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
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
		Message: "Customer registered successfully",
		Data:    customer,
	})
}

// GetCustomer handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid customer ID",
		})
		return
	}

	customer, err := h.getHandler.Handle(query.GetCustomerQuery{ID: uint(id)})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidCustomer) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   "Customer not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    customer,
	})
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.listHandler.Handle(query.ListCustomersQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list customers",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    customers,
	})
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(router *mux.Router, authMW func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/customers", authMW(h.ListCustomers)).Methods("GET")
	router.HandleFunc("/api/customers", authMW(h.RegisterCustomer)).Methods("POST")
	router.HandleFunc("/api/customers/{id}", authMW(h.GetCustomer)).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
