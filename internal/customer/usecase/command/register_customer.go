package command

import (
	"fmt"
	"strings"

	"github.com/nurbek/dealer-pos/internal/customer/domain"
)

// RegisterCustomerCommand represents the command to register a customer
type RegisterCustomerCommand struct {
	FullName string
	Email    string
	Phone    string
}

// RegisterCustomerHandler handles register customer command
type RegisterCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewRegisterCustomerHandler creates a new register customer handler
func NewRegisterCustomerHandler(repo domain.CustomerRepository) *RegisterCustomerHandler {
	return &RegisterCustomerHandler{repo: repo}
}

// Handle executes the register customer command
func (h *RegisterCustomerHandler) Handle(cmd RegisterCustomerCommand) (*domain.Customer, error) {
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}

	if cmd.Email == "" || !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}

	customer := &domain.Customer{
		FullName: cmd.FullName,
		Email:    cmd.Email,
		Phone:    cmd.Phone,
	}

	if err := h.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	return customer, nil
}
