package command

import (
	"fmt"
	"strings"

	"github.com/nurbek/dealer-pos/internal/user/domain"
	"github.com/nurbek/dealer-pos/pkg/auth"
)

// RegisterUserCommand represents the command to register a staff account
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// RegisterUserHandler handles register user command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Email == "" || !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if cmd.Role == "" {
		cmd.Role = domain.RoleStaff
	}
	if cmd.Role != domain.RoleStaff && cmd.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role: %s", cmd.Role)
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: hash,
		FullName: cmd.FullName,
		Role:     cmd.Role,
		IsActive: true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
