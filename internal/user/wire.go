//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	deliveryhttp "github.com/nurbek/dealer-pos/internal/user/delivery/http"
	"github.com/nurbek/dealer-pos/internal/user/domain"
	"github.com/nurbek/dealer-pos/internal/user/repository"
	"github.com/nurbek/dealer-pos/internal/user/usecase/command"
	"github.com/nurbek/dealer-pos/internal/user/usecase/query"
)

// ProvideUserRepository provides the staff account repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	query.NewGetUserHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*deliveryhttp.UserHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		deliveryhttp.NewUserHandler,
	)
	return nil, nil
}
