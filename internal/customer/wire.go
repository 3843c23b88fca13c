//go:build wireinject
// +build wireinject

package customer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	deliveryhttp "github.com/nurbek/dealer-pos/internal/customer/delivery/http"
	"github.com/nurbek/dealer-pos/internal/customer/domain"
	"github.com/nurbek/dealer-pos/internal/customer/repository"
	"github.com/nurbek/dealer-pos/internal/customer/usecase/command"
	"github.com/nurbek/dealer-pos/internal/customer/usecase/query"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return repository.NewGormCustomerRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCustomerRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterCustomerHandler,
	query.NewGetCustomerHandler,
	query.NewListCustomersHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*deliveryhttp.CustomerHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		deliveryhttp.NewCustomerHandler,
	)
	return nil, nil
}
