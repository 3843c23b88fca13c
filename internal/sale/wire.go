//go:build wireinject
// +build wireinject

package sale

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/nurbek/dealer-pos/internal/customer"
	customerdomain "github.com/nurbek/dealer-pos/internal/customer/domain"
	customerrepo "github.com/nurbek/dealer-pos/internal/customer/repository"
	inventorydomain "github.com/nurbek/dealer-pos/internal/inventory/domain"
	inventoryrepo "github.com/nurbek/dealer-pos/internal/inventory/repository"
	deliveryhttp "github.com/nurbek/dealer-pos/internal/sale/delivery/http"
	"github.com/nurbek/dealer-pos/internal/sale/domain"
	"github.com/nurbek/dealer-pos/internal/sale/repository"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/command"
	"github.com/nurbek/dealer-pos/internal/sale/usecase/query"
)

// ProvideSaleRepository provides the sale ledger repository
func ProvideSaleRepository(db *gorm.DB) domain.SaleRepository {
	return repository.NewGormSaleRepository(db)
}

// ProvideInventoryRepository provides the inventory repository with tracing
func ProvideInventoryRepository(db *gorm.DB) inventorydomain.InventoryRepository {
	return inventoryrepo.NewTracingInventoryRepository(inventoryrepo.NewGormInventoryRepository(db))
}

// ProvideCustomerRegistry provides the registry the sale path validates against
func ProvideCustomerRegistry(db *gorm.DB) command.CustomerRegistry {
	var repo customerdomain.CustomerRepository = customerrepo.NewGormCustomerRepository(db)
	return customer.NewRegistry(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSaleRepository,
	ProvideInventoryRepository,
	ProvideCustomerRegistry,
)

var HandlerSet = wire.NewSet(
	command.NewSellHandler,
	query.NewGetSaleHandler,
	query.NewPurchaseHistoryHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher) (*deliveryhttp.SaleHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		deliveryhttp.NewSaleHandler,
	)
	return nil, nil
}
