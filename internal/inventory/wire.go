//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	deliveryhttp "github.com/nurbek/dealer-pos/internal/inventory/delivery/http"
	"github.com/nurbek/dealer-pos/internal/inventory/domain"
	"github.com/nurbek/dealer-pos/internal/inventory/repository"
	"github.com/nurbek/dealer-pos/internal/inventory/usecase/command"
	"github.com/nurbek/dealer-pos/internal/inventory/usecase/query"
)

// ProvideInventoryRepository provides the inventory repository with tracing
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracingInventoryRepository(repository.NewGormInventoryRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateItemHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
	command.NewRestockItemHandler,
	query.NewGetItemHandler,
	query.NewListItemsHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*deliveryhttp.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		deliveryhttp.NewInventoryHandler,
	)
	return nil, nil
}
