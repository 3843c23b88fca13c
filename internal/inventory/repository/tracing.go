package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository decorates another repository with spans on
// the operations the sale transaction depends on.
type TracingInventoryRepository struct {
	domain.InventoryRepository
}

func NewTracingInventoryRepository(inner domain.InventoryRepository) *TracingInventoryRepository {
	return &TracingInventoryRepository{InventoryRepository: inner}
}

func (r *TracingInventoryRepository) TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error) {
	ctx, span := tracer.Start(ctx, "repository.TryDecrement",
		trace.WithAttributes(
			attribute.Int("inventory.item_id", int(id)),
			attribute.Int("inventory.amount", amount),
			attribute.Int64("inventory.expected_version", int64(expectedVersion)),
		),
	)
	defer span.End()

	newVersion, err := r.InventoryRepository.TryDecrement(ctx, id, amount, expectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("inventory.new_version", int64(newVersion)))
	return newVersion, nil
}

func (r *TracingInventoryRepository) Restock(ctx context.Context, id uint, amount int) (uint64, error) {
	ctx, span := tracer.Start(ctx, "repository.Restock",
		trace.WithAttributes(
			attribute.Int("inventory.item_id", int(id)),
			attribute.Int("inventory.amount", amount),
		),
	)
	defer span.End()

	newVersion, err := r.InventoryRepository.Restock(ctx, id, amount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("inventory.new_version", int64(newVersion)))
	return newVersion, nil
}
