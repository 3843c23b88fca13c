package kafka

import (
	"context"

	saledomain "github.com/nurbek/dealer-pos/internal/sale/domain"
	"github.com/nurbek/dealer-pos/pkg/logger"
)

// SalePublisher adapts the Kafka publisher to the sale transaction's
// EventPublisher port. The sale is already durable when this runs, so a
// publish failure is logged rather than failing the transaction.
type SalePublisher struct {
	publisher *Publisher
}

// NewSalePublisher creates a new sale event publisher
func NewSalePublisher(publisher *Publisher) *SalePublisher {
	return &SalePublisher{publisher: publisher}
}

// SaleCommitted publishes the committed sale
func (p *SalePublisher) SaleCommitted(ctx context.Context, sale *saledomain.Sale) {
	event := SaleCommittedEvent{
		SaleID:     sale.ID,
		SaleNumber: sale.SaleNumber,
		CustomerID: sale.CustomerID,
		SoldBy:     sale.SoldBy,
		TotalPrice: sale.TotalPrice,
		SaleDate:   sale.SaleDate,
	}
	for _, line := range sale.LineItems {
		event.LineItems = append(event.LineItems, SaleLineItemEvent{
			ItemID:          line.ItemID,
			ItemCategory:    string(line.ItemCategory),
			Quantity:        line.Quantity,
			UnitPriceAtSale: line.UnitPriceAtSale,
			Subtotal:        line.Subtotal,
		})
	}

	if err := p.publisher.PublishSaleCommitted(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("sale_number", sale.SaleNumber).
			Msg("Failed to publish committed sale")
	}
}
