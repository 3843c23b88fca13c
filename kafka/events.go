package kafka

import "time"

// SaleLineItemEvent is one line of a committed sale as published to Kafka
type SaleLineItemEvent struct {
	ItemID          uint    `json:"item_id"`
	ItemCategory    string  `json:"item_category"`
	Quantity        int     `json:"quantity"`
	UnitPriceAtSale float64 `json:"unit_price_at_sale"`
	Subtotal        float64 `json:"subtotal"`
}

// SaleCommittedEvent is published after a sale transaction commits
type SaleCommittedEvent struct {
	EventID    string              `json:"event_id"`
	EventType  string              `json:"event_type"`
	SaleID     uint                `json:"sale_id"`
	SaleNumber string              `json:"sale_number"`
	CustomerID uint                `json:"customer_id"`
	SoldBy     string              `json:"sold_by"`
	LineItems  []SaleLineItemEvent `json:"line_items"`
	TotalPrice float64             `json:"total_price"`
	SaleDate   time.Time           `json:"sale_date"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleCommitted = "sale.committed"
)

// Kafka topics
const (
	TopicSaleCommitted = "sale-committed"
)
