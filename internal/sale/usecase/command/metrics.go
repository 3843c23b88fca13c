package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	salesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealerpos_sales_committed_total",
		Help: "Number of sale transactions committed",
	})

	saleConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealerpos_sale_conflicts_total",
		Help: "Number of sale reservations lost to a concurrent writer",
	})

	saleCompensations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealerpos_sale_compensations_total",
		Help: "Number of reserved line items re-incremented after a failed sale",
	})
)
