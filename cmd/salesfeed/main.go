package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nurbek/dealer-pos/kafka"
	"github.com/nurbek/dealer-pos/pkg/logger"
	"github.com/nurbek/dealer-pos/pkg/tracing"
)

var salesConsumed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dealerpos_salesfeed_events_consumed_total",
	Help: "Total number of committed-sale events consumed from Kafka",
})

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "salesfeed-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting sales feed consumer")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "salesfeed")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicSaleCommitted})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeSaleCommitted, handleSaleCommitted)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Metrics endpoint for scraping the feed counters
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
		})

		addr := ":" + getEnv("PORT", "8090")
		logger.Logger.Info().Str("addr", addr).Msg("Metrics server listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down sales feed consumer...")
	cancel()
}

func handleSaleCommitted(ctx context.Context, event kafka.SaleCommittedEvent) error {
	salesConsumed.Inc()

	logger.Info(ctx).
		Str("sale_number", event.SaleNumber).
		Uint("customer_id", event.CustomerID).
		Str("sold_by", event.SoldBy).
		Float64("total_price", event.TotalPrice).
		Int("line_items", len(event.LineItems)).
		Msg("Sale committed")

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
