package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/nurbek/dealer-pos/internal/customer"
	customerhttp "github.com/nurbek/dealer-pos/internal/customer/delivery/http"
	customercmd "github.com/nurbek/dealer-pos/internal/customer/usecase/command"
	customerquery "github.com/nurbek/dealer-pos/internal/customer/usecase/query"
	customerrepo "github.com/nurbek/dealer-pos/internal/customer/repository"
	"github.com/nurbek/dealer-pos/internal/inventory"
	inventoryhttp "github.com/nurbek/dealer-pos/internal/inventory/delivery/http"
	inventorycmd "github.com/nurbek/dealer-pos/internal/inventory/usecase/command"
	inventoryquery "github.com/nurbek/dealer-pos/internal/inventory/usecase/query"
	inventoryrepo "github.com/nurbek/dealer-pos/internal/inventory/repository"
	"github.com/nurbek/dealer-pos/internal/sale"
	saledomain "github.com/nurbek/dealer-pos/internal/sale/domain"
	salehttp "github.com/nurbek/dealer-pos/internal/sale/delivery/http"
	salecmd "github.com/nurbek/dealer-pos/internal/sale/usecase/command"
	salequery "github.com/nurbek/dealer-pos/internal/sale/usecase/query"
	salerepo "github.com/nurbek/dealer-pos/internal/sale/repository"
	"github.com/nurbek/dealer-pos/internal/user"
	userhttp "github.com/nurbek/dealer-pos/internal/user/delivery/http"
	usercmd "github.com/nurbek/dealer-pos/internal/user/usecase/command"
	userquery "github.com/nurbek/dealer-pos/internal/user/usecase/query"
	userrepo "github.com/nurbek/dealer-pos/internal/user/repository"
	customerdomain "github.com/nurbek/dealer-pos/internal/customer/domain"
	inventorydomain "github.com/nurbek/dealer-pos/internal/inventory/domain"
	userdomain "github.com/nurbek/dealer-pos/internal/user/domain"
	"github.com/nurbek/dealer-pos/kafka"
	"github.com/nurbek/dealer-pos/pkg/database"
	"github.com/nurbek/dealer-pos/pkg/logger"
	"github.com/nurbek/dealer-pos/pkg/tracing"
)

type handlers struct {
	inventory *inventoryhttp.InventoryHandler
	customer  *customerhttp.CustomerHandler
	sale      *salehttp.SaleHandler
	user      *userhttp.UserHandler
}

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "dealership-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting dealership service")

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

	// Optional Kafka publisher for committed-sale events
	var publisher salecmd.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, sale events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafka.NewSalePublisher(kafkaPublisher)
		}
	}

	if getEnv("STORAGE", "postgres") == "memory" {
		logger.Logger.Warn().Msg("Running with in-memory storage, data will not survive a restart")
		server := startHTTPServer(buildMemoryHandlers(publisher), nil)
		waitForShutdown(server)
		return
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "dealerpos"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	server := startHTTPServer(buildGormHandlers(db, publisher), sqlDB)
	waitForShutdown(server)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&inventorydomain.InventoryItem{},
		&customerdomain.Customer{},
		&saledomain.Sale{},
		&saledomain.SaleLineItem{},
		&userdomain.User{},
	)
}

func buildGormHandlers(db *gorm.DB, publisher salecmd.EventPublisher) handlers {
	inventoryHandler, err := inventory.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	customerHandler, err := customer.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize customer handler")
	}
	saleHandler, err := sale.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize sale handler")
	}
	userHandler, err := user.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}

	return handlers{
		inventory: inventoryHandler,
		customer:  customerHandler,
		sale:      saleHandler,
		user:      userHandler,
	}
}

func buildMemoryHandlers(publisher salecmd.EventPublisher) handlers {
	inventoryRepo := inventoryrepo.NewMemoryInventoryRepository()
	customerRepo := customerrepo.NewMemoryCustomerRepository()
	saleRepo := salerepo.NewMemorySaleRepository()
	userRepo := userrepo.NewMemoryUserRepository()

	inventoryHandler := inventoryhttp.NewInventoryHandler(
		inventorycmd.NewCreateItemHandler(inventoryRepo),
		inventorycmd.NewUpdateItemHandler(inventoryRepo),
		inventorycmd.NewDeleteItemHandler(inventoryRepo),
		inventorycmd.NewRestockItemHandler(inventoryRepo),
		inventoryquery.NewGetItemHandler(inventoryRepo),
		inventoryquery.NewListItemsHandler(inventoryRepo),
	)

	customerHandler := customerhttp.NewCustomerHandler(
		customercmd.NewRegisterCustomerHandler(customerRepo),
		customerquery.NewGetCustomerHandler(customerRepo),
		customerquery.NewListCustomersHandler(customerRepo),
	)

	saleHandler := salehttp.NewSaleHandler(
		salecmd.NewSellHandler(inventoryRepo, customer.NewRegistry(customerRepo), saleRepo, publisher),
		salequery.NewGetSaleHandler(saleRepo),
		salequery.NewPurchaseHistoryHandler(saleRepo),
	)

	userHandler := userhttp.NewUserHandler(
		usercmd.NewRegisterUserHandler(userRepo),
		usercmd.NewLoginUserHandler(userRepo),
		userquery.NewGetUserHandler(userRepo),
	)

	return handlers{
		inventory: inventoryHandler,
		customer:  customerHandler,
		sale:      saleHandler,
		user:      userHandler,
	}
}

func startHTTPServer(h handlers, sqlDB *sql.DB) *http.Server {
	router := mux.NewRouter()
	router.Use(salehttp.TracingMiddleware)
	router.Use(salehttp.LoggingMiddleware)

	h.user.RegisterRoutes(router)
	h.inventory.RegisterRoutes(router, userhttp.AuthMiddleware, userhttp.AdminMiddleware)
	h.customer.RegisterRoutes(router, userhttp.AuthMiddleware)
	h.sale.RegisterRoutes(router, userhttp.AuthMiddleware)

	h.inventory.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + getEnv("PORT", "8080"),
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	return server
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Logger.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
