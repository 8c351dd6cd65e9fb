package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/motormarket/backend/internal/application/cart"
	catalogapp "github.com/motormarket/backend/internal/application/catalog"
	checkoutapp "github.com/motormarket/backend/internal/application/checkout"
	identityapp "github.com/motormarket/backend/internal/application/identity"
	orderapp "github.com/motormarket/backend/internal/application/order"
	showsapp "github.com/motormarket/backend/internal/application/shows"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/motormarket/backend/internal/infrastructure/auth"
	"github.com/motormarket/backend/internal/infrastructure/cache"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/infrastructure/payment"
	"github.com/motormarket/backend/internal/infrastructure/persistence"
	"github.com/motormarket/backend/internal/interfaces/http/handler"
	"github.com/motormarket/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// version is injected at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting MotorMarket backend",
		zap.String("version", version),
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Cart snapshots live in Redis when configured, otherwise in process
	// memory (single-instance deployments only).
	readiness := map[string]handler.Pinger{"database": db}
	var cartStore cart.Store
	switch cfg.Cart.Store {
	case "redis":
		redisStore, err := cache.NewRedisCartStore(cfg.Redis, cfg.Cart.SnapshotTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		readiness["redis"] = redisStore
		cartStore = redisStore
		log.Info("Cart store: redis", zap.String("addr", cfg.Redis.RedisAddr()))
	default:
		cartStore = cache.NewMemoryCartStore()
		log.Info("Cart store: in-memory")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	showRepo := persistence.NewGormShowRepository(db.DB)

	// Payment gateway (simulated; approval rate and latency come from config)
	gateway := payment.NewSimulatedGateway(cfg.Payment.SuccessRate,
		payment.WithLatency(cfg.Payment.Latency))

	pricing := order.PricingPolicy{
		TaxRate:               decimal.NewFromFloat(cfg.Pricing.TaxRate),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.Pricing.FreeShippingThreshold),
		FlatShippingFee:       decimal.NewFromFloat(cfg.Pricing.FlatShippingFee),
		Currency:              valueobject.Currency(cfg.Pricing.Currency),
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService)
	userService := identityapp.NewUserService(userRepo)
	productService := catalogapp.NewProductService(productRepo)
	cartService := cartapp.NewCartService(cartStore, productRepo)
	checkoutService := checkoutapp.NewCheckoutService(
		cartStore, productRepo, orderRepo, gateway, pricing, cfg.Payment.Timeout)
	orderService := orderapp.NewOrderService(orderRepo)
	showService := showsapp.NewShowService(showRepo)

	// HTTP handlers and router
	handlers := router.Handlers{
		System:   handler.NewSystemHandler(version, readiness),
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Show:     handler.NewShowHandler(showService),
		User:     handler.NewUserHandler(userService),
	}
	engine := router.New(cfg, log, jwtService, handlers).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
