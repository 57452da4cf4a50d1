// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/checkout"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
	"github.com/your-org/brightstore-backend/internal/domain/user"
	"github.com/your-org/brightstore-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/brightstore-backend/internal/infrastructure/database/redis"
	"github.com/your-org/brightstore-backend/internal/infrastructure/storage"
	"github.com/your-org/brightstore-backend/internal/interfaces/http"
	"github.com/your-org/brightstore-backend/internal/interfaces/http/routes"
	"github.com/your-org/brightstore-backend/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Health(); err != nil {
		logger.Fatalf("Database health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}

	// Seed initial data in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logger.Warnf("Data seeding failed: %v", err)
		}
	}

	// Select the cart storage backend
	var kv storage.KeyValue
	var redisClient *goredis.Client
	if cfg.Storage.Backend == "redis" {
		redisConn, err := redis.NewConnection(cfg)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisConn.Close()

		if err := redisConn.Health(); err != nil {
			logger.Fatalf("Redis health check failed: %v", err)
		}

		redisClient = redisConn.GetClient()
		kv = storage.NewRedisStore(redisClient, cfg.Storage.TTL)
	} else {
		kv = storage.NewFileStore(cfg.Storage.FilePath)
	}

	// Build the domain services; the cart store is created once here and
	// injected into every consumer
	couponService := coupon.NewService(db.GetDB(), cfg)
	productService := product.NewService(db.GetDB(), cfg)
	userService := user.NewService(db.GetDB(), cfg)

	cartStore := cart.NewStore(kv, cfg.Storage.CartKey, couponService, logger)
	cartStore.Load(context.Background())

	checkoutService := checkout.NewService(cfg, cartStore, userService, nil, logger)

	logger.Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, logger, routes.Dependencies{
		CartStore:       cartStore,
		CheckoutService: checkoutService,
		ProductService:  productService,
	}, redisClient)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("👋 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	// Let any in-flight cart persistence writes land
	cartStore.Flush()

	logger.Info("✅ Server shutdown completed")
}
