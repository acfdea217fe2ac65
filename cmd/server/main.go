package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/craftify/craftify-backend/config"
	"github.com/craftify/craftify-backend/internal/app/controller"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/craftify/craftify-backend/internal/router"
	"github.com/craftify/craftify-backend/internal/scheduler"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/craftify/craftify-backend/pkg/payment"
	"github.com/craftify/craftify-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // use "json" in production
		EnableColor: true,
	})

	logger.Info("Starting Craftify Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the logout token blacklist. Auth still works without
	// it, logout just becomes a client-side concern.
	blacklistEnabled := true
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
			"error": err.Error(),
		})
		blacklistEnabled = false
	} else {
		defer redis.Close()
	}

	gateway, err := payment.NewGateway(cfg.Payment.Gateway)
	if err != nil {
		logger.Fatal("Failed to initialize payment gateway", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	itemRepo := repository.NewItemRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	returnRepo := repository.NewReturnRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	itemService := service.NewItemService(itemRepo)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, gateway, cfg.Checkout.TrackInventory)
	returnService := service.NewReturnService(db.GetDB(), returnRepo, orderRepo, gateway)
	reviewService := service.NewReviewService(reviewRepo, itemRepo, userRepo)

	// Controllers
	authController := controller.NewAuthController(authService, &cfg.JWT)
	userController := controller.NewUserController(authService)
	itemController := controller.NewItemController(itemService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	returnController := controller.NewReturnController(returnService)
	reviewController := controller.NewReviewController(reviewService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklistEnabled)

	cartScheduler := scheduler.NewCartScheduler(cartRepo, cfg.Checkout.StaleCartDays)
	if err := cartScheduler.Start(); err != nil {
		logger.Error("Failed to start cart cleanup scheduler", err)
	}
	defer cartScheduler.Stop()

	r := router.NewRouter(
		authController,
		userController,
		itemController,
		cartController,
		orderController,
		returnController,
		reviewController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped")
}
