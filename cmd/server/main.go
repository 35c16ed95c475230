package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"yoyo-backend/internal/archive"
	"yoyo-backend/internal/auth"
	"yoyo-backend/internal/cache"
	"yoyo-backend/internal/config"
	"yoyo-backend/internal/database"
	"yoyo-backend/internal/db"
	"yoyo-backend/internal/handlers"
	"yoyo-backend/internal/health"
	yhttp "yoyo-backend/internal/http"
	"yoyo-backend/internal/middleware"
	"yoyo-backend/internal/monitoring"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it logins just pay the bcrypt cost and the
	// dashboard serves from memory only.
	redisAddr := cfg.Redis.Host + ":" + cfg.Redis.Port
	if err := cache.Init(redisAddr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected")
	}

	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	materialRepo := repositories.NewMaterialRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	rewardRepo := repositories.NewRewardRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)

	// Services
	activityService := services.NewActivityService(activityRepo)
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo)
	customerService := services.NewCustomerService(customerRepo, userRepo)
	materialService := services.NewMaterialService(materialRepo)
	productService := services.NewProductService(productRepo, materialRepo)
	inventoryService := services.NewInventoryService(materialRepo)
	orderService := services.NewOrderService(pool, orderRepo, customerRepo, productRepo, userRepo, inventoryService)
	expenseService := services.NewExpenseService(expenseRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	salesService := services.NewSalesService(userRepo, customerRepo, orderRepo, rewardRepo, settingsService)
	invoiceService := services.NewInvoiceService(orderRepo, customerRepo, settingsService)
	reportService := services.NewReportService(orderRepo, customerRepo, productRepo, materialRepo, expenseRepo)
	dashboardService := services.NewDashboardService(orderRepo, customerRepo, productRepo, expenseRepo)

	uploader, err := archive.NewUploader(cfg)
	if err != nil {
		log.Printf("[Archive] Disabled: %v", err)
	} else if uploader != nil {
		reportService.Archive = uploader
		log.Println("[Archive] Report archiving enabled")
	}

	// Bootstrap admin on an empty install
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureAdmin(bootCtx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Printf("[Users] Admin bootstrap skipped: %v", err)
	}
	bootCancel()

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager, activityService)
	totpHandler := handlers.NewTOTPHandler(totpService, activityService)
	userHandler := handlers.NewUserHandler(userService, activityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	customerHandler := handlers.NewCustomerHandler(customerService, activityService, dashboardService)
	materialHandler := handlers.NewMaterialHandler(materialService, activityService)
	productHandler := handlers.NewProductHandler(productService, activityService, dashboardService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceService, activityService, dashboardService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, activityService, dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	salesHandler := handlers.NewSalesHandler(salesService, activityService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, activityService)
	activityLogHandler := handlers.NewActivityLogHandler(activityService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	// Start the aggregation loop only after the dashboard handler has attached
	// its broadcast callback, so the initial snapshot reaches websocket clients.
	dashCtx, dashCancel := context.WithCancel(context.Background())
	defer dashCancel()
	go dashboardService.Run(dashCtx)

	// Ops stats server on its own port
	go monitoring.NewMonitoringServer(pool, materialRepo, cfg.Server.MonitoringPort).Start()

	router := yhttp.NewRouter(
		authHandler,
		totpHandler,
		userHandler,
		customerHandler,
		productHandler,
		materialHandler,
		orderHandler,
		expenseHandler,
		reportHandler,
		dashboardHandler,
		salesHandler,
		settingsHandler,
		activityLogHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
