package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-api/internal/cache"
	"go-inventory-api/internal/config"
	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/ledger"
	"go-inventory-api/internal/middleware"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/service"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env + Config
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	reportLoc, err := cfg.ReportLocation()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}
	if err := db.AutoMigrate(
		&model.Category{}, &model.Supplier{}, &model.Product{},
		&model.Transaction{}, &model.TransactionLine{}, &model.User{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// 3. Seed default admin user
	userRepo := repository.NewUserRepo(db)
	seedAdmin(userRepo)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Optional Redis cache for dashboard stats
	var statsCache cache.Cache
	if cfg.Redis.Addr != "" {
		statsCache = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password)
		log.Println("Dashboard stats cache enabled")
	}

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	stockLedger := ledger.New(repository.NewStockStore(db), cfg.Stock.LockTimeout, wsHub)
	reporting := service.NewReportingClock(reportLoc)

	txService := service.NewTransactionService(txRepo, productRepo, supplierRepo, stockLedger, reporting)
	productService := service.NewProductService(productRepo, categoryRepo, txRepo, cfg.Stock.LowStockThreshold)
	categoryService := service.NewCategoryService(categoryRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	dashService := service.NewDashboardService(txRepo, productRepo, supplierRepo, reporting, statsCache, cfg.Redis.StatsTTL)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWT.Secret), cfg.JWT.TTL)

	txHandler := handler.NewTransactionHandler(txService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// Auth Routes (No authentication required)
	api.Post("/auth/login", authHandler.Login)

	// All routes below require authentication
	secret := []byte(cfg.JWT.Secret)
	protected := api.Group("", middleware.RequireAuth(secret))
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Dashboard Routes
	protected.Get("/dashboard/rollup", dashHandler.GetRollup)
	protected.Get("/dashboard/stats", dashHandler.GetStats)

	// Product Routes
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products", adminOnly, productHandler.Create)
	protected.Put("/products/:id", adminOnly, productHandler.Update)
	protected.Delete("/products/:id", adminOnly, productHandler.Delete)

	// Category Routes
	protected.Get("/categories", categoryHandler.List)
	protected.Get("/categories/:id", categoryHandler.Get)
	protected.Post("/categories", adminOnly, categoryHandler.Create)
	protected.Put("/categories/:id", adminOnly, categoryHandler.Update)
	protected.Delete("/categories/:id", adminOnly, categoryHandler.Delete)

	// Supplier Routes
	protected.Get("/suppliers", supplierHandler.List)
	protected.Get("/suppliers/:id", supplierHandler.Get)
	protected.Post("/suppliers", adminOnly, supplierHandler.Create)
	protected.Put("/suppliers/:id", adminOnly, supplierHandler.Update)
	protected.Delete("/suppliers/:id", adminOnly, supplierHandler.Delete)

	// Transaction Routes
	protected.Get("/transactions", txHandler.List)
	protected.Get("/transactions/:id", txHandler.Get)
	protected.Post("/transactions", txHandler.Create)
	protected.Patch("/transactions/:id/status", txHandler.UpdateStatus)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.App.Port)); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(userRepo repository.UserRepository) {
	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin@example.com / admin123")
}
