package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/handler"
	"github.com/Informaticspro/proyecto-factura/internal/middleware"
	"github.com/Informaticspro/proyecto-factura/internal/service"
	"github.com/Informaticspro/proyecto-factura/internal/storage/selector"
	"github.com/Informaticspro/proyecto-factura/internal/ws"
	"github.com/Informaticspro/proyecto-factura/pkg/config"
	"github.com/Informaticspro/proyecto-factura/pkg/logger"
)

func main() {
	// Env file is optional; the host environment wins either way.
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	// One backend handle for the process lifetime. On failure the
	// unavailable store keeps display views alive while mutations fail.
	store, err := selector.Connect(cfg, log)
	if err != nil {
		log.Error("no storage backend available, running degraded", zap.Error(err))
	}
	defer store.Close()

	hub := ws.NewHub(log)
	go hub.Run()

	productService := service.NewProductService(store, hub, log)
	saleService := service.NewSaleService(store, hub, log)
	inventoryService := service.NewInventoryService(store, hub, log)
	reportService := service.NewReportService(store, cfg.Location(), cfg.LowStockThreshold, log)
	licenseService := service.NewLicenseService(store, log)

	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService)
	licenseHandler := handler.NewLicenseHandler(licenseService)
	debugHandler := handler.NewDebugHandler(store, log)

	app := fiber.New(fiber.Config{
		AppName: "Vendix POS Core v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// License routes stay open so activation is reachable.
	api.Post("/license/activate", licenseHandler.Activate)
	api.Get("/license", licenseHandler.GetStatus)

	protected := api.Group("", middleware.RequireLicense(licenseService))

	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	protected.Get("/categories", productHandler.GetCategories)
	protected.Post("/categories", productHandler.UpsertCategory)

	protected.Post("/sales", saleHandler.RecordSale)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id/items", saleHandler.GetSaleItems)

	protected.Post("/movements", inventoryHandler.RecordMovement)
	protected.Get("/movements", inventoryHandler.GetMovements)

	protected.Get("/reports/daily", reportHandler.GetDailyTotals)
	protected.Get("/reports/monthly", reportHandler.GetMonthlyTotals)
	protected.Get("/reports/low-stock", reportHandler.GetLowStock)
	protected.Get("/reports/finance", reportHandler.GetFinance)
	protected.Post("/reports/query", reportHandler.RunRawQuery)
	protected.Get("/dashboard/stats", reportHandler.GetStats)

	protected.Delete("/debug/database", debugHandler.ClearDatabase)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
