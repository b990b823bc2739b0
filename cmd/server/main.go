package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/arbitrage"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/catalog"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/config"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/database"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/export"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/notify"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/quotes"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/resolver"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	pendingRepo := repository.NewPendingTradeRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Fee schedules: built-in tables, optionally overridden from file
	schedules := arbitrage.DefaultSchedules()
	if cfg.Fees.Path != "" {
		schedules, err = arbitrage.LoadSchedules(cfg.Fees.Path)
		if err != nil {
			log.Fatalf("Failed to load fee schedules from %s: %v", cfg.Fees.Path, err)
		}
		log.Printf("Loaded fee schedules from %s", cfg.Fees.Path)
	}
	engine := arbitrage.NewEngine(schedules)

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load fund catalog: %v", err)
	}

	marketClient := quotes.NewClient()
	registry := notify.NewRegistry()

	// Log arbitrage notifications; there is no push channel in the local API
	unsubscribe := registry.Subscribe(func(n notify.Notification) {
		log.Printf("[%s] %s: %s", n.Type, n.Title, n.Body)
	})
	defer unsubscribe()

	// Create services
	systemService := service.NewSystemService(db)
	tradeService := service.NewTradeService(
		db,
		tradeRepo,
		pendingRepo,
		holdingRepo,
		marketClient,
		resolver.DefaultDelay,
	)
	defer tradeService.Close()

	arbitrageService := service.NewArbitrageService(engine, cat, marketClient)

	monitorService, err := service.NewMonitorService(arbitrageService, settingRepo, registry)
	if err != nil {
		log.Fatalf("Failed to create monitor service: %v", err)
	}
	if err := monitorService.Start(); err != nil {
		log.Fatalf("Failed to start monitor: %v", err)
	}
	defer monitorService.Stop()

	exportKey := cfg.Export.Key
	if exportKey == "" {
		exportKey, err = export.GenerateKey()
		if err != nil {
			log.Fatalf("Failed to generate export key: %v", err)
		}
		log.Printf("EXPORT_KEY not set, generated an ephemeral key; exports will not be restorable after restart")
	}
	exporter, err := export.New(exportKey)
	if err != nil {
		log.Fatalf("Failed to initialize exporter: %v", err)
	}
	exportService := service.NewExportService(db, exporter, holdingRepo, tradeRepo, pendingRepo, monitorService)

	// Create router
	router := api.NewRouter(systemService, arbitrageService, tradeService, monitorService, exportService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
