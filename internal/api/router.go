package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/handlers"
	custommiddleware "github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/middleware"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/config"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	arbitrageService *service.ArbitrageService,
	tradeService *service.TradeService,
	monitorService *service.MonitorService,
	exportService *service.ExportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.GetVersion)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(arbitrageService)
			r.Get("/", fundHandler.Funds)
			r.Route("/{code}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateFundCodeMiddleware)
				r.Get("/quote", fundHandler.Snapshot)
			})
		})

		r.Route("/arbitrage", func(r chi.Router) {
			arbitrageHandler := handlers.NewArbitrageHandler(arbitrageService)
			r.Get("/opportunities", arbitrageHandler.Opportunities)
			r.Post("/premium", arbitrageHandler.Premium)
			r.Post("/discount", arbitrageHandler.Discount)
			r.Get("/profitability", arbitrageHandler.Profitability)
		})

		r.Route("/holding", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(tradeService)
			r.Get("/", holdingHandler.Holdings)
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(tradeService)
			r.Get("/", tradeHandler.Trades)
			r.Post("/", tradeHandler.SubmitTrade)
			r.Get("/preview", tradeHandler.Preview)

			r.Route("/pending", func(r chi.Router) {
				r.Get("/", tradeHandler.PendingTrades)
				r.Post("/resolve", tradeHandler.ResolvePending)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", tradeHandler.RevokePending)
				})
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", tradeHandler.DeleteTrade)
			})
		})

		r.Route("/monitor", func(r chi.Router) {
			monitorHandler := handlers.NewMonitorHandler(monitorService)
			r.Get("/config", monitorHandler.GetConfig)
			r.Put("/config", monitorHandler.UpdateConfig)
			r.Get("/status", monitorHandler.Status)
		})

		exportHandler := handlers.NewExportHandler(exportService)
		r.Post("/export", exportHandler.Export)
		r.Post("/import", exportHandler.Import)
	})

	return r
}
