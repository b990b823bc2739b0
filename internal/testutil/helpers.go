package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/arbitrage"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/catalog"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/notify"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/service"
)

// TestDebounceDelay keeps debounced previews fast in tests.
const TestDebounceDelay = 5 * time.Millisecond

func NewTestTradeService(t *testing.T, db *sql.DB, settlement service.SettlementSource) *service.TradeService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	pendingRepo := repository.NewPendingTradeRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)

	svc := service.NewTradeService(db, tradeRepo, pendingRepo, holdingRepo, settlement, TestDebounceDelay)
	t.Cleanup(svc.Close)
	return svc
}

func NewTestArbitrageService(t *testing.T, market service.MarketSource) *service.ArbitrageService {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	return service.NewArbitrageService(
		arbitrage.NewEngine(arbitrage.DefaultSchedules()),
		cat,
		market,
	)
}

func NewTestMonitorService(t *testing.T, db *sql.DB, market service.MarketSource, registry *notify.Registry) *service.MonitorService {
	t.Helper()

	svc, err := service.NewMonitorService(
		NewTestArbitrageService(t, market),
		repository.NewSettingRepository(db),
		registry,
	)
	if err != nil {
		t.Fatalf("Failed to create monitor service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}
