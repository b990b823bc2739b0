package service

import (
	"database/sql"
	"fmt"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/export"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
)

// ExportService backs up and restores the full tracked state as one
// encrypted blob: holdings, trade history, the pending queue and the
// monitor configuration.
type ExportService struct {
	db       *sql.DB
	exporter *export.Exporter
	holdings *repository.HoldingRepository
	trades   *repository.TradeRepository
	pending  *repository.PendingTradeRepository
	monitor  *MonitorService
}

// NewExportService creates an ExportService.
func NewExportService(
	db *sql.DB,
	exporter *export.Exporter,
	holdings *repository.HoldingRepository,
	trades *repository.TradeRepository,
	pending *repository.PendingTradeRepository,
	monitor *MonitorService,
) *ExportService {
	return &ExportService{
		db:       db,
		exporter: exporter,
		holdings: holdings,
		trades:   trades,
		pending:  pending,
		monitor:  monitor,
	}
}

// Export gathers the current state and returns the encrypted blob.
func (s *ExportService) Export() (string, error) {
	holdings, err := s.holdings.GetHoldings()
	if err != nil {
		return "", err
	}
	trades, err := s.trades.GetTrades("")
	if err != nil {
		return "", err
	}
	pending, err := s.pending.GetPendingTrades("")
	if err != nil {
		return "", err
	}

	return s.exporter.Encrypt(export.Snapshot{
		Holdings:      holdings,
		Trades:        trades,
		PendingTrades: pending,
		MonitorConfig: s.monitor.Config(),
	})
}

// Import decrypts a backup and replaces holdings, trades and the pending
// queue in one transaction, then applies the monitor config (restarting the
// schedule if it is enabled).
func (s *ExportService) Import(data string) (*export.Snapshot, error) {
	snapshot, err := s.exporter.Decrypt(data)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.holdings.ReplaceAll(tx, snapshot.Holdings); err != nil {
		return nil, err
	}
	if err := s.trades.ReplaceAll(tx, snapshot.Trades); err != nil {
		return nil, err
	}
	if err := s.pending.ReplaceAll(tx, snapshot.PendingTrades); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	cfg := snapshot.MonitorConfig
	_, err = s.monitor.UpdateConfig(request.UpdateMonitorConfigRequest{
		Enabled:        &cfg.Enabled,
		Interval:       &cfg.Interval,
		Threshold:      &cfg.Threshold,
		MonitoredCodes: &cfg.MonitoredCodes,
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
