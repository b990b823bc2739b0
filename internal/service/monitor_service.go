package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/notify"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
)

// monitorConfigKey is the settings-table key the monitor config persists
// under, as a JSON blob in its exact exported shape.
const monitorConfigKey = "monitor_config"

// MonitorService polls the configured funds on a schedule and publishes a
// notification for every premium or discount that crosses the threshold.
// The config is persisted through the settings repository so it survives
// restarts; the schedule restarts whenever the config changes.
type MonitorService struct {
	arbitrage *ArbitrageService
	settings  *repository.SettingRepository
	registry  *notify.Registry

	mu        sync.Mutex
	cfg       model.MonitorConfig
	cron      *cron.Cron
	lastCheck *model.CheckResult
}

// NewMonitorService creates a MonitorService, restoring the persisted
// config or falling back to the default when none was saved yet.
func NewMonitorService(arb *ArbitrageService, settings *repository.SettingRepository, registry *notify.Registry) (*MonitorService, error) {
	s := &MonitorService{
		arbitrage: arb,
		settings:  settings,
		registry:  registry,
		cfg:       model.DefaultMonitorConfig(),
	}

	raw, ok, err := settings.Get(monitorConfigKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var cfg model.MonitorConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode stored monitor config: %w", err)
		}
		if cfg.MonitoredCodes == nil {
			cfg.MonitoredCodes = []string{}
		}
		s.cfg = cfg
	}

	return s, nil
}

// Config returns the current monitor configuration.
func (s *MonitorService) Config() model.MonitorConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// LastCheck returns the most recent check result, or nil before the first
// check has run.
func (s *MonitorService) LastCheck() *model.CheckResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCheck
}

// UpdateConfig applies partial changes, persists the merged config and
// restarts (or stops) the schedule to match.
func (s *MonitorService) UpdateConfig(req request.UpdateMonitorConfigRequest) (model.MonitorConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}
	if req.Interval != nil {
		cfg.Interval = *req.Interval
	}
	if req.Threshold != nil {
		cfg.Threshold = *req.Threshold
	}
	if req.MonitoredCodes != nil {
		codes := make([]string, len(*req.MonitoredCodes))
		copy(codes, *req.MonitoredCodes)
		cfg.MonitoredCodes = codes
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return model.MonitorConfig{}, fmt.Errorf("failed to encode monitor config: %w", err)
	}
	if err := s.settings.Set(monitorConfigKey, string(raw)); err != nil {
		return model.MonitorConfig{}, err
	}

	s.cfg = cfg
	s.stopLocked()
	if cfg.Enabled {
		if err := s.startLocked(); err != nil {
			return model.MonitorConfig{}, err
		}
	}

	return cfg, nil
}

// Start begins polling if the config enables it. Calling Start while
// already running is a no-op.
func (s *MonitorService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.Enabled || s.cron != nil {
		return nil
	}
	return s.startLocked()
}

// Stop halts polling. Safe to call when not running.
func (s *MonitorService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *MonitorService) startLocked() error {
	interval := time.Duration(s.cfg.Interval) * time.Millisecond
	if interval <= 0 {
		interval = time.Duration(model.DefaultMonitorConfig().Interval) * time.Millisecond
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if _, err := s.Check(context.Background()); err != nil {
			log.Printf("monitor check failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule monitor: %w", err)
	}
	c.Start()
	s.cron = c
	log.Printf("monitor started: every %s, threshold %.2f%%, %d funds", interval, s.cfg.Threshold, len(s.cfg.MonitoredCodes))
	return nil
}

func (s *MonitorService) stopLocked() {
	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cron = nil
	log.Printf("monitor stopped")
}

// Check runs one poll over the monitored funds, records the result and
// publishes a notification per crossing opportunity.
func (s *MonitorService) Check(ctx context.Context) (*model.CheckResult, error) {
	s.mu.Lock()
	codes := s.cfg.MonitoredCodes
	threshold := s.cfg.Threshold
	s.mu.Unlock()

	result, err := s.arbitrage.CheckOpportunities(ctx, codes, threshold)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastCheck = result
	s.mu.Unlock()

	for _, opp := range result.Opportunities {
		s.registry.Publish(notify.Notification{
			Title:    fmt.Sprintf("%s opportunity: %s", opp.Direction, opp.Name),
			Body:     fmt.Sprintf("%s %s at %+.2f%% (price %.3f vs reference %.4f)", opp.Name, opp.Direction, opp.PremiumDiscountPercent, opp.Price, opp.ReferenceValue),
			Type:     notify.TypeArbitrage,
			Duration: 10 * time.Second,
		})
	}

	return result, nil
}
