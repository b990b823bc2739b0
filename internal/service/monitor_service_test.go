package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/notify"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/repository"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/testutil"
)

// TestMonitorService_Config tests config defaulting, persistence and the
// stored JSON shape.
//
// WHY: The config blob is part of the export format; its JSON keys and
// types must stay bit-stable or restores of older backups break.
func TestMonitorService_Config(t *testing.T) {
	t.Run("defaults before any config was saved", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMonitorService(t, db, testutil.NewStubMarketSource(), notify.NewRegistry())

		// Execute
		cfg := svc.Config()

		// Assert
		if cfg.Enabled {
			t.Error("Expected monitoring disabled by default")
		}
		if cfg.Interval != 30000 {
			t.Errorf("Expected 30000ms interval, got %d", cfg.Interval)
		}
		if cfg.Threshold != 2 {
			t.Errorf("Expected 2%% threshold, got %.2f", cfg.Threshold)
		}
		if cfg.MonitoredCodes == nil || len(cfg.MonitoredCodes) != 0 {
			t.Errorf("Expected empty code list, got %v", cfg.MonitoredCodes)
		}
	})

	t.Run("persists updates with the exact JSON shape", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMonitorService(t, db, testutil.NewStubMarketSource(), notify.NewRegistry())

		threshold := 3.5
		codes := []string{"161725", "510300"}

		// Execute
		cfg, err := svc.UpdateConfig(request.UpdateMonitorConfigRequest{
			Threshold:      &threshold,
			MonitoredCodes: &codes,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateConfig() returned unexpected error: %v", err)
		}
		if cfg.Threshold != 3.5 || len(cfg.MonitoredCodes) != 2 {
			t.Errorf("Expected merged config, got %+v", cfg)
		}
		// Omitted fields keep their values
		if cfg.Interval != 30000 {
			t.Errorf("Expected interval untouched at 30000, got %d", cfg.Interval)
		}

		raw, ok, err := repository.NewSettingRepository(db).Get("monitor_config")
		if err != nil || !ok {
			t.Fatalf("Expected a stored config blob, got ok=%v err=%v", ok, err)
		}

		var stored map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			t.Fatalf("Stored blob is not valid JSON: %v", err)
		}
		for _, key := range []string{"enabled", "interval", "threshold", "monitoredCodes"} {
			if _, present := stored[key]; !present {
				t.Errorf("Expected stored key %q", key)
			}
		}
		if len(stored) != 4 {
			t.Errorf("Expected exactly 4 stored keys, got %d", len(stored))
		}
	})

	t.Run("restores the persisted config on construction", func(t *testing.T) {
		// Setup: save a config, then build a fresh service on the same db
		db := testutil.SetupTestDB(t)
		first := testutil.NewTestMonitorService(t, db, testutil.NewStubMarketSource(), notify.NewRegistry())

		threshold := 5.0
		if _, err := first.UpdateConfig(request.UpdateMonitorConfigRequest{Threshold: &threshold}); err != nil {
			t.Fatalf("UpdateConfig() returned unexpected error: %v", err)
		}

		// Execute
		second := testutil.NewTestMonitorService(t, db, testutil.NewStubMarketSource(), notify.NewRegistry())

		// Assert
		if second.Config().Threshold != 5.0 {
			t.Errorf("Expected restored threshold 5.0, got %.2f", second.Config().Threshold)
		}
	})
}

// TestMonitorService_Check tests one poll cycle.
//
// WHY: A crossing must both surface in the retained check result and fan
// out as an arbitrage notification with the fixed type and duration.
func TestMonitorService_Check(t *testing.T) {
	t.Run("publishes a notification per crossing", func(t *testing.T) {
		// Setup: 510300 at +10%
		db := testutil.SetupTestDB(t)
		market := testutil.NewStubMarketSource()
		market.SetQuote("510300", 4.4)
		market.SetIOPV("510300", 4.0)

		registry := notify.NewRegistry()
		var mu sync.Mutex
		var received []notify.Notification
		unsubscribe := registry.Subscribe(func(n notify.Notification) {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, n)
		})
		defer unsubscribe()

		svc := testutil.NewTestMonitorService(t, db, market, registry)
		codes := []string{"510300"}
		if _, err := svc.UpdateConfig(request.UpdateMonitorConfigRequest{MonitoredCodes: &codes}); err != nil {
			t.Fatalf("UpdateConfig() returned unexpected error: %v", err)
		}

		// Execute
		result, err := svc.Check(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Check() returned unexpected error: %v", err)
		}
		if len(result.Opportunities) != 1 {
			t.Fatalf("Expected 1 opportunity, got %d", len(result.Opportunities))
		}

		mu.Lock()
		defer mu.Unlock()
		if len(received) != 1 {
			t.Fatalf("Expected 1 notification, got %d", len(received))
		}
		if received[0].Type != notify.TypeArbitrage {
			t.Errorf("Expected type %q, got %q", notify.TypeArbitrage, received[0].Type)
		}
		if received[0].Duration != 10*time.Second {
			t.Errorf("Expected 10s duration, got %s", received[0].Duration)
		}

		if last := svc.LastCheck(); last == nil || last.Timestamp != result.Timestamp {
			t.Error("Expected the check result retained for the status endpoint")
		}
	})

	t.Run("stays quiet below the threshold", func(t *testing.T) {
		// Setup: +1% move against the default 2% threshold
		db := testutil.SetupTestDB(t)
		market := testutil.NewStubMarketSource()
		market.SetQuote("510300", 4.04)
		market.SetIOPV("510300", 4.0)

		registry := notify.NewRegistry()
		notified := false
		unsubscribe := registry.Subscribe(func(notify.Notification) { notified = true })
		defer unsubscribe()

		svc := testutil.NewTestMonitorService(t, db, market, registry)
		codes := []string{"510300"}
		if _, err := svc.UpdateConfig(request.UpdateMonitorConfigRequest{MonitoredCodes: &codes}); err != nil {
			t.Fatalf("UpdateConfig() returned unexpected error: %v", err)
		}

		// Execute
		result, err := svc.Check(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Check() returned unexpected error: %v", err)
		}
		if len(result.Opportunities) != 0 {
			t.Errorf("Expected no opportunities, got %d", len(result.Opportunities))
		}
		if notified {
			t.Error("Expected no notification below the threshold")
		}
	})
}

// TestMonitorService_StartStop tests schedule lifecycle idempotence.
func TestMonitorService_StartStop(t *testing.T) {
	t.Run("start is a no-op while disabled and idempotent when enabled", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMonitorService(t, db, testutil.NewStubMarketSource(), notify.NewRegistry())

		// Disabled: starting must not schedule anything
		if err := svc.Start(); err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}

		// Enable with a long interval so no tick fires during the test
		enabled := true
		interval := int64(60000)
		if _, err := svc.UpdateConfig(request.UpdateMonitorConfigRequest{Enabled: &enabled, Interval: &interval}); err != nil {
			t.Fatalf("UpdateConfig() returned unexpected error: %v", err)
		}

		// Execute: repeated starts and stops must not panic or double-schedule
		if err := svc.Start(); err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}
		if err := svc.Start(); err != nil {
			t.Fatalf("Second Start() returned unexpected error: %v", err)
		}
		svc.Stop()
		svc.Stop()
	})
}
