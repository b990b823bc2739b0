package arbitrage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

func TestEngine_Profitability(t *testing.T) {
	engine := NewEngine(DefaultSchedules())

	// ETF fees are all zero except commission 0.03% paid twice, so the cost
	// line is 0.3 + 0.06 = 0.36.
	t.Run("ETF cost line is 0.36", func(t *testing.T) {
		if got := engine.CostLine(model.FundTypeETF); !almostEqual(got, 0.36) {
			t.Errorf("Expected 0.36, got %v", got)
		}
	})

	t.Run("premium just above the cost line is profitable", func(t *testing.T) {
		v := engine.Profitability(0.37, model.FundTypeETF)
		if !v.Profitable || v.Strategy != StrategyPremium {
			t.Errorf("Expected profitable premium, got %+v", v)
		}
	})

	t.Run("premium just below the cost line is not profitable", func(t *testing.T) {
		v := engine.Profitability(0.35, model.FundTypeETF)
		if v.Profitable {
			t.Errorf("Expected not profitable, got %+v", v)
		}
	})

	t.Run("deep discount is profitable in the discount direction", func(t *testing.T) {
		v := engine.Profitability(-3, model.FundTypeLOF)
		if !v.Profitable || v.Strategy != StrategyDiscount {
			t.Errorf("Expected profitable discount, got %+v", v)
		}
	})

	t.Run("cost line follows the fee schedule", func(t *testing.T) {
		custom := Schedules{
			model.FundTypeETF: {Commission: 0.001, MinCommission: 5},
			model.FundTypeLOF: DefaultSchedules()[model.FundTypeLOF],
		}
		e := NewEngine(custom)
		// 2*0.1% = 0.2 + 0.3 margin
		if got := e.CostLine(model.FundTypeETF); !almostEqual(got, 0.5) {
			t.Errorf("Expected 0.5, got %v", got)
		}
	})
}

func TestEngine_AdviceFor(t *testing.T) {
	engine := NewEngine(DefaultSchedules())

	t.Run("missing quote or reference yields no opportunity and no rate", func(t *testing.T) {
		ref := 2.0
		for _, a := range []Advice{
			engine.AdviceFor(nil, &ref, model.FundTypeETF),
			engine.AdviceFor(&model.Quote{Price: 2.1}, nil, model.FundTypeETF),
			engine.AdviceFor(&model.Quote{Price: 0}, &ref, model.FundTypeETF),
		} {
			if a.HasOpportunity {
				t.Errorf("Expected no opportunity, got %+v", a)
			}
			if a.PremiumDiscountPercent != nil {
				t.Errorf("Expected unknown rate, got %v", *a.PremiumDiscountPercent)
			}
		}
	})

	t.Run("large premium is flagged with a risk level", func(t *testing.T) {
		ref := 2.0
		a := engine.AdviceFor(&model.Quote{Price: 2.2}, &ref, model.FundTypeETF)
		if !a.HasOpportunity || a.Strategy != StrategyPremium {
			t.Fatalf("Expected premium opportunity, got %+v", a)
		}
		if a.PremiumDiscountPercent == nil || !almostEqual(*a.PremiumDiscountPercent, 10) {
			t.Errorf("Expected 10%% premium, got %v", a.PremiumDiscountPercent)
		}
		if a.RiskLevel != "high" {
			t.Errorf("Expected high risk at 10%%, got %q", a.RiskLevel)
		}
	})
}

func TestFormat(t *testing.T) {
	v := 1.23456
	neg := -2.5

	if got := FormatMoney(&v, 2); got != "1.23" {
		t.Errorf("FormatMoney = %q", got)
	}
	if got := FormatMoney(nil, 2); got != "--" {
		t.Errorf("FormatMoney(nil) = %q", got)
	}
	if got := FormatPercent(&v, 2); got != "+1.23%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(&neg, 1); got != "-2.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(nil, 2); got != "--" {
		t.Errorf("FormatPercent(nil) = %q", got)
	}
}

func TestLoadSchedules(t *testing.T) {
	t.Run("embedded defaults carry the published fee tables", func(t *testing.T) {
		s := DefaultSchedules()
		lof := s.For(model.FundTypeLOF)
		if lof.SubscriptionFee != 0.012 || lof.MinCommission != 5 {
			t.Errorf("Unexpected LOF schedule: %+v", lof)
		}
		etf := s.For(model.FundTypeETF)
		if etf.SubscriptionFee != 0 || etf.Commission != 0.0003 {
			t.Errorf("Unexpected ETF schedule: %+v", etf)
		}
	})

	t.Run("unknown fund type falls back to LOF", func(t *testing.T) {
		s := DefaultSchedules()
		if s.For("REIT") != s.For(model.FundTypeLOF) {
			t.Error("Expected LOF fallback for unknown fund type")
		}
	})

	t.Run("file override replaces only the listed types", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fees.yaml")
		override := "ETF:\n  commission: 0.001\n  minCommission: 1\n"
		if err := os.WriteFile(path, []byte(override), 0o600); err != nil {
			t.Fatalf("Failed to write override: %v", err)
		}

		s, err := LoadSchedules(path)
		if err != nil {
			t.Fatalf("LoadSchedules() returned unexpected error: %v", err)
		}
		if etf := s.For(model.FundTypeETF); etf.Commission != 0.001 || etf.MinCommission != 1 {
			t.Errorf("Override not applied: %+v", etf)
		}
		if lof := s.For(model.FundTypeLOF); lof.SubscriptionFee != 0.012 {
			t.Errorf("LOF defaults should survive an ETF-only override: %+v", lof)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := LoadSchedules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}
