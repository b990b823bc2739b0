package arbitrage

import (
	"errors"
	"math"
	"testing"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestPremiumDiscount(t *testing.T) {
	t.Run("returns unknown for missing or non-positive inputs", func(t *testing.T) {
		cases := []struct {
			name       string
			price, ref float64
		}{
			{"zero price", 0, 100},
			{"zero reference", 110, 0},
			{"negative reference", 110, -1},
			{"negative price", -110, 100},
			{"both zero", 0, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, ok := PremiumDiscount(tc.price, tc.ref); ok {
					t.Errorf("PremiumDiscount(%v, %v) reported a known rate, want unknown", tc.price, tc.ref)
				}
			})
		}
	})

	t.Run("computes exact premium percent", func(t *testing.T) {
		percent, ok := PremiumDiscount(110, 100)
		if !ok {
			t.Fatal("expected a known rate")
		}
		if percent != 10 {
			t.Errorf("Expected 10, got %v", percent)
		}
	})

	t.Run("negative result is a discount, not unknown", func(t *testing.T) {
		percent, ok := PremiumDiscount(95, 100)
		if !ok {
			t.Fatal("expected a known rate")
		}
		if percent != -5 {
			t.Errorf("Expected -5, got %v", percent)
		}
	})
}

func TestEngine_PremiumArbitrage(t *testing.T) {
	engine := NewEngine(DefaultSchedules())

	t.Run("ETF example end to end", func(t *testing.T) {
		result, err := engine.PremiumArbitrage(PremiumParams{
			Amount:         10000,
			ReferenceValue: 2.000,
			SellPrice:      2.050,
			FundType:       model.FundTypeETF,
		})
		if err != nil {
			t.Fatalf("PremiumArbitrage() returned unexpected error: %v", err)
		}

		if !almostEqual(result.Shares, 5000) {
			t.Errorf("Expected 5000 shares, got %v", result.Shares)
		}
		if sub := result.FeeDetails["subscription"].Amount; sub != 0 {
			t.Errorf("Expected zero subscription fee for ETF, got %v", sub)
		}
		// sellAmount 10250, commission max(10250*0.0003, 5) = 5
		if comm := result.FeeDetails["commission"].Amount; !almostEqual(comm, 5) {
			t.Errorf("Expected commission 5, got %v", comm)
		}
		if !almostEqual(result.NetProfit, 245) {
			t.Errorf("Expected net profit 245, got %v", result.NetProfit)
		}
		if !almostEqual(result.ProfitPercent, 2.45) {
			t.Errorf("Expected profit percent 2.45, got %v", result.ProfitPercent)
		}
	})

	t.Run("fee decomposition sums to total fees", func(t *testing.T) {
		result, err := engine.PremiumArbitrage(PremiumParams{
			Amount:         50000,
			ReferenceValue: 1.5,
			SellPrice:      1.58,
			FundType:       model.FundTypeLOF,
		})
		if err != nil {
			t.Fatalf("PremiumArbitrage() returned unexpected error: %v", err)
		}

		sum := 0.0
		for _, d := range result.FeeDetails {
			sum += d.Amount
		}
		if !almostEqual(sum, result.TotalFees) {
			t.Errorf("Fee details sum %v != total fees %v", sum, result.TotalFees)
		}

		// Recompute net profit from the decomposition.
		sellAmount := result.Shares * 1.58
		if recomputed := sellAmount - result.Amount - sum; !almostEqual(recomputed, result.NetProfit) {
			t.Errorf("Recomputed net profit %v != returned %v", recomputed, result.NetProfit)
		}
	})

	t.Run("explicit shares override amount-derived count", func(t *testing.T) {
		result, err := engine.PremiumArbitrage(PremiumParams{
			Amount:         10000,
			ReferenceValue: 2.0,
			SellPrice:      2.1,
			Shares:         4800,
			FundType:       model.FundTypeETF,
		})
		if err != nil {
			t.Fatalf("PremiumArbitrage() returned unexpected error: %v", err)
		}
		if result.Shares != 4800 {
			t.Errorf("Expected 4800 shares, got %v", result.Shares)
		}
	})

	t.Run("discounted subscription rate is applied", func(t *testing.T) {
		result, err := engine.PremiumArbitrage(PremiumParams{
			Amount:         10000,
			ReferenceValue: 1.0,
			SellPrice:      1.05,
			FundType:       model.FundTypeLOF,
			UseDiscountFee: true,
		})
		if err != nil {
			t.Fatalf("PremiumArbitrage() returned unexpected error: %v", err)
		}
		if sub := result.FeeDetails["subscription"]; !almostEqual(sub.Amount, 10) || !almostEqual(sub.Rate, 0.1) {
			t.Errorf("Expected discounted subscription fee 10 at 0.1%%, got %+v", sub)
		}
	})

	t.Run("incomplete parameters return the inline error", func(t *testing.T) {
		_, err := engine.PremiumArbitrage(PremiumParams{ReferenceValue: 2, SellPrice: 2.05})
		if !errors.Is(err, apperrors.ErrIncompleteParams) {
			t.Errorf("Expected ErrIncompleteParams, got %v", err)
		}
	})
}

func TestEngine_DiscountArbitrage(t *testing.T) {
	engine := NewEngine(DefaultSchedules())

	t.Run("commission nets out of the converted amount", func(t *testing.T) {
		result, err := engine.DiscountArbitrage(DiscountParams{
			Amount:   100000,
			BuyPrice: 0.95,
			Nav:      1.0,
			FundType: model.FundTypeLOF,
		})
		if err != nil {
			t.Fatalf("DiscountArbitrage() returned unexpected error: %v", err)
		}

		buyCommission := math.Max(100000*0.0003, 5) // 30
		wantShares := (100000 - buyCommission) / 0.95
		if !almostEqual(result.Shares, wantShares) {
			t.Errorf("Expected shares %v, got %v", wantShares, result.Shares)
		}

		redemptionAmount := wantShares * 1.0
		redemptionFee := redemptionAmount * 0.005
		wantProfit := redemptionAmount - 100000 - buyCommission - redemptionFee
		if !almostEqual(result.NetProfit, wantProfit) {
			t.Errorf("Expected net profit %v, got %v", wantProfit, result.NetProfit)
		}
	})

	t.Run("minimum commission floor applies to small orders", func(t *testing.T) {
		result, err := engine.DiscountArbitrage(DiscountParams{
			Amount:   1000,
			BuyPrice: 1.0,
			Nav:      1.05,
			FundType: model.FundTypeETF,
		})
		if err != nil {
			t.Fatalf("DiscountArbitrage() returned unexpected error: %v", err)
		}
		if comm := result.FeeDetails["commission"].Amount; !almostEqual(comm, 5) {
			t.Errorf("Expected floored commission 5, got %v", comm)
		}
	})

	t.Run("incomplete parameters return the inline error", func(t *testing.T) {
		_, err := engine.DiscountArbitrage(DiscountParams{Amount: 1000, Nav: 1})
		if !errors.Is(err, apperrors.ErrIncompleteParams) {
			t.Errorf("Expected ErrIncompleteParams, got %v", err)
		}
	})
}

func TestEngine_FeeFor(t *testing.T) {
	engine := NewEngine(DefaultSchedules())

	t.Run("commission has an absolute floor", func(t *testing.T) {
		d := engine.FeeFor(100, "commission", model.FundTypeLOF, false)
		if !almostEqual(d.Amount, 5) {
			t.Errorf("Expected 5, got %v", d.Amount)
		}
	})

	t.Run("unknown fee type costs nothing", func(t *testing.T) {
		d := engine.FeeFor(100000, "stamp", model.FundTypeLOF, false)
		if d.Rate != 0 || d.Amount != 0 {
			t.Errorf("Expected zero fee, got %+v", d)
		}
	})
}
