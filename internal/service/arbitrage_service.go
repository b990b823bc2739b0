package service

import (
	"context"
	"log"
	"time"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/arbitrage"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/catalog"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/quotes"
)

// MarketSource provides live market data for a fund code.
type MarketSource interface {
	Quote(ctx context.Context, code string) (*model.Quote, error)
	Valuation(ctx context.Context, code string) (*quotes.Valuation, error)
	IOPV(ctx context.Context, code string) (*float64, error)
}

/// FundSnapshot is the live view of one fund: its exchange quote, the
// reference value the premium is measured against, and the resulting
// advice. PremiumDiscount is nil when either side is unavailable.
type FundSnapshot struct {
	Fund            model.Fund       `json:"fund"`
	Quote           *model.Quote     `json:"quote,omitempty"`
	ReferenceValue  *float64         `json:"referenceValue,omitempty"`
	PremiumDiscount *float64         `json:"premiumDiscount,omitempty"`
	Advice          arbitrage.Advice `json:"advice"`
}

// ArbitrageService composes the fee engine with live market data. The
// reference value an exchange price is compared against depends on the
// fund type: ETFs publish an intraday IOPV, LOF funds an estimated net
// value falling back to the last published one.
type ArbitrageService struct {
	engine  *arbitrage.Engine
	catalog *catalog.Catalog
	market  MarketSource
}

// NewArbitrageService creates an ArbitrageService.
func NewArbitrageService(engine *arbitrage.Engine, cat *catalog.Catalog, market MarketSource) *ArbitrageService {
	return &ArbitrageService{engine: engine, catalog: cat, market: market}
}

// Engine exposes the fee engine for simulation endpoints.
func (s *ArbitrageService) Engine() *arbitrage.Engine {
	return s.engine
}

// Funds lists the tracked fund catalog.
func (s *ArbitrageService) Funds() []model.Fund {
	return s.catalog.All()
}

// ReferenceValue fetches the value a fund's exchange price is measured
// against. Returns nil without error when no value is available yet.
func (s *ArbitrageService) ReferenceValue(ctx context.Context, fund model.Fund) (*float64, error) {
	if fund.Type == model.FundTypeETF {
		return s.market.IOPV(ctx, fund.Code)
	}
	v, err := s.market.Valuation(ctx, fund.Code)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if v.Estimate != nil {
		return v.Estimate, nil
	}
	return v.Nav, nil
}

// Snapshot builds the live view of one fund.
func (s *ArbitrageService) Snapshot(ctx context.Context, code string) (*FundSnapshot, error) {
	fund, err := s.catalog.Find(code)
	if err != nil {
		return nil, err
	}

	quote, err := s.market.Quote(ctx, code)
	if err != nil {
		return nil, err
	}

	ref, err := s.ReferenceValue(ctx, fund)
	if err != nil {
		// Advice degrades to "unknown" when the reference side is missing;
		// the quote alone is still worth returning.
		log.Printf("reference value for %s unavailable: %v", code, err)
		ref = nil
	}

	snapshot := &FundSnapshot{
		Fund:           fund,
		Quote:          quote,
		ReferenceValue: ref,
		Advice:         s.engine.AdviceFor(quote, ref, fund.Type),
	}
	if ref != nil {
		if pd, ok := arbitrage.PremiumDiscount(quote.Price, *ref); ok {
			snapshot.PremiumDiscount = &pd
		}
	}
	return snapshot, nil
}

// CheckOpportunities scans the given fund codes sequentially and collects
// those whose absolute premium or discount crosses the threshold. A fund
// that fails to fetch is logged and skipped; it never aborts the scan.
func (s *ArbitrageService) CheckOpportunities(ctx context.Context, fundCodes []string, threshold float64) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Timestamp:     time.Now().UnixMilli(),
		Opportunities: []model.Opportunity{},
	}

	for _, code := range fundCodes {
		snapshot, err := s.Snapshot(ctx, code)
		if err != nil {
			log.Printf("opportunity check for %s failed: %v", code, err)
			continue
		}
		result.CheckedCount++

		if snapshot.PremiumDiscount == nil {
			continue
		}
		pd := *snapshot.PremiumDiscount
		if pd < threshold && pd > -threshold {
			continue
		}

		direction := arbitrage.StrategyPremium
		if pd < 0 {
			direction = arbitrage.StrategyDiscount
		}
		result.Opportunities = append(result.Opportunities, model.Opportunity{
			Code:                   snapshot.Fund.Code,
			Name:                   snapshot.Fund.Name,
			Type:                   snapshot.Fund.Type,
			Price:                  snapshot.Quote.Price,
			ReferenceValue:         *snapshot.ReferenceValue,
			PremiumDiscountPercent: pd,
			Direction:              direction,
		})
	}

	return result, nil
}
