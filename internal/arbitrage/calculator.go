package arbitrage

import (
	"math"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
)

// Arbitrage strategies.
const (
	StrategyPremium  = "premium"
	StrategyDiscount = "discount"
)

// FeeDetail is one named component of a result's fee decomposition.
// Rate is in percent, Amount in currency units.
type FeeDetail struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Result is a projected arbitrage outcome for one invocation. TotalFees
// always equals the sum of the FeeDetails amounts.
type Result struct {
	Strategy       string               `json:"strategy"`
	Amount         float64              `json:"amount"`
	Shares         float64              `json:"shares"`
	ReferenceValue float64              `json:"referenceValue,omitempty"`
	SellPrice      float64              `json:"sellPrice,omitempty"`
	BuyPrice       float64              `json:"buyPrice,omitempty"`
	Nav            float64              `json:"nav,omitempty"`
	TotalFees      float64              `json:"totalFees"`
	NetProfit      float64              `json:"netProfit"`
	ProfitPercent  float64              `json:"profitPercent"`
	FeeDetails     map[string]FeeDetail `json:"feeDetails"`
}

// PremiumParams describes a premium-capture trade: subscribe off-exchange at
// ReferenceValue, sell on-exchange at SellPrice. Shares overrides the
// amount-derived share count when the subscription allotment is known.
type PremiumParams struct {
	Amount         float64
	ReferenceValue float64
	SellPrice      float64
	Shares         float64
	FundType       string
	UseDiscountFee bool
}

// DiscountParams describes a discount-capture trade: buy on-exchange at
// BuyPrice, redeem off-exchange at Nav.
type DiscountParams struct {
	Amount         float64
	BuyPrice       float64
	Nav            float64
	FundType       string
	UseDiscountFee bool
}

// Engine computes arbitrage outcomes against an immutable fee schedule set.
type Engine struct {
	fees Schedules
}

// NewEngine creates an Engine with the given fee schedules.
func NewEngine(fees Schedules) *Engine {
	return &Engine{fees: fees}
}

// Fees exposes the engine's schedule for a fund type.
func (e *Engine) Fees(fundType string) FeeSchedule {
	return e.fees.For(fundType)
}

// PremiumDiscount returns the premium/discount rate in percent of price over
// the reference value. The second return is false when either input is
// missing or the reference value is not positive; an unknown rate must never
// collapse to 0, which is a valid rate.
func PremiumDiscount(price, referenceValue float64) (float64, bool) {
	if price <= 0 || referenceValue <= 0 {
		return 0, false
	}
	return (price - referenceValue) / referenceValue * 100, true
}

// PremiumArbitrage projects the outcome of a premium-capture trade:
// shares are acquired off-exchange at the reference value (paying the
// subscription fee on the invested amount) and sold on-exchange at the sell
// price (paying proportional commission with an absolute floor).
//
// Returns apperrors.ErrIncompleteParams when amount, reference value or sell
// price is missing; callers render that inline rather than failing.
func (e *Engine) PremiumArbitrage(p PremiumParams) (*Result, error) {
	if p.Amount <= 0 || p.ReferenceValue <= 0 || p.SellPrice <= 0 {
		return nil, apperrors.ErrIncompleteParams
	}

	fees := e.fees.For(p.FundType)

	shares := p.Shares
	if shares <= 0 {
		shares = p.Amount / p.ReferenceValue
	}

	subscriptionRate := fees.SubscriptionFee
	if p.UseDiscountFee {
		subscriptionRate = fees.SubscriptionFeeDiscount
	}
	subscriptionFee := p.Amount * subscriptionRate

	sellAmount := shares * p.SellPrice
	commission := math.Max(sellAmount*fees.Commission, fees.MinCommission)

	totalFees := subscriptionFee + commission
	netProfit := sellAmount - p.Amount - totalFees

	return &Result{
		Strategy:       StrategyPremium,
		Amount:         p.Amount,
		Shares:         shares,
		ReferenceValue: p.ReferenceValue,
		SellPrice:      p.SellPrice,
		TotalFees:      totalFees,
		NetProfit:      netProfit,
		ProfitPercent:  netProfit / p.Amount * 100,
		FeeDetails: map[string]FeeDetail{
			"subscription": {Rate: subscriptionRate * 100, Amount: subscriptionFee},
			"commission":   {Rate: fees.Commission * 100, Amount: commission},
		},
	}, nil
}

// DiscountArbitrage projects the outcome of a discount-capture trade:
// shares are bought on-exchange at the buy price (commission paid up front,
// the net amount converts to shares) and redeemed off-exchange at NAV
// (paying the redemption fee on the redemption amount).
func (e *Engine) DiscountArbitrage(p DiscountParams) (*Result, error) {
	if p.Amount <= 0 || p.BuyPrice <= 0 || p.Nav <= 0 {
		return nil, apperrors.ErrIncompleteParams
	}

	fees := e.fees.For(p.FundType)

	buyCommission := math.Max(p.Amount*fees.Commission, fees.MinCommission)
	shares := (p.Amount - buyCommission) / p.BuyPrice

	redemptionRate := fees.RedemptionFee
	if p.UseDiscountFee {
		redemptionRate = fees.RedemptionFeeDiscount
	}
	redemptionAmount := shares * p.Nav
	redemptionFee := redemptionAmount * redemptionRate

	totalFees := buyCommission + redemptionFee
	netProfit := redemptionAmount - p.Amount - totalFees

	return &Result{
		Strategy:      StrategyDiscount,
		Amount:        p.Amount,
		Shares:        shares,
		BuyPrice:      p.BuyPrice,
		Nav:           p.Nav,
		TotalFees:     totalFees,
		NetProfit:     netProfit,
		ProfitPercent: netProfit / p.Amount * 100,
		FeeDetails: map[string]FeeDetail{
			"commission": {Rate: fees.Commission * 100, Amount: buyCommission},
			"redemption": {Rate: redemptionRate * 100, Amount: redemptionFee},
		},
	}, nil
}

// FeeFor computes a single named fee for an amount: "subscription",
// "redemption" (proportional) or "commission" (proportional with floor).
// Unknown fee types cost nothing.
func (e *Engine) FeeFor(amount float64, feeType, fundType string, useDiscountFee bool) FeeDetail {
	fees := e.fees.For(fundType)

	switch feeType {
	case "subscription":
		rate := fees.SubscriptionFee
		if useDiscountFee {
			rate = fees.SubscriptionFeeDiscount
		}
		return FeeDetail{Rate: rate * 100, Amount: amount * rate}
	case "redemption":
		rate := fees.RedemptionFee
		if useDiscountFee {
			rate = fees.RedemptionFeeDiscount
		}
		return FeeDetail{Rate: rate * 100, Amount: amount * rate}
	case "commission":
		return FeeDetail{
			Rate:   fees.Commission * 100,
			Amount: math.Max(amount*fees.Commission, fees.MinCommission),
		}
	default:
		return FeeDetail{}
	}
}
