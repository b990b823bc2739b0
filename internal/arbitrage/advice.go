package arbitrage

import (
	"fmt"
	"math"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// Verdict is the profitability decision for a premium/discount rate.
type Verdict struct {
	Profitable bool   `json:"profitable"`
	Strategy   string `json:"strategy,omitempty"`
	Message    string `json:"message"`
}

// Advice is the full recommendation for a live quote/reference pair.
// PremiumDiscountPercent is nil when either input is unavailable.
type Advice struct {
	HasOpportunity         bool     `json:"hasOpportunity"`
	Strategy               string   `json:"strategy,omitempty"`
	PremiumDiscountPercent *float64 `json:"premiumDiscountPercent"`
	Advice                 string   `json:"advice"`
	RiskLevel              string   `json:"riskLevel,omitempty"`
}

// CostLine returns the breakeven threshold in percent for the fund type:
// round-trip fees (subscription + redemption + commission both ways) plus a
// fixed 0.3-point safety margin. Recomputed per call so a changed fee
// schedule is always reflected.
func (e *Engine) CostLine(fundType string) float64 {
	fees := e.fees.For(fundType)
	return (fees.SubscriptionFee+fees.RedemptionFee+fees.Commission*2)*100 + 0.3
}

// Profitability decides whether a premium/discount rate clears the cost
// line: above it the premium strategy pays, below its negation the discount
// strategy pays, in between neither does.
func (e *Engine) Profitability(percent float64, fundType string) Verdict {
	threshold := e.CostLine(fundType)

	switch {
	case percent > threshold:
		return Verdict{
			Profitable: true,
			Strategy:   StrategyPremium,
			Message:    fmt.Sprintf("premium %.2f%% exceeds cost line %.2f%%", percent, threshold),
		}
	case percent < -threshold:
		return Verdict{
			Profitable: true,
			Strategy:   StrategyDiscount,
			Message:    fmt.Sprintf("discount %.2f%% exceeds cost line %.2f%%", math.Abs(percent), threshold),
		}
	default:
		return Verdict{
			Profitable: false,
			Message:    fmt.Sprintf("premium/discount %.2f%% does not cover trading costs", percent),
		}
	}
}

// AdviceFor evaluates a live quote against a reference value. A missing
// quote or reference propagates as "unknown" rather than a zero rate.
func (e *Engine) AdviceFor(quote *model.Quote, referenceValue *float64, fundType string) Advice {
	if quote == nil || referenceValue == nil {
		return Advice{Advice: "data unavailable, cannot judge"}
	}

	percent, ok := PremiumDiscount(quote.Price, *referenceValue)
	if !ok {
		return Advice{Advice: "data unavailable, cannot judge"}
	}

	verdict := e.Profitability(percent, fundType)

	risk := "low"
	switch abs := math.Abs(percent); {
	case abs > 5:
		risk = "high"
	case abs > 3:
		risk = "medium"
	}

	return Advice{
		HasOpportunity:         verdict.Profitable,
		Strategy:               verdict.Strategy,
		PremiumDiscountPercent: &percent,
		Advice:                 verdict.Message,
		RiskLevel:              risk,
	}
}
