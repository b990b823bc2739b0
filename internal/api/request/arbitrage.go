package request

// PremiumArbitrageRequest carries the inputs of a premium strategy
// simulation: subscribe for the amount at the reference value, sell the
// resulting shares on the exchange.
type PremiumArbitrageRequest struct {
	Amount         float64  `json:"amount"`
	ReferenceValue float64  `json:"referenceValue"`
	SellPrice      float64  `json:"sellPrice"`
	FundType       string   `json:"fundType"`
	Shares         *float64 `json:"shares,omitempty"`
	UseDiscountFee bool     `json:"useDiscountFee"`
}

// DiscountArbitrageRequest carries the inputs of a discount strategy
// simulation: buy on the exchange, redeem at net value.
type DiscountArbitrageRequest struct {
	Amount         float64 `json:"amount"`
	BuyPrice       float64 `json:"buyPrice"`
	Nav            float64 `json:"nav"`
	FundType       string  `json:"fundType"`
	UseDiscountFee bool    `json:"useDiscountFee"`
}
