package validation

import (
	"fmt"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
)

// ValidFundType contains the allowed fund type values.
var ValidFundType = map[string]bool{
	"LOF": true, "ETF": true,
}

// ValidatePremiumArbitrage validates a premium simulation request.
func ValidatePremiumArbitrage(req request.PremiumArbitrageRequest) error {
	errors := make(map[string]string)

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}
	if req.ReferenceValue <= 0.0 {
		errors["referenceValue"] = "referenceValue must be positive"
	}
	if req.SellPrice <= 0.0 {
		errors["sellPrice"] = "sellPrice must be positive"
	}
	if req.FundType != "" && !ValidFundType[req.FundType] {
		errors["fundType"] = fmt.Sprintf("invalid fundType: %s", req.FundType)
	}
	if req.Shares != nil && *req.Shares <= 0.0 {
		errors["shares"] = "shares must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDiscountArbitrage validates a discount simulation request.
func ValidateDiscountArbitrage(req request.DiscountArbitrageRequest) error {
	errors := make(map[string]string)

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}
	if req.BuyPrice <= 0.0 {
		errors["buyPrice"] = "buyPrice must be positive"
	}
	if req.Nav <= 0.0 {
		errors["nav"] = "nav must be positive"
	}
	if req.FundType != "" && !ValidFundType[req.FundType] {
		errors["fundType"] = fmt.Sprintf("invalid fundType: %s", req.FundType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
