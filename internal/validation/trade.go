package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
)

// ValidTradeType contains the allowed trade type values.
var ValidTradeType = map[string]bool{
	"buy": true, "sell": true,
}

// ValidFeeMode contains the allowed sell fee modes.
var ValidFeeMode = map[string]bool{
	"rate": true, "amount": true,
}

// ValidateSubmitTrade validates a trade submission request.
//
// Required fields:
//   - fundCode: Must be a six-digit code
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell
//   - amount: Must be positive for buys
//   - share: Must be positive for sells
//   - feeMode: Must be one of: rate, amount for sells
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSubmitTrade(req request.SubmitTradeRequest) error {
	errors := make(map[string]string)

	if err := ValidateFundCode(req.FundCode); err != nil {
		errors["fundCode"] = err.Error()
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	}
	_, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["tradeType"] = "type is required"
	} else if !ValidTradeType[req.Type] {
		errors["tradeType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	switch req.Type {
	case "buy":
		if req.Amount <= 0.0 {
			errors["amount"] = "amount must be positive"
		}
		if req.FeeValue < 0.0 {
			errors["feeValue"] = "feeValue must not be negative"
		}
	case "sell":
		if req.Share <= 0.0 {
			errors["share"] = "share must be positive"
		}
		if strings.TrimSpace(req.FeeMode) == "" {
			errors["feeMode"] = "feeMode is required"
		} else if !ValidFeeMode[req.FeeMode] {
			errors["feeMode"] = fmt.Sprintf("invalid feeMode: %s", req.FeeMode)
		}
		if req.FeeValue < 0.0 {
			errors["feeValue"] = "feeValue must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
