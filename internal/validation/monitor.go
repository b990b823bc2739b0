package validation

import (
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/api/request"
)

// ValidateUpdateMonitorConfig validates a monitor config update request.
// All fields are optional, but if provided, they must be within range.
func ValidateUpdateMonitorConfig(req request.UpdateMonitorConfigRequest) error {
	errors := make(map[string]string)

	if req.Interval != nil && *req.Interval < 1000 {
		errors["interval"] = "interval must be at least 1000 milliseconds"
	}
	if req.Threshold != nil && *req.Threshold <= 0.0 {
		errors["threshold"] = "threshold must be positive"
	}
	if req.MonitoredCodes != nil {
		for _, code := range *req.MonitoredCodes {
			if err := ValidateFundCode(code); err != nil {
				errors["monitoredCodes"] = err.Error()
				break
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
