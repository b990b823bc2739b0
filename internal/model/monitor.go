package model

// MonitorConfig is the arbitrage monitor configuration. The JSON field names
// and types are the exact shape persisted to and restored from storage;
// round-trip compatibility with previously exported configs depends on them.
// Interval is in milliseconds, Threshold in percent.
type MonitorConfig struct {
	Enabled        bool     `json:"enabled"`
	Interval       int64    `json:"interval"`
	Threshold      float64  `json:"threshold"`
	MonitoredCodes []string `json:"monitoredCodes"`
}

// DefaultMonitorConfig returns the configuration used before the user has
// saved one: monitoring off, 30s poll, 2% threshold.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:        false,
		Interval:       30000,
		Threshold:      2,
		MonitoredCodes: []string{},
	}
}

// Opportunity is one profitable premium/discount detection from a monitor
// check. Derived, never stored.
type Opportunity struct {
	Code                   string  `json:"code"`
	Name                   string  `json:"name"`
	Type                   string  `json:"type"`
	Price                  float64 `json:"price"`
	ReferenceValue         float64 `json:"referenceValue"`
	PremiumDiscountPercent float64 `json:"premiumDiscountPercent"`
	Direction              string  `json:"direction"`
}

// CheckResult summarizes one monitor poll across the configured fund set.
type CheckResult struct {
	Timestamp     int64         `json:"timestamp"`
	Opportunities []Opportunity `json:"opportunities"`
	CheckedCount  int           `json:"checkedCount"`
}
