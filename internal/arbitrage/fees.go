// Package arbitrage computes premium/discount rates and projected profit and
// fees for the two fund arbitrage strategies: premium capture (subscribe
// off-exchange, sell on-exchange) and discount capture (buy on-exchange,
// redeem off-exchange). All calculations are pure given their inputs and a
// fee schedule.
package arbitrage

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

//go:embed fees.yaml
var defaultFeesYAML []byte

// FeeSchedule is the fixed fee table for one fund type. Rates are fractions
// (0.012 = 1.2%), MinCommission is an absolute floor in currency units.
type FeeSchedule struct {
	SubscriptionFee         float64 `yaml:"subscriptionFee"`
	SubscriptionFeeDiscount float64 `yaml:"subscriptionFeeDiscount"`
	RedemptionFee           float64 `yaml:"redemptionFee"`
	RedemptionFeeDiscount   float64 `yaml:"redemptionFeeDiscount"`
	Commission              float64 `yaml:"commission"`
	MinCommission           float64 `yaml:"minCommission"`
}

// Schedules maps fund type (LOF/ETF) to its fee schedule. Loaded once,
// immutable for the process lifetime.
type Schedules map[string]FeeSchedule

// For returns the schedule for the given fund type, falling back to the LOF
// schedule for unknown types.
func (s Schedules) For(fundType string) FeeSchedule {
	if sched, ok := s[fundType]; ok {
		return sched
	}
	return s[model.FundTypeLOF]
}

// DefaultSchedules returns the built-in fee tables.
func DefaultSchedules() Schedules {
	var s Schedules
	// The embedded file is validated by tests; a parse failure here is a
	// build defect, not a runtime condition.
	if err := yaml.Unmarshal(defaultFeesYAML, &s); err != nil {
		panic(fmt.Sprintf("arbitrage: embedded fee schedule is invalid: %v", err))
	}
	return s
}

// LoadSchedules reads fee tables from a YAML file. Fund types missing from
// the file keep their built-in values.
func LoadSchedules(path string) (Schedules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fee schedule: %w", err)
	}

	s := DefaultSchedules()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse fee schedule: %w", err)
	}
	return s, nil
}
