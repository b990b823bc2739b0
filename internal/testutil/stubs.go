package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/quotes"
)

// StubSettlementSource is a scriptable settlement-value source. Values are
// keyed by "code@date"; missing keys answer as not yet published. Setting
// Err makes every lookup fail.
type StubSettlementSource struct {
	mu     sync.Mutex
	values map[string]*model.ReferenceValue
	Err    error
	Calls  int
}

// NewStubSettlementSource creates an empty stub.
func NewStubSettlementSource() *StubSettlementSource {
	return &StubSettlementSource{values: make(map[string]*model.ReferenceValue)}
}

// Publish makes a net value available for the given code and date.
func (s *StubSettlementSource) Publish(code, date string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[code+"@"+date] = &model.ReferenceValue{Value: value, Date: date}
}

// PublishOn makes a net value available under the lookup date but carrying
// a different publish date, mimicking a provider that answers a query for
// one day with the nearest published row.
func (s *StubSettlementSource) PublishOn(code, lookupDate, publishDate string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[code+"@"+lookupDate] = &model.ReferenceValue{Value: value, Date: publishDate}
}

// NetValue implements the settlement source contract.
func (s *StubSettlementSource) NetValue(_ context.Context, code, date string) (*model.ReferenceValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.values[code+"@"+date], nil
}

// StubMarketSource is a scriptable market-data source for arbitrage tests.
type StubMarketSource struct {
	Quotes     map[string]*model.Quote
	IOPVs      map[string]*float64
	Valuations map[string]*quotes.Valuation
	FailCodes  map[string]bool
}

// NewStubMarketSource creates an empty stub.
func NewStubMarketSource() *StubMarketSource {
	return &StubMarketSource{
		Quotes:     make(map[string]*model.Quote),
		IOPVs:      make(map[string]*float64),
		Valuations: make(map[string]*quotes.Valuation),
		FailCodes:  make(map[string]bool),
	}
}

// SetQuote scripts an exchange quote for a code.
func (s *StubMarketSource) SetQuote(code string, price float64) {
	s.Quotes[code] = &model.Quote{Code: code, Name: "fund " + code, Price: price}
}

// SetIOPV scripts an ETF reference value for a code.
func (s *StubMarketSource) SetIOPV(code string, value float64) {
	v := value
	s.IOPVs[code] = &v
}

// SetEstimate scripts a LOF valuation estimate for a code.
func (s *StubMarketSource) SetEstimate(code string, value float64) {
	v := value
	s.Valuations[code] = &quotes.Valuation{Name: "fund " + code, Estimate: &v}
}

// Quote implements the market source contract.
func (s *StubMarketSource) Quote(_ context.Context, code string) (*model.Quote, error) {
	if s.FailCodes[code] {
		return nil, fmt.Errorf("stubbed fetch failure for %s", code)
	}
	q, ok := s.Quotes[code]
	if !ok {
		return nil, fmt.Errorf("no stubbed quote for %s", code)
	}
	return q, nil
}

// Valuation implements the market source contract.
func (s *StubMarketSource) Valuation(_ context.Context, code string) (*quotes.Valuation, error) {
	if s.FailCodes[code] {
		return nil, fmt.Errorf("stubbed fetch failure for %s", code)
	}
	return s.Valuations[code], nil
}

// IOPV implements the market source contract.
func (s *StubMarketSource) IOPV(_ context.Context, code string) (*float64, error) {
	if s.FailCodes[code] {
		return nil, fmt.Errorf("stubbed fetch failure for %s", code)
	}
	return s.IOPVs[code], nil
}
