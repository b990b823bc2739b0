package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// MakeID returns a fresh UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	holding := testutil.NewHolding("161725").WithShare(100).Build(t, db)
type HoldingBuilder struct {
	FundCode string
	Share    float64
}

// NewHolding creates a HoldingBuilder for the given fund code.
func NewHolding(fundCode string) *HoldingBuilder {
	return &HoldingBuilder{
		FundCode: fundCode,
		Share:    100,
	}
}

// WithShare sets the share count.
func (b *HoldingBuilder) WithShare(share float64) *HoldingBuilder {
	b.Share = share
	return b
}

// Build inserts the holding and returns the model.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	_, err := db.Exec(`INSERT INTO holding (fund_code, share) VALUES (?, ?)`, b.FundCode, b.Share)
	if err != nil {
		t.Fatalf("Failed to insert test holding: %v", err)
	}

	return model.Holding{FundCode: b.FundCode, Share: b.Share}
}

// TradeBuilder provides a fluent interface for creating finalized test trades.
type TradeBuilder struct {
	ID       string
	FundCode string
	Type     string
	Date     string
	Amount   float64
	Share    float64
	Price    float64
}

// NewTrade creates a TradeBuilder with sensible defaults (a buy).
func NewTrade(fundCode string) *TradeBuilder {
	return &TradeBuilder{
		ID:       MakeID(),
		FundCode: fundCode,
		Type:     model.TradeTypeBuy,
		Date:     "2024-05-10",
		Amount:   10000,
		Share:    5000,
		Price:    2.0,
	}
}

// WithType sets the trade type.
func (b *TradeBuilder) WithType(tradeType string) *TradeBuilder {
	b.Type = tradeType
	return b
}

// WithDate sets the settlement date.
func (b *TradeBuilder) WithDate(date string) *TradeBuilder {
	b.Date = date
	return b
}

// WithAmount sets the amount.
func (b *TradeBuilder) WithAmount(amount float64) *TradeBuilder {
	b.Amount = amount
	return b
}

// WithShare sets the share count.
func (b *TradeBuilder) WithShare(share float64) *TradeBuilder {
	b.Share = share
	return b
}

// WithPrice sets the settlement price.
func (b *TradeBuilder) WithPrice(price float64) *TradeBuilder {
	b.Price = price
	return b
}

// Build inserts the trade and returns the model.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO trade (id, fund_code, type, date, amount, share, price, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, b.ID, b.FundCode, b.Type, b.Date, b.Amount, b.Share, b.Price)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return model.Trade{
		ID:       b.ID,
		FundCode: b.FundCode,
		Type:     b.Type,
		Date:     b.Date,
		Amount:   b.Amount,
		Share:    b.Share,
		Price:    b.Price,
	}
}

// PendingTradeBuilder provides a fluent interface for creating queued test
// trade intents.
type PendingTradeBuilder struct {
	ID         string
	FundCode   string
	Type       string
	Date       string
	IsAfter3pm bool
	Amount     float64
	Share      float64
	FeeMode    string
	FeeValue   float64
}

// NewPendingTrade creates a PendingTradeBuilder with sensible defaults
// (a pending buy).
func NewPendingTrade(fundCode string) *PendingTradeBuilder {
	return &PendingTradeBuilder{
		ID:       MakeID(),
		FundCode: fundCode,
		Type:     model.TradeTypeBuy,
		Date:     "2024-05-10",
		Amount:   10000,
		FeeMode:  model.FeeModeRate,
		FeeValue: 0.12,
	}
}

// Sell turns the intent into a pending sell for the given share count.
func (b *PendingTradeBuilder) Sell(share float64) *PendingTradeBuilder {
	b.Type = model.TradeTypeSell
	b.Amount = 0
	b.Share = share
	return b
}

// WithDate sets the order date.
func (b *PendingTradeBuilder) WithDate(date string) *PendingTradeBuilder {
	b.Date = date
	return b
}

// After3pm marks the intent as submitted past the cutoff.
func (b *PendingTradeBuilder) After3pm() *PendingTradeBuilder {
	b.IsAfter3pm = true
	return b
}

// WithFee sets the fee mode and value.
func (b *PendingTradeBuilder) WithFee(mode string, value float64) *PendingTradeBuilder {
	b.FeeMode = mode
	b.FeeValue = value
	return b
}

// Build inserts the pending trade and returns the model.
func (b *PendingTradeBuilder) Build(t *testing.T, db *sql.DB) model.PendingTrade {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO pending_trade (id, fund_code, type, date, is_after_3pm, amount, share, fee_mode, fee_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.FundCode, b.Type, b.Date, b.IsAfter3pm, b.Amount, b.Share, b.FeeMode, b.FeeValue)
	if err != nil {
		t.Fatalf("Failed to insert test pending trade: %v", err)
	}

	return model.PendingTrade{
		ID:         b.ID,
		FundCode:   b.FundCode,
		Type:       b.Type,
		Date:       b.Date,
		IsAfter3pm: b.IsAfter3pm,
		Amount:     b.Amount,
		Share:      b.Share,
		FeeMode:    b.FeeMode,
		FeeValue:   b.FeeValue,
	}
}
