package model

import "time"

// Trade types.
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// Fee modes for sell trades: a percentage of the sell amount, or a flat value.
const (
	FeeModeRate   = "rate"
	FeeModeAmount = "amount"
)

// Trade is a finalized ledger entry, created once a settlement value was
// resolved. It is immutable thereafter except for deletion, and deletion
// does not reverse the holding mutation it was applied with.
type Trade struct {
	ID        string    `json:"id"`
	FundCode  string    `json:"fundCode"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Share     float64   `json:"share"`
	Price     float64   `json:"price"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// PendingTrade is a trade intent recorded before its settlement value is
// known. All fee and amount inputs are snapshotted at submission time;
// resolution never reads live form state. A pending entry may be revoked,
// which leaves holdings untouched since it was never applied.
type PendingTrade struct {
	ID         string    `json:"id"`
	FundCode   string    `json:"fundCode"`
	Type       string    `json:"type"`
	Date       string    `json:"date"`
	IsAfter3pm bool      `json:"isAfter3pm"`
	Amount     float64   `json:"amount"`
	Share      float64   `json:"share"`
	FeeMode    string    `json:"feeMode"`
	FeeValue   float64   `json:"feeValue"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Holding is the aggregate owned share count for a fund. It is mutated only
// by applying finalized trades and never goes negative.
type Holding struct {
	FundCode string  `json:"fundCode"`
	Share    float64 `json:"share"`
}

// HoldingSummary is a holding enriched with the share count still available
// for sale once shares reserved by pending sells are subtracted.
type HoldingSummary struct {
	FundCode       string  `json:"fundCode"`
	Share          float64 `json:"share"`
	PendingSell    float64 `json:"pendingSellShare"`
	AvailableShare float64 `json:"availableShare"`
}
