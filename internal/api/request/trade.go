package request

// SubmitTradeRequest is a trade intent. Buys state the total amount spent
// and the fee rate in percent; sells state the share count and a fee in
// either rate (percent of proceeds) or amount (flat) mode.
type SubmitTradeRequest struct {
	FundCode   string  `json:"fundCode"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	IsAfter3pm bool    `json:"isAfter3pm"`
	Amount     float64 `json:"amount,omitempty"`
	Share      float64 `json:"share,omitempty"`
	FeeMode    string  `json:"feeMode,omitempty"`
	FeeValue   float64 `json:"feeValue"`
}
