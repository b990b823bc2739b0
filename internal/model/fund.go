package model

// Fund types. LOF funds trade on-exchange but settle against a daily NAV;
// ETFs publish an intraday IOPV estimate.
const (
	FundTypeLOF = "LOF"
	FundTypeETF = "ETF"
)

// Fund is immutable reference data for a listed fund, created from the
// static catalog.
type Fund struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Quote is a point-in-time market snapshot for a fund. It is re-fetched per
// refresh cycle and never persisted. Numeric fields default to 0 when the
// provider returns an unparsable value.
type Quote struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
	Amount        float64 `json:"amount"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PrevClose     float64 `json:"prevClose"`
	Time          string  `json:"time"`
}

// ReferenceValue is the net asset value used as the arbitrage baseline or
// settlement price: the IOPV estimate for ETFs, the realized or estimated
// daily net value for LOFs. Date is the provider's actual publish date in
// YYYY-MM-DD form, which may differ from the date that was requested.
type ReferenceValue struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}
