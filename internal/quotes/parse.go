package quotes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// Valuation is a fund's intraday valuation snapshot. Nav is the last
// published unit value (dwjz), Estimate the realtime estimate (gsz), and
// EstimateChangePercent its change against Nav. Nil fields were absent from
// the provider response.
type Valuation struct {
	Name                  string   `json:"name"`
	Nav                   *float64 `json:"nav"`
	NavDate               string   `json:"navDate"`
	Estimate              *float64 `json:"estimate"`
	EstimateChangePercent *float64 `json:"estimateChangePercent"`
}

// ParseQuoteLine parses the tilde-separated realtime quote line returned by
// the exchange quote provider, e.g.
//
//	v_sh510300="1~沪深300ETF~510300~3.921~-0.015~-0.38~...";
//
// Numeric fields that fail to parse default to 0.
func ParseQuoteLine(code, body string) (*model.Quote, error) {
	eq := strings.Index(body, "=")
	if eq < 0 {
		return nil, fmt.Errorf("malformed quote response for %s", code)
	}

	payload := strings.TrimSpace(body[eq+1:])
	payload = strings.TrimSuffix(payload, ";")
	payload = strings.Trim(payload, `"`)

	parts := strings.Split(payload, "~")
	if len(parts) < 38 {
		return nil, fmt.Errorf("quote response for %s has %d fields, want at least 38", code, len(parts))
	}

	price := parseFloat(parts[3])
	change := parseFloat(parts[4])

	prevClose := 0.0
	if change != 0 {
		prevClose = price - change
	}

	return &model.Quote{
		Code:          code,
		Name:          parts[1],
		Price:         price,
		Change:        change,
		ChangePercent: parseFloat(parts[5]),
		Volume:        parseFloat(parts[6]),
		Amount:        parseFloat(parts[37]),
		High:          parseFloat(parts[33]),
		Low:           parseFloat(parts[34]),
		Open:          parseFloat(parts[32]),
		PrevClose:     prevClose,
		Time:          parts[30],
	}, nil
}

// valuationPayload mirrors the provider's JSONP body.
type valuationPayload struct {
	Name  string `json:"name"`
	Jzrq  string `json:"jzrq"`  // publish date of dwjz
	Dwjz  string `json:"dwjz"`  // last published unit value
	Gsz   string `json:"gsz"`   // realtime estimate
	Gszzl string `json:"gszzl"` // estimate change percent
}

// ParseValuation parses the JSONP valuation body, e.g.
//
//	jsonpgz({"fundcode":"161725","name":"...","jzrq":"2024-05-10","dwjz":"1.1","gsz":"1.12","gszzl":"1.82"});
func ParseValuation(body string) (*Valuation, error) {
	start := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("malformed valuation response")
	}

	var payload valuationPayload
	if err := json.Unmarshal([]byte(body[start+1:end]), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse valuation response: %w", err)
	}

	return &Valuation{
		Name:                  payload.Name,
		Nav:                   parseOptFloat(payload.Dwjz),
		NavDate:               payload.Jzrq,
		Estimate:              parseOptFloat(payload.Gsz),
		EstimateChangePercent: parseOptFloat(payload.Gszzl),
	}, nil
}

// NetValueEntry is one row of a fund's published net value history.
type NetValueEntry struct {
	Date  string
	Value float64
}

// netValueResponse mirrors the history endpoint's JSON envelope.
type netValueResponse struct {
	Data struct {
		LSJZList []struct {
			FSRQ string `json:"FSRQ"` // publish date
			DWJZ string `json:"DWJZ"` // unit net value
		} `json:"LSJZList"`
	} `json:"Data"`
	ErrCode int `json:"ErrCode"`
}

// ParseNetValueHistory parses the published net value history response.
// Rows without a parsable value are dropped.
func ParseNetValueHistory(body []byte) ([]NetValueEntry, error) {
	var resp netValueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse net value history: %w", err)
	}
	if resp.ErrCode != 0 {
		return nil, fmt.Errorf("net value provider error code %d", resp.ErrCode)
	}

	entries := make([]NetValueEntry, 0, len(resp.Data.LSJZList))
	for _, row := range resp.Data.LSJZList {
		v, err := strconv.ParseFloat(row.DWJZ, 64)
		if err != nil || row.FSRQ == "" {
			continue
		}
		entries = append(entries, NetValueEntry{Date: row.FSRQ, Value: v})
	}
	return entries, nil
}

// SelectNetValue picks the published entry that governs an order dated
// `date`: the earliest published trading day on or after it. Returns nil
// when no such value has been published yet. Date strings are YYYY-MM-DD,
// so lexicographic order is date order.
func SelectNetValue(entries []NetValueEntry, date string) *model.ReferenceValue {
	candidates := entries[:0:0]
	for _, e := range entries {
		if e.Date >= date {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Date < candidates[j].Date })
	return &model.ReferenceValue{Value: candidates[0].Value, Date: candidates[0].Date}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseOptFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
