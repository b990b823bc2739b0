package quotes

import (
	"strings"
	"testing"
)

// quoteLine builds a provider response line with the given indexed fields
// set and everything else empty.
func quoteLine(code string, fields map[int]string) string {
	parts := make([]string, 50)
	for i, v := range fields {
		parts[i] = v
	}
	return "v_sz" + code + `="` + strings.Join(parts, "~") + `";`
}

func TestParseQuoteLine(t *testing.T) {
	t.Run("parses a realtime quote", func(t *testing.T) {
		body := quoteLine("161725", map[int]string{
			1:  "招商中证白酒A",
			3:  "1.234",
			4:  "0.034",
			5:  "2.83",
			6:  "152345",
			30: "20240510150003",
			32: "1.210",
			33: "1.240",
			34: "1.205",
			37: "18234.5",
		})

		q, err := ParseQuoteLine("161725", body)
		if err != nil {
			t.Fatalf("ParseQuoteLine() returned unexpected error: %v", err)
		}

		if q.Name != "招商中证白酒A" {
			t.Errorf("Name = %q", q.Name)
		}
		if q.Price != 1.234 || q.Change != 0.034 || q.ChangePercent != 2.83 {
			t.Errorf("Price fields wrong: %+v", q)
		}
		if !almostEqual(q.PrevClose, 1.2) {
			t.Errorf("PrevClose = %v, want 1.2", q.PrevClose)
		}
		if q.High != 1.240 || q.Low != 1.205 || q.Open != 1.210 {
			t.Errorf("OHLC wrong: %+v", q)
		}
		if q.Amount != 18234.5 || q.Volume != 152345 {
			t.Errorf("Volume/amount wrong: %+v", q)
		}
		if q.Time != "20240510150003" {
			t.Errorf("Time = %q", q.Time)
		}
	})

	t.Run("unparsable numerics default to zero", func(t *testing.T) {
		body := quoteLine("510300", map[int]string{3: "abc", 5: ""})
		q, err := ParseQuoteLine("510300", body)
		if err != nil {
			t.Fatalf("ParseQuoteLine() returned unexpected error: %v", err)
		}
		if q.Price != 0 || q.ChangePercent != 0 {
			t.Errorf("Expected zero defaults, got %+v", q)
		}
	})

	t.Run("rejects truncated responses", func(t *testing.T) {
		if _, err := ParseQuoteLine("510300", `v_sz510300="1~x~y";`); err == nil {
			t.Error("Expected error for truncated response")
		}
		if _, err := ParseQuoteLine("510300", "pagead"); err == nil {
			t.Error("Expected error for non-quote body")
		}
	})
}

func TestParseValuation(t *testing.T) {
	t.Run("parses estimate and published value", func(t *testing.T) {
		body := `jsonpgz({"fundcode":"161725","name":"招商中证白酒A","jzrq":"2024-05-10","dwjz":"1.1000","gsz":"1.1200","gszzl":"1.82","gztime":"2024-05-13 14:30"});`
		v, err := ParseValuation(body)
		if err != nil {
			t.Fatalf("ParseValuation() returned unexpected error: %v", err)
		}
		if v.Estimate == nil || *v.Estimate != 1.12 {
			t.Errorf("Estimate = %v", v.Estimate)
		}
		if v.Nav == nil || *v.Nav != 1.1 {
			t.Errorf("Nav = %v", v.Nav)
		}
		if v.NavDate != "2024-05-10" {
			t.Errorf("NavDate = %q", v.NavDate)
		}
	})

	t.Run("missing estimate stays nil, not zero", func(t *testing.T) {
		body := `jsonpgz({"fundcode":"161725","name":"x","jzrq":"2024-05-10","dwjz":"1.1000","gsz":"","gszzl":""});`
		v, err := ParseValuation(body)
		if err != nil {
			t.Fatalf("ParseValuation() returned unexpected error: %v", err)
		}
		if v.Estimate != nil {
			t.Errorf("Expected nil estimate, got %v", *v.Estimate)
		}
	})

	t.Run("rejects non-jsonp body", func(t *testing.T) {
		if _, err := ParseValuation("<html>blocked</html>"); err == nil {
			t.Error("Expected error for non-jsonp body")
		}
	})
}

func TestSelectNetValue(t *testing.T) {
	entries := []NetValueEntry{
		{Date: "2024-05-13", Value: 1.13},
		{Date: "2024-05-10", Value: 1.10},
		{Date: "2024-05-09", Value: 1.09},
	}

	t.Run("exact date match", func(t *testing.T) {
		ref := SelectNetValue(entries, "2024-05-10")
		if ref == nil || ref.Value != 1.10 || ref.Date != "2024-05-10" {
			t.Errorf("SelectNetValue = %+v", ref)
		}
	})

	t.Run("weekend order settles on the next published day", func(t *testing.T) {
		ref := SelectNetValue(entries, "2024-05-11")
		if ref == nil || ref.Date != "2024-05-13" {
			t.Errorf("SelectNetValue = %+v", ref)
		}
	})

	t.Run("future date not yet published", func(t *testing.T) {
		if ref := SelectNetValue(entries, "2024-05-14"); ref != nil {
			t.Errorf("Expected nil for unpublished date, got %+v", ref)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if ref := SelectNetValue(nil, "2024-05-10"); ref != nil {
			t.Errorf("Expected nil, got %+v", ref)
		}
	})
}

func TestMarketPrefix(t *testing.T) {
	cases := map[string]string{
		"600000": "sh",
		"920001": "sh",
		"510300": "sz",
		"161725": "sz",
		"430047": "bj",
		"830799": "bj",
		"":       "sz",
	}
	for code, want := range cases {
		if got := MarketPrefix(code); got != want {
			t.Errorf("MarketPrefix(%q) = %q, want %q", code, got, want)
		}
	}
}
