package catalog

import (
	"errors"
	"testing"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	t.Run("embedded list is non-empty and typed", func(t *testing.T) {
		funds := c.All()
		if len(funds) == 0 {
			t.Fatal("Expected a non-empty catalog")
		}
		for _, f := range funds {
			if f.Type != model.FundTypeLOF && f.Type != model.FundTypeETF {
				t.Errorf("Fund %s has unexpected type %q", f.Code, f.Type)
			}
			if f.Code == "" || f.Name == "" {
				t.Errorf("Fund entry incomplete: %+v", f)
			}
		}
	})

	t.Run("finds a known ETF", func(t *testing.T) {
		f, err := c.Find("510300")
		if err != nil {
			t.Fatalf("Find() returned unexpected error: %v", err)
		}
		if f.Type != model.FundTypeETF {
			t.Errorf("Expected ETF, got %q", f.Type)
		}
	})

	t.Run("unknown code is ErrFundNotFound", func(t *testing.T) {
		_, err := c.Find("000000")
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})

	t.Run("All returns a copy", func(t *testing.T) {
		a := c.All()
		a[0].Name = "mutated"
		if c.All()[0].Name == "mutated" {
			t.Error("All() must not expose internal state")
		}
	})
}
