// Package catalog holds the static LOF/ETF reference list the application
// tracks. The list ships embedded; funds are identified by exchange code.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

//go:embed funds.yaml
var fundsYAML []byte

// Catalog is an immutable fund reference list with code lookup.
type Catalog struct {
	funds  []model.Fund
	byCode map[string]model.Fund
}

// Load parses the embedded fund list.
func Load() (*Catalog, error) {
	var funds []model.Fund
	if err := yaml.Unmarshal(fundsYAML, &funds); err != nil {
		return nil, fmt.Errorf("failed to parse fund catalog: %w", err)
	}

	byCode := make(map[string]model.Fund, len(funds))
	for _, f := range funds {
		byCode[f.Code] = f
	}

	return &Catalog{funds: funds, byCode: byCode}, nil
}

// All returns the full fund list in catalog order.
func (c *Catalog) All() []model.Fund {
	out := make([]model.Fund, len(c.funds))
	copy(out, c.funds)
	return out
}

// Find looks a fund up by code.
func (c *Catalog) Find(code string) (model.Fund, error) {
	f, ok := c.byCode[code]
	if !ok {
		return model.Fund{}, fmt.Errorf("%w: %s", apperrors.ErrFundNotFound, code)
	}
	return f, nil
}
