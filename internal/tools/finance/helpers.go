package finance

import (
	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

// SymbolArgs is the argument shape shared by the per-symbol finance tools.
type SymbolArgs struct {
	Symbol string `json:"symbol" jsonschema:"stock ticker symbol, e.g. ADBE"`
}

func (a SymbolArgs) validate(toolName string) (string, error) {
	symbol := shared.NormalizeSymbol(a.Symbol)
	if symbol == "" {
		return "", errors.Wrapf(errors.ErrInvalidInput, "%s: symbol is required", toolName)
	}
	return symbol, nil
}

func requireMarketData(deps shared.Deps, toolName string) error {
	if !deps.HasMarketData() {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: market data client not configured", toolName)
	}
	return nil
}

// value returns a rounded raw value, or nil when upstream left it out.
func value(v yahoo.Value, places int32) *float64 {
	if !v.Valid() {
		return nil
	}
	r := shared.Round(v.Raw, places)
	return &r
}
