package finance

import (
	"context"
	"time"

	"google.golang.org/adk/tool"

	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const getCurrentStockPrice = "get_current_stock_price"

type StockPrice struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Exchange      string  `json:"exchange,omitempty"`
	MarketTime    string  `json:"market_time,omitempty"`
}

// NewStockPriceTool returns a tool that fetches the latest trading price for a symbol.
func NewStockPriceTool(deps shared.Deps) (tool.Tool, error) {
	if err := requireMarketData(deps, getCurrentStockPrice); err != nil {
		return nil, err
	}

	return shared.NewToolBuilder(
		getCurrentStockPrice,
		"Get the current stock price for a ticker symbol, with the change since the previous close.",
		stockPrice(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func stockPrice(deps shared.Deps) shared.ToolFunc[SymbolArgs, StockPrice] {
	log := deps.Logger()

	return func(ctx context.Context, args SymbolArgs) (StockPrice, error) {
		symbol, err := args.validate(getCurrentStockPrice)
		if err != nil {
			return StockPrice{}, err
		}

		chart, err := deps.MarketData.Chart(ctx, symbol, "5d", "1d")
		if err != nil {
			return StockPrice{}, errors.Wrap(err, getCurrentStockPrice)
		}

		price := chart.RegularMarketPrice
		if price == 0 && len(chart.Candles) > 0 {
			price = chart.Candles[len(chart.Candles)-1].Close
		}
		if price == 0 {
			return StockPrice{}, errors.Wrapf(errors.ErrNotFound, "%s: no price for %s", getCurrentStockPrice, symbol)
		}

		result := StockPrice{
			Symbol:        symbol,
			Price:         shared.Round(price, 2),
			Currency:      chart.Currency,
			PreviousClose: shared.Round(chart.PreviousClose, 2),
			Change:        shared.Round(price-chart.PreviousClose, 2),
			ChangePercent: shared.PercentChange(chart.PreviousClose, price),
			Exchange:      chart.ExchangeName,
		}
		if chart.PreviousClose == 0 {
			result.Change = 0
		}
		if !chart.RegularMarketTime.IsZero() {
			result.MarketTime = chart.RegularMarketTime.Format(time.RFC3339)
		}

		log.Debugw("Tool: get_current_stock_price success", "symbol", symbol, "price", result.Price)
		return result, nil
	}
}
