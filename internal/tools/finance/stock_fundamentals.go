package finance

import (
	"context"

	"google.golang.org/adk/tool"

	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const getStockFundamentals = "get_stock_fundamentals"

type StockFundamentals struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	MarketCap         string   `json:"market_cap,omitempty"`
	EnterpriseValue   string   `json:"enterprise_value,omitempty"`
	TrailingPE        *float64 `json:"trailing_pe,omitempty"`
	ForwardPE         *float64 `json:"forward_pe,omitempty"`
	PEGRatio          *float64 `json:"peg_ratio,omitempty"`
	PriceToBook       *float64 `json:"price_to_book,omitempty"`
	TrailingEPS       *float64 `json:"trailing_eps,omitempty"`
	ForwardEPS        *float64 `json:"forward_eps,omitempty"`
	DividendYield     *float64 `json:"dividend_yield_pct,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
	FiftyTwoWeekHigh  *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow   *float64 `json:"fifty_two_week_low,omitempty"`
	Revenue           string   `json:"revenue,omitempty"`
	RevenueGrowth     *float64 `json:"revenue_growth_pct,omitempty"`
	GrossMargin       *float64 `json:"gross_margin_pct,omitempty"`
	ProfitMargin      *float64 `json:"profit_margin_pct,omitempty"`
	ReturnOnEquity    *float64 `json:"return_on_equity_pct,omitempty"`
	DebtToEquity      *float64 `json:"debt_to_equity,omitempty"`
	FreeCashflow      string   `json:"free_cashflow,omitempty"`
	SharesOutstanding string   `json:"shares_outstanding,omitempty"`
}

// NewStockFundamentalsTool returns a tool with valuation and profitability figures.
func NewStockFundamentalsTool(deps shared.Deps) (tool.Tool, error) {
	if err := requireMarketData(deps, getStockFundamentals); err != nil {
		return nil, err
	}

	return shared.NewToolBuilder(
		getStockFundamentals,
		"Get fundamental data for a ticker symbol: market cap, P/E, EPS, margins, growth, dividend yield and 52-week range.",
		stockFundamentals(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func stockFundamentals(deps shared.Deps) shared.ToolFunc[SymbolArgs, StockFundamentals] {
	return func(ctx context.Context, args SymbolArgs) (StockFundamentals, error) {
		symbol, err := args.validate(getStockFundamentals)
		if err != nil {
			return StockFundamentals{}, err
		}

		summary, err := deps.MarketData.QuoteSummary(ctx, symbol,
			yahoo.ModulePrice,
			yahoo.ModuleSummaryDetail,
			yahoo.ModuleDefaultKeyStatistics,
			yahoo.ModuleFinancialData,
		)
		if err != nil {
			return StockFundamentals{}, errors.Wrap(err, getStockFundamentals)
		}

		result := StockFundamentals{Symbol: symbol}

		if p := summary.Price; p != nil {
			result.Name = p.LongName
			if result.Name == "" {
				result.Name = p.ShortName
			}
			result.Currency = p.Currency
			result.MarketCap = shared.Money(p.MarketCap.Raw)
		}

		if sd := summary.SummaryDetail; sd != nil {
			if result.MarketCap == "" {
				result.MarketCap = shared.Money(sd.MarketCap.Raw)
			}
			if result.Currency == "" {
				result.Currency = sd.Currency
			}
			result.TrailingPE = value(sd.TrailingPE, 2)
			result.ForwardPE = value(sd.ForwardPE, 2)
			result.DividendYield = percent(sd.DividendYield)
			result.Beta = value(sd.Beta, 2)
			result.FiftyTwoWeekHigh = value(sd.FiftyTwoWeekHigh, 2)
			result.FiftyTwoWeekLow = value(sd.FiftyTwoWeekLow, 2)
		}

		if ks := summary.DefaultKeyStatistics; ks != nil {
			result.EnterpriseValue = shared.Money(ks.EnterpriseValue.Raw)
			if result.ForwardPE == nil {
				result.ForwardPE = value(ks.ForwardPE, 2)
			}
			result.PEGRatio = value(ks.PegRatio, 2)
			result.PriceToBook = value(ks.PriceToBook, 2)
			result.TrailingEPS = value(ks.TrailingEps, 2)
			result.ForwardEPS = value(ks.ForwardEps, 2)
			result.SharesOutstanding = shared.Count(ks.SharesOutstanding.Raw)
		}

		if fd := summary.FinancialData; fd != nil {
			result.Revenue = shared.Money(fd.TotalRevenue.Raw)
			result.RevenueGrowth = percent(fd.RevenueGrowth)
			result.GrossMargin = percent(fd.GrossMargins)
			result.ProfitMargin = percent(fd.ProfitMargins)
			result.ReturnOnEquity = percent(fd.ReturnOnEquity)
			result.DebtToEquity = value(fd.DebtToEquity, 2)
			result.FreeCashflow = shared.Money(fd.FreeCashflow.Raw)
		}

		return result, nil
	}
}

// percent converts a fraction (0.123) to a rounded percentage (12.3).
func percent(v yahoo.Value) *float64 {
	if !v.Valid() {
		return nil
	}
	r := shared.Round(v.Raw*100, 2)
	return &r
}
