package finance

import (
	"context"

	"google.golang.org/adk/tool"

	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const getAnalystRecommendations = "get_analyst_recommendations"

type RecommendationPeriod struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strong_buy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strong_sell"`
}

type AnalystRecommendations struct {
	Symbol             string                 `json:"symbol"`
	Consensus          string                 `json:"consensus,omitempty"`
	RecommendationMean *float64               `json:"recommendation_mean,omitempty"`
	Analysts           int                    `json:"analysts,omitempty"`
	TargetMeanPrice    *float64               `json:"target_mean_price,omitempty"`
	TargetHighPrice    *float64               `json:"target_high_price,omitempty"`
	TargetLowPrice     *float64               `json:"target_low_price,omitempty"`
	Trend              []RecommendationPeriod `json:"trend"`
}

// NewAnalystRecommendationsTool returns a tool with analyst ratings and price targets.
func NewAnalystRecommendationsTool(deps shared.Deps) (tool.Tool, error) {
	if err := requireMarketData(deps, getAnalystRecommendations); err != nil {
		return nil, err
	}

	return shared.NewToolBuilder(
		getAnalystRecommendations,
		"Get analyst recommendations (strong buy to strong sell counts per month) and price targets for a ticker symbol.",
		analystRecommendations(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func analystRecommendations(deps shared.Deps) shared.ToolFunc[SymbolArgs, AnalystRecommendations] {
	return func(ctx context.Context, args SymbolArgs) (AnalystRecommendations, error) {
		symbol, err := args.validate(getAnalystRecommendations)
		if err != nil {
			return AnalystRecommendations{}, err
		}

		summary, err := deps.MarketData.QuoteSummary(ctx, symbol, yahoo.ModuleRecommendationTrend, yahoo.ModuleFinancialData)
		if err != nil {
			return AnalystRecommendations{}, errors.Wrap(err, getAnalystRecommendations)
		}

		result := AnalystRecommendations{Symbol: symbol, Trend: []RecommendationPeriod{}}

		if fd := summary.FinancialData; fd != nil {
			if fd.RecommendationKey != "none" {
				result.Consensus = fd.RecommendationKey
			}
			result.RecommendationMean = value(fd.RecommendationMean, 2)
			result.Analysts = int(fd.NumberOfAnalystOpinions.Raw)
			result.TargetMeanPrice = value(fd.TargetMeanPrice, 2)
			result.TargetHighPrice = value(fd.TargetHighPrice, 2)
			result.TargetLowPrice = value(fd.TargetLowPrice, 2)
		}

		if rt := summary.RecommendationTrend; rt != nil {
			for _, p := range rt.Trend {
				result.Trend = append(result.Trend, RecommendationPeriod{
					Period:     p.Period,
					StrongBuy:  p.StrongBuy,
					Buy:        p.Buy,
					Hold:       p.Hold,
					Sell:       p.Sell,
					StrongSell: p.StrongSell,
				})
			}
		}

		if len(result.Trend) == 0 && result.Consensus == "" {
			return AnalystRecommendations{}, errors.Wrapf(errors.ErrNotFound, "%s: no analyst coverage for %s", getAnalystRecommendations, symbol)
		}

		return result, nil
	}
}
