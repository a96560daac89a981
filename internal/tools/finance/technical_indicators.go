package finance

import (
	"context"
	"slices"

	"github.com/markcheno/go-talib"
	"google.golang.org/adk/tool"

	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const (
	getTechnicalIndicators = "get_technical_indicators"
	defaultPeriod          = "6mo"
	minCloses              = 20
)

var supportedPeriods = []string{"3mo", "6mo", "1y", "2y", "5y"}

type TechnicalArgs struct {
	Symbol string `json:"symbol" jsonschema:"stock ticker symbol, e.g. ADBE"`
	Period string `json:"period,omitempty" jsonschema:"history window of daily bars: 3mo, 6mo, 1y, 2y or 5y (default 6mo)"`
}

type RSI struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

type MACD struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Direction string  `json:"direction"`
}

type BollingerBands struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Position string  `json:"position"`
}

type TechnicalIndicators struct {
	Symbol    string          `json:"symbol"`
	Period    string          `json:"period"`
	Bars      int             `json:"bars"`
	LastClose float64         `json:"last_close"`
	SMA20     *float64        `json:"sma_20,omitempty"`
	SMA50     *float64        `json:"sma_50,omitempty"`
	EMA20     *float64        `json:"ema_20,omitempty"`
	RSI       *RSI            `json:"rsi_14,omitempty"`
	MACD      *MACD           `json:"macd,omitempty"`
	Bollinger *BollingerBands `json:"bollinger_20_2,omitempty"`
	Trend     string          `json:"trend,omitempty"`
}

// NewTechnicalIndicatorsTool returns a tool computing common indicators over daily closes.
func NewTechnicalIndicatorsTool(deps shared.Deps) (tool.Tool, error) {
	if err := requireMarketData(deps, getTechnicalIndicators); err != nil {
		return nil, err
	}

	return shared.NewToolBuilder(
		getTechnicalIndicators,
		"Get technical indicators for a ticker symbol from daily prices: SMA 20/50, EMA 20, RSI 14, MACD 12/26/9 and Bollinger bands.",
		technicalIndicators(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func technicalIndicators(deps shared.Deps) shared.ToolFunc[TechnicalArgs, TechnicalIndicators] {
	return func(ctx context.Context, args TechnicalArgs) (TechnicalIndicators, error) {
		symbol, err := SymbolArgs{Symbol: args.Symbol}.validate(getTechnicalIndicators)
		if err != nil {
			return TechnicalIndicators{}, err
		}
		period := args.Period
		if period == "" {
			period = defaultPeriod
		}
		if !slices.Contains(supportedPeriods, period) {
			return TechnicalIndicators{}, errors.Wrapf(errors.ErrInvalidInput, "%s: unsupported period %q", getTechnicalIndicators, period)
		}

		chart, err := deps.MarketData.Chart(ctx, symbol, period, "1d")
		if err != nil {
			return TechnicalIndicators{}, errors.Wrap(err, getTechnicalIndicators)
		}

		closes := chart.Closes()
		if len(closes) < minCloses {
			return TechnicalIndicators{}, errors.Wrapf(errors.ErrInvalidInput,
				"%s requires at least %d daily bars, got %d", getTechnicalIndicators, minCloses, len(closes))
		}

		return ComputeIndicators(symbol, period, closes), nil
	}
}

// ComputeIndicators evaluates the indicator set over closes (oldest first).
// Indicators whose lookback exceeds the history are omitted.
func ComputeIndicators(symbol, period string, closes []float64) TechnicalIndicators {
	last := closes[len(closes)-1]
	result := TechnicalIndicators{
		Symbol:    symbol,
		Period:    period,
		Bars:      len(closes),
		LastClose: shared.Round(last, 2),
	}

	if len(closes) >= 20 {
		result.SMA20 = lastRounded(talib.Sma(closes, 20))
		result.EMA20 = lastRounded(talib.Ema(closes, 20))

		upper, middle, lower := talib.BBands(closes, 20, 2.0, 2.0, talib.SMA)
		u, m, l := upper[len(upper)-1], middle[len(middle)-1], lower[len(lower)-1]
		position := "inside"
		if last > u {
			position = "above_upper"
		} else if last < l {
			position = "below_lower"
		}
		result.Bollinger = &BollingerBands{
			Upper:    shared.Round(u, 2),
			Middle:   shared.Round(m, 2),
			Lower:    shared.Round(l, 2),
			Position: position,
		}
	}

	if len(closes) >= 50 {
		result.SMA50 = lastRounded(talib.Sma(closes, 50))
	}

	if len(closes) > 14 {
		rsi := talib.Rsi(closes, 14)[len(closes)-1]
		result.RSI = &RSI{Value: shared.Round(rsi, 2), Signal: rsiSignal(rsi)}
	}

	// MACD needs slow period + signal period - 1 bars before the first value
	if len(closes) >= 26+9-1 {
		line, signal, hist := talib.Macd(closes, 12, 26, 9)
		m, s, h := line[len(line)-1], signal[len(signal)-1], hist[len(hist)-1]
		result.MACD = &MACD{
			Line:      shared.Round(m, 2),
			Signal:    shared.Round(s, 2),
			Histogram: shared.Round(h, 2),
			Direction: macdDirection(m, s, h),
		}
	}

	if result.SMA20 != nil && result.SMA50 != nil {
		switch {
		case last > *result.SMA20 && *result.SMA20 > *result.SMA50:
			result.Trend = "uptrend"
		case last < *result.SMA20 && *result.SMA20 < *result.SMA50:
			result.Trend = "downtrend"
		default:
			result.Trend = "sideways"
		}
	}

	return result
}

func rsiSignal(rsi float64) string {
	switch {
	case rsi < 30:
		return "oversold"
	case rsi > 70:
		return "overbought"
	case rsi > 50:
		return "bullish"
	default:
		return "bearish"
	}
}

func macdDirection(line, signal, hist float64) string {
	switch {
	case line > signal && hist > 0:
		return "bullish"
	case line < signal && hist < 0:
		return "bearish"
	case line > signal:
		return "bullish_cross"
	default:
		return "bearish_cross"
	}
}

func lastRounded(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := shared.Round(values[len(values)-1], 2)
	return &v
}
