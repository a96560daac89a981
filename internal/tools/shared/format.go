package shared

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round rounds v to places decimal digits using decimal arithmetic.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// PercentChange returns (to-from)/from*100 rounded to two places; zero when from is zero.
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	a := decimal.NewFromFloat(from)
	b := decimal.NewFromFloat(to)
	f, _ := b.Sub(a).Div(a).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return f
}

// Money renders a large amount compactly, e.g. 2.1e11 -> "210 billion".
func Money(v float64) string {
	if v == 0 {
		return ""
	}
	value, unit := humanize.ComputeSI(v)
	switch unit {
	case "k":
		return humanize.CommafWithDigits(v, 0)
	case "M":
		return humanize.FtoaWithDigits(value, 2) + " million"
	case "G":
		return humanize.FtoaWithDigits(value, 2) + " billion"
	case "T":
		return humanize.FtoaWithDigits(value, 2) + " trillion"
	default:
		return humanize.CommafWithDigits(v, 2)
	}
}

// Count renders an integer with thousands separators.
func Count(v float64) string {
	if v == 0 {
		return ""
	}
	return humanize.Comma(int64(v))
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
