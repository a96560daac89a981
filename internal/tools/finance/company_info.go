package finance

import (
	"context"
	"strings"

	"google.golang.org/adk/tool"

	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const getCompanyInfo = "get_company_info"

type CompanyInfo struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	Industry  string   `json:"industry,omitempty"`
	Website   string   `json:"website,omitempty"`
	Location  string   `json:"location,omitempty"`
	Employees string   `json:"employees,omitempty"`
	MarketCap string   `json:"market_cap,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Currency  string   `json:"currency,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// NewCompanyInfoTool returns a tool with the company profile for a symbol.
func NewCompanyInfoTool(deps shared.Deps) (tool.Tool, error) {
	if err := requireMarketData(deps, getCompanyInfo); err != nil {
		return nil, err
	}

	return shared.NewToolBuilder(
		getCompanyInfo,
		"Get company information and an overview for a ticker symbol: name, sector, industry, location, employees and business summary.",
		companyInfo(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func companyInfo(deps shared.Deps) shared.ToolFunc[SymbolArgs, CompanyInfo] {
	return func(ctx context.Context, args SymbolArgs) (CompanyInfo, error) {
		symbol, err := args.validate(getCompanyInfo)
		if err != nil {
			return CompanyInfo{}, err
		}

		summary, err := deps.MarketData.QuoteSummary(ctx, symbol, yahoo.ModuleAssetProfile, yahoo.ModulePrice)
		if err != nil {
			return CompanyInfo{}, errors.Wrap(err, getCompanyInfo)
		}
		if summary.AssetProfile == nil && summary.Price == nil {
			return CompanyInfo{}, errors.Wrapf(errors.ErrNotFound, "%s: no profile for %s", getCompanyInfo, symbol)
		}

		result := CompanyInfo{Symbol: symbol}

		if p := summary.Price; p != nil {
			result.Name = p.LongName
			if result.Name == "" {
				result.Name = p.ShortName
			}
			result.MarketCap = shared.Money(p.MarketCap.Raw)
			result.Price = value(p.RegularMarketPrice, 2)
			result.Currency = p.Currency
		}

		if ap := summary.AssetProfile; ap != nil {
			result.Sector = ap.Sector
			result.Industry = ap.Industry
			result.Website = ap.Website
			result.Location = joinNonEmpty(", ", ap.City, ap.State, ap.Country)
			result.Employees = shared.Count(float64(ap.FullTimeEmployees))
			result.Summary = ap.LongBusinessSummary
		}

		return result, nil
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
