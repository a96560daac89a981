package yahoo

import "time"

// Value is Yahoo's {"raw": ..., "fmt": ...} number encoding. Missing values decode as zero.
type Value struct {
	Raw     float64 `json:"raw"`
	Fmt     string  `json:"fmt"`
	LongFmt string  `json:"longFmt"`
}

// Valid reports whether the upstream actually supplied a formatted value.
func (v Value) Valid() bool {
	return v.Fmt != "" || v.Raw != 0
}

// Candle is one OHLCV bar. Bars with a null close are dropped while decoding.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Chart is the decoded v8 chart response for one symbol, oldest candle first.
type Chart struct {
	Symbol             string
	Currency           string
	ExchangeName       string
	RegularMarketPrice float64
	PreviousClose      float64
	RegularMarketTime  time.Time
	FiftyTwoWeekHigh   float64
	FiftyTwoWeekLow    float64
	Candles            []Candle
}

// Closes returns the closing prices, oldest first.
func (c *Chart) Closes() []float64 {
	closes := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		closes[i] = candle.Close
	}
	return closes
}

// QuoteSummary modules.
const (
	ModuleAssetProfile         = "assetProfile"
	ModulePrice                = "price"
	ModuleSummaryDetail        = "summaryDetail"
	ModuleDefaultKeyStatistics = "defaultKeyStatistics"
	ModuleFinancialData        = "financialData"
	ModuleRecommendationTrend  = "recommendationTrend"
)

// QuoteSummary holds the requested modules; modules that were not requested stay nil.
type QuoteSummary struct {
	AssetProfile         *AssetProfile         `json:"assetProfile"`
	Price                *Price                `json:"price"`
	SummaryDetail        *SummaryDetail        `json:"summaryDetail"`
	DefaultKeyStatistics *DefaultKeyStatistics `json:"defaultKeyStatistics"`
	FinancialData        *FinancialData        `json:"financialData"`
	RecommendationTrend  *RecommendationTrend  `json:"recommendationTrend"`
}

type AssetProfile struct {
	Address1            string `json:"address1"`
	City                string `json:"city"`
	State               string `json:"state"`
	Country             string `json:"country"`
	Phone               string `json:"phone"`
	Website             string `json:"website"`
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	LongBusinessSummary string `json:"longBusinessSummary"`
	FullTimeEmployees   int64  `json:"fullTimeEmployees"`
}

type Price struct {
	Symbol                     string `json:"symbol"`
	ShortName                  string `json:"shortName"`
	LongName                   string `json:"longName"`
	Currency                   string `json:"currency"`
	ExchangeName               string `json:"exchangeName"`
	RegularMarketPrice         Value  `json:"regularMarketPrice"`
	RegularMarketChange        Value  `json:"regularMarketChange"`
	RegularMarketChangePercent Value  `json:"regularMarketChangePercent"`
	MarketCap                  Value  `json:"marketCap"`
}

type SummaryDetail struct {
	Currency             string `json:"currency"`
	PreviousClose        Value  `json:"previousClose"`
	Open                 Value  `json:"open"`
	DayLow               Value  `json:"dayLow"`
	DayHigh              Value  `json:"dayHigh"`
	Volume               Value  `json:"volume"`
	AverageVolume        Value  `json:"averageVolume"`
	MarketCap            Value  `json:"marketCap"`
	TrailingPE           Value  `json:"trailingPE"`
	ForwardPE            Value  `json:"forwardPE"`
	DividendYield        Value  `json:"dividendYield"`
	Beta                 Value  `json:"beta"`
	FiftyTwoWeekLow      Value  `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh     Value  `json:"fiftyTwoWeekHigh"`
	FiftyDayAverage      Value  `json:"fiftyDayAverage"`
	TwoHundredDayAverage Value  `json:"twoHundredDayAverage"`
}

type DefaultKeyStatistics struct {
	EnterpriseValue   Value `json:"enterpriseValue"`
	ForwardPE         Value `json:"forwardPE"`
	PegRatio          Value `json:"pegRatio"`
	PriceToBook       Value `json:"priceToBook"`
	BookValue         Value `json:"bookValue"`
	TrailingEps       Value `json:"trailingEps"`
	ForwardEps        Value `json:"forwardEps"`
	SharesOutstanding Value `json:"sharesOutstanding"`
}

type FinancialData struct {
	CurrentPrice            Value  `json:"currentPrice"`
	TargetHighPrice         Value  `json:"targetHighPrice"`
	TargetLowPrice          Value  `json:"targetLowPrice"`
	TargetMeanPrice         Value  `json:"targetMeanPrice"`
	RecommendationMean      Value  `json:"recommendationMean"`
	RecommendationKey       string `json:"recommendationKey"`
	NumberOfAnalystOpinions Value  `json:"numberOfAnalystOpinions"`
	TotalRevenue            Value  `json:"totalRevenue"`
	RevenueGrowth           Value  `json:"revenueGrowth"`
	GrossMargins            Value  `json:"grossMargins"`
	ProfitMargins           Value  `json:"profitMargins"`
	ReturnOnEquity          Value  `json:"returnOnEquity"`
	DebtToEquity            Value  `json:"debtToEquity"`
	FreeCashflow            Value  `json:"freeCashflow"`
}

type RecommendationTrend struct {
	Trend []RecommendationPeriod `json:"trend"`
}

// RecommendationPeriod counts analyst ratings; Period is "0m" for the current month, "-1m" for the previous, etc.
type RecommendationPeriod struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// raw wire shapes

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		ExchangeName       string  `json:"exchangeName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
		PreviousClose      float64 `json:"previousClose"`
		FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummary `json:"result"`
		Error  *apiError      `json:"error"`
	} `json:"quoteSummary"`
}
