// Package gateway reshapes upstream market data into the fixed response
// schemas served over HTTP.
package gateway

// FundamentalData is the response shape for the fundamentals endpoint.
// Numeric ratios are pointers: a field the upstream omits for a ticker is
// serialized as null, never as zero.
type FundamentalData struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Date   string `json:"date"`

	// Valuation ratios
	PERatio  *float64 `json:"pe_ratio"`
	PBRatio  *float64 `json:"pb_ratio"`
	PSRatio  *float64 `json:"ps_ratio"`
	PEGRatio *float64 `json:"peg_ratio"`

	// Profitability (percent)
	ROE          *float64 `json:"roe"`
	ROA          *float64 `json:"roa"`
	ProfitMargin *float64 `json:"profit_margin"`

	// Dividends
	DividendYield    *float64 `json:"dividend_yield"`
	DividendPerShare *float64 `json:"dividend_per_share"`
	PayoutRatio      *float64 `json:"payout_ratio"`

	// Growth (percent)
	RevenueGrowth  *float64 `json:"revenue_growth"`
	EarningsGrowth *float64 `json:"earnings_growth"`

	// Debt
	DebtToEquity *float64 `json:"debt_to_equity"`
	CurrentRatio *float64 `json:"current_ratio"`

	Beta          *float64 `json:"beta"`
	AnalystRating *string  `json:"analyst_rating"`

	Success bool `json:"success"`
}

// HistoricalDataPoint is one OHLCV bar of a historical response.
type HistoricalDataPoint struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	AdjustedClose float64 `json:"adjusted_close"`
}

// HistoricalResponse is the response shape for the historical endpoint.
type HistoricalResponse struct {
	Ticker   string                `json:"ticker"`
	Period   string                `json:"period"`
	Interval string                `json:"interval"`
	Data     []HistoricalDataPoint `json:"data"`
	Success  bool                  `json:"success"`
}

// QuoteData is the response shape for the quote endpoint: the latest
// trading day's bar.
type QuoteData struct {
	Ticker        string  `json:"ticker"`
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	AdjustedClose float64 `json:"adjusted_close"`
	Success       bool    `json:"success"`
}

// ErrorResponse is the uniform error envelope. Every failure, whatever
// the cause, is served with this shape and HTTP 500.
type ErrorResponse struct {
	Ticker  string `json:"ticker"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
