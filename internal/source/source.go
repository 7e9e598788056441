package source

import (
	"context"
	"time"
)

// Info holds the descriptive and statistical fields the upstream source
// publishes for a ticker. Every numeric field is a pointer because the
// source may omit any of them for a given ticker; absent means nil, not
// zero.
type Info struct {
	LongName          string
	TrailingPE        *float64
	PriceToBook       *float64
	PriceToSales      *float64
	PEGRatio          *float64
	ReturnOnEquity    *float64
	ReturnOnAssets    *float64
	ProfitMargins     *float64
	DividendYield     *float64
	DividendRate      *float64
	PayoutRatio       *float64
	RevenueGrowth     *float64
	EarningsGrowth    *float64
	DebtToEquity      *float64
	CurrentRatio      *float64
	Beta              *float64
	RecommendationKey string
}

// Bar is one price bar of a time series, already dividend/split adjusted
// by the upstream source.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Source is the narrow upstream interface the gateway depends on. History
// returns bars in the upstream's own chronological order; implementations
// must not re-sort. Period and interval tokens are passed through as-is
// and validated only by the upstream.
type Source interface {
	Info(ctx context.Context, ticker string) (*Info, error)
	History(ctx context.Context, ticker, period, interval string) ([]Bar, error)
}
