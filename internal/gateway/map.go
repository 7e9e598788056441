package gateway

import (
	"fmt"
	"math"
	"time"

	"quotegateway/internal/source"
)

const dateLayout = "2006-01-02"

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// percent converts a fractional ratio to a percentage rounded to two
// decimals. Nil passes through: absent upstream stays absent.
func percent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	p := round2(*v * 100)
	return &p
}

// Fundamentals maps upstream ticker info onto the fundamentals schema.
// The six ratios the upstream reports as fractions (roe, roa,
// profit_margin, dividend_yield, revenue_growth, earnings_growth) are
// converted to percentages; everything else passes through unrounded.
// The date is the generation date, not a data-as-of date.
func Fundamentals(ticker string, info *source.Info, now time.Time) FundamentalData {
	var rating *string
	if info.RecommendationKey != "" {
		rating = &info.RecommendationKey
	}
	return FundamentalData{
		Ticker:           ticker,
		Name:             info.LongName,
		Date:             now.Format(dateLayout),
		PERatio:          info.TrailingPE,
		PBRatio:          info.PriceToBook,
		PSRatio:          info.PriceToSales,
		PEGRatio:         info.PEGRatio,
		ROE:              percent(info.ReturnOnEquity),
		ROA:              percent(info.ReturnOnAssets),
		ProfitMargin:     percent(info.ProfitMargins),
		DividendYield:    percent(info.DividendYield),
		DividendPerShare: info.DividendRate,
		PayoutRatio:      info.PayoutRatio,
		RevenueGrowth:    percent(info.RevenueGrowth),
		EarningsGrowth:   percent(info.EarningsGrowth),
		DebtToEquity:     info.DebtToEquity,
		CurrentRatio:     info.CurrentRatio,
		Beta:             info.Beta,
		AnalystRating:    rating,
		Success:          true,
	}
}

// Points converts an upstream series to output points in the order the
// upstream returned it. OHLC values are rounded to four decimals and
// adjusted_close duplicates close: the upstream series is already
// dividend/split adjusted, so no separate adjustment is computed. An
// empty series yields an empty, non-nil slice.
func Points(bars []source.Bar) []HistoricalDataPoint {
	points := make([]HistoricalDataPoint, 0, len(bars))
	for _, b := range bars {
		cl := round4(b.Close)
		points = append(points, HistoricalDataPoint{
			Date:          b.Date.Format(dateLayout),
			Open:          round4(b.Open),
			High:          round4(b.High),
			Low:           round4(b.Low),
			Close:         cl,
			Volume:        b.Volume,
			AdjustedClose: cl,
		})
	}
	return points
}

// LatestQuote takes the last bar of a series as the latest quote. The
// quote carries the bar's own trading date, not the request time. An
// empty series is an error, surfaced through the standard envelope.
func LatestQuote(ticker string, bars []source.Bar) (QuoteData, error) {
	if len(bars) == 0 {
		return QuoteData{}, fmt.Errorf("no data available for %s", ticker)
	}
	last := bars[len(bars)-1]
	cl := round4(last.Close)
	return QuoteData{
		Ticker:        ticker,
		Date:          last.Date.Format(dateLayout),
		Open:          round4(last.Open),
		High:          round4(last.High),
		Low:           round4(last.Low),
		Close:         cl,
		Volume:        last.Volume,
		AdjustedClose: cl,
		Success:       true,
	}, nil
}
