package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"quotegateway/internal/source"
)

const summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData"

// value is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper around numeric
// fields. A missing or null field stays a nil *value.
type value struct {
	Raw *float64 `json:"raw"`
}

func (v *value) raw() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

// summaryResponse is the response structure of the quoteSummary API,
// limited to the modules and fields the gateway consumes.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName string `json:"longName"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE                   *value `json:"trailingPE"`
				PriceToSalesTrailing12Months *value `json:"priceToSalesTrailing12Months"`
				DividendYield                *value `json:"dividendYield"`
				DividendRate                 *value `json:"dividendRate"`
				PayoutRatio                  *value `json:"payoutRatio"`
				Beta                         *value `json:"beta"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook *value `json:"priceToBook"`
				PEGRatio    *value `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity    *value `json:"returnOnEquity"`
				ReturnOnAssets    *value `json:"returnOnAssets"`
				ProfitMargins     *value `json:"profitMargins"`
				RevenueGrowth     *value `json:"revenueGrowth"`
				EarningsGrowth    *value `json:"earningsGrowth"`
				DebtToEquity      *value `json:"debtToEquity"`
				CurrentRatio      *value `json:"currentRatio"`
				RecommendationKey string `json:"recommendationKey"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Info fetches the descriptive and statistical fields for ticker.
func (c *Client) Info(ctx context.Context, ticker string) (*source.Info, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(summaryModules))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no summary for %s", ticker)
	}

	r := summary.QuoteSummary.Result[0]
	return &source.Info{
		LongName:          r.Price.LongName,
		TrailingPE:        r.SummaryDetail.TrailingPE.raw(),
		PriceToBook:       r.DefaultKeyStatistics.PriceToBook.raw(),
		PriceToSales:      r.SummaryDetail.PriceToSalesTrailing12Months.raw(),
		PEGRatio:          r.DefaultKeyStatistics.PEGRatio.raw(),
		ReturnOnEquity:    r.FinancialData.ReturnOnEquity.raw(),
		ReturnOnAssets:    r.FinancialData.ReturnOnAssets.raw(),
		ProfitMargins:     r.FinancialData.ProfitMargins.raw(),
		DividendYield:     r.SummaryDetail.DividendYield.raw(),
		DividendRate:      r.SummaryDetail.DividendRate.raw(),
		PayoutRatio:       r.SummaryDetail.PayoutRatio.raw(),
		RevenueGrowth:     r.FinancialData.RevenueGrowth.raw(),
		EarningsGrowth:    r.FinancialData.EarningsGrowth.raw(),
		DebtToEquity:      r.FinancialData.DebtToEquity.raw(),
		CurrentRatio:      r.FinancialData.CurrentRatio.raw(),
		Beta:              r.SummaryDetail.Beta.raw(),
		RecommendationKey: r.FinancialData.RecommendationKey,
	}, nil
}
