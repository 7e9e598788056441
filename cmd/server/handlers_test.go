package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quotegateway/internal/gateway"
	"quotegateway/internal/source"
)

type fakeSource struct {
	info    *source.Info
	infoErr error
	bars    []source.Bar
	barsErr error

	gotTicker   string
	gotPeriod   string
	gotInterval string
}

func (f *fakeSource) Info(_ context.Context, ticker string) (*source.Info, error) {
	f.gotTicker = ticker
	return f.info, f.infoErr
}

func (f *fakeSource) History(_ context.Context, ticker, period, interval string) ([]source.Bar, error) {
	f.gotTicker = ticker
	f.gotPeriod = period
	f.gotInterval = interval
	return f.bars, f.barsErr
}

func serve(t *testing.T, src source.Source, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	registerRoutes(mux, &handler{src: src})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func fptr(v float64) *float64 { return &v }

func TestRootAndHealth(t *testing.T) {
	rr := serve(t, &fakeSource{}, "/")
	if rr.Code != 200 {
		t.Fatalf("root status=%d body=%s", rr.Code, rr.Body.String())
	}
	var root rootResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &root); err != nil {
		t.Fatalf("decode root: %v", err)
	}
	if root.Name != serviceName || root.Version != serviceVersion || root.Status != "running" || root.Timestamp == "" {
		t.Fatalf("unexpected root: %+v", root)
	}

	rr = serve(t, &fakeSource{}, "/health")
	if rr.Code != 200 {
		t.Fatalf("health status=%d body=%s", rr.Code, rr.Body.String())
	}
	var health healthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" || health.Timestamp == "" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestFundamentals_Success(t *testing.T) {
	src := &fakeSource{info: &source.Info{
		LongName:          "LVMH Moët Hennessy - Louis Vuitton, Société Européenne",
		TrailingPE:        fptr(24.5),
		ReturnOnEquity:    fptr(0.153),
		RecommendationKey: "buy",
	}}
	rr := serve(t, src, "/api/fundamentals/MC.PA")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if src.gotTicker != "MC.PA" {
		t.Fatalf("upstream called with %q", src.gotTicker)
	}

	var resp gateway.FundamentalData
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Ticker != "MC.PA" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ROE == nil || *resp.ROE != 15.3 {
		t.Fatalf("roe: %v", resp.ROE)
	}
	if *resp.AnalystRating != "buy" {
		t.Fatalf("analyst_rating: %v", resp.AnalystRating)
	}

	// absent fields serialize as null, never zero
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if string(raw["peg_ratio"]) != "null" {
		t.Fatalf("peg_ratio must be null, got %s", raw["peg_ratio"])
	}
}

func TestFundamentals_UpstreamErrorIs500Envelope(t *testing.T) {
	src := &fakeSource{infoErr: errors.New("yahoo: status 404, body: Not Found")}
	rr := serve(t, src, "/api/fundamentals/NOPE")
	if rr.Code != 500 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var envelope gateway.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success || envelope.Ticker != "NOPE" || envelope.Error == "" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}

	// the envelope never mixes in data fields
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	for _, k := range []string{"pe_ratio", "name", "data", "close"} {
		if _, ok := raw[k]; ok {
			t.Fatalf("error envelope must not carry %q: %s", k, rr.Body.String())
		}
	}
}

func TestHistorical_DefaultsAndMapping(t *testing.T) {
	d := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{bars: []source.Bar{
		{Date: d, Open: 100.12345678, High: 101, Low: 99, Close: 100.5, Volume: 42},
	}}
	rr := serve(t, src, "/api/historical/MC.PA")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if src.gotPeriod != "1y" || src.gotInterval != "1d" {
		t.Fatalf("defaults not applied: period=%q interval=%q", src.gotPeriod, src.gotInterval)
	}

	var resp gateway.HistoricalResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Ticker != "MC.PA" || resp.Period != "1y" || resp.Interval != "1d" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("want 1 point, got %d", len(resp.Data))
	}
	p := resp.Data[0]
	if p.Date != "2025-05-30" || p.Open != 100.1235 || p.AdjustedClose != p.Close {
		t.Fatalf("unexpected point: %+v", p)
	}
}

func TestHistorical_QueryParamsPassThrough(t *testing.T) {
	src := &fakeSource{bars: []source.Bar{}}
	rr := serve(t, src, "/api/historical/MC.PA?period=5d&interval=1wk")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if src.gotPeriod != "5d" || src.gotInterval != "1wk" {
		t.Fatalf("params not passed through: period=%q interval=%q", src.gotPeriod, src.gotInterval)
	}
}

func TestHistorical_EmptySeriesIsSuccess(t *testing.T) {
	src := &fakeSource{bars: []source.Bar{}}
	rr := serve(t, src, "/api/historical/MC.PA")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if string(raw["data"]) != "[]" {
		t.Fatalf("want data: [], got %s", raw["data"])
	}
	if string(raw["success"]) != "true" {
		t.Fatalf("want success: true, got %s", raw["success"])
	}
}

func TestQuote_UsesOneDayPeriodAndLastBar(t *testing.T) {
	d1 := time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	src := &fakeSource{bars: []source.Bar{
		{Date: d1, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 1},
		{Date: d2, Open: 740, High: 742, Low: 739, Close: 741.25, Volume: 250000},
	}}
	rr := serve(t, src, "/api/quote/MC.PA")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if src.gotPeriod != "1d" || src.gotInterval != "1d" {
		t.Fatalf("quote must fetch a one-day series: period=%q interval=%q", src.gotPeriod, src.gotInterval)
	}

	var resp gateway.QuoteData
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Date != "2025-05-30" || resp.Close != 741.25 || resp.AdjustedClose != 741.25 {
		t.Fatalf("unexpected quote: %+v", resp)
	}
}

func TestQuote_EmptySeriesIs500Envelope(t *testing.T) {
	src := &fakeSource{bars: []source.Bar{}}
	rr := serve(t, src, "/api/quote/MC.PA")
	if rr.Code != 500 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var envelope gateway.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success || envelope.Error != "no data available for MC.PA" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestQuote_UpstreamErrorIs500Envelope(t *testing.T) {
	src := &fakeSource{barsErr: errors.New("yahoo fetch: connection refused")}
	rr := serve(t, src, "/api/quote/MC.PA")
	if rr.Code != 500 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var envelope gateway.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success || envelope.Ticker != "MC.PA" || envelope.Error == "" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}
