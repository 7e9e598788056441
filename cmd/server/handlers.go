package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"quotegateway/internal/gateway"
	"quotegateway/internal/source"
)

const (
	defaultPeriod   = "1y"
	defaultInterval = "1d"
	// quotePeriod is the series window used for the latest-quote lookup.
	quotePeriod = "1d"
)

type handler struct {
	src source.Source
}

func registerRoutes(mux *http.ServeMux, h *handler) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /api/fundamentals/{ticker}", h.handleFundamentals)
	mux.HandleFunc("GET /api/historical/{ticker}", h.handleHistorical)
	mux.HandleFunc("GET /api/quote/{ticker}", h.handleQuote)
}

type rootResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Name:      serviceName,
		Version:   serviceVersion,
		Status:    "running",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *handler) handleFundamentals(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	log.Printf("fetching fundamentals for %s", ticker)

	info, err := h.src.Info(r.Context(), ticker)
	if err != nil {
		log.Printf("error fetching fundamentals for %s: %v", ticker, err)
		writeError(w, ticker, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Fundamentals(ticker, info, time.Now()))
}

func (h *handler) handleHistorical(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	period := r.URL.Query().Get("period")
	if period == "" {
		period = defaultPeriod
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = defaultInterval
	}
	log.Printf("fetching historical data for %s (period=%s, interval=%s)", ticker, period, interval)

	bars, err := h.src.History(r.Context(), ticker, period, interval)
	if err != nil {
		log.Printf("error fetching historical data for %s: %v", ticker, err)
		writeError(w, ticker, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.HistoricalResponse{
		Ticker:   ticker,
		Period:   period,
		Interval: interval,
		Data:     gateway.Points(bars),
		Success:  true,
	})
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	log.Printf("fetching quote for %s", ticker)

	bars, err := h.src.History(r.Context(), ticker, quotePeriod, defaultInterval)
	if err != nil {
		log.Printf("error fetching quote for %s: %v", ticker, err)
		writeError(w, ticker, err)
		return
	}
	quote, err := gateway.LatestQuote(ticker, bars)
	if err != nil {
		log.Printf("error fetching quote for %s: %v", ticker, err)
		writeError(w, ticker, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError converts any upstream failure into the uniform envelope.
// Not-found, network errors and malformed payloads all collapse to 500.
func writeError(w http.ResponseWriter, ticker string, err error) {
	writeJSON(w, http.StatusInternalServerError, gateway.ErrorResponse{
		Ticker:  ticker,
		Success: false,
		Error:   err.Error(),
	})
}
