// Command probe exercises a running gateway over HTTP: health, fundamentals,
// historical and quote for each ticker. It is a manual verification tool,
// not a test.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	var baseURL string
	var tickersCSV string
	var period string
	var interval string
	var timeout int

	flag.StringVar(&baseURL, "base", getenv("GATEWAY_URL", "http://localhost:5099"), "gateway base URL")
	flag.StringVar(&tickersCSV, "tickers", getenv("TICKERS", "MC.PA,AIR.PA,OR.PA"), "comma-separated ticker symbols")
	flag.StringVar(&period, "period", "5d", "historical period token")
	flag.StringVar(&interval, "interval", "1d", "historical interval token")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 60), "request timeout seconds")
	flag.Parse()

	tickers := splitCSV(tickersCSV)
	if len(tickers) == 0 {
		log.Fatal("no tickers provided")
	}

	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second*time.Duration(1+3*len(tickers)))
	defer cancel()

	failures := 0
	check := func(label, path string) {
		status, body, err := get(ctx, client, baseURL+path)
		if err != nil {
			log.Printf("%s: %v", label, err)
			failures++
			return
		}
		if status != http.StatusOK {
			log.Printf("%s: status %d: %s", label, status, strings.TrimSpace(body))
			failures++
			return
		}
		fmt.Printf("--- %s\n%s\n", label, indentJSON(body))
	}

	check("root", "/")
	check("health", "/health")
	for _, t := range tickers {
		esc := url.PathEscape(t)
		check("fundamentals "+t, "/api/fundamentals/"+esc)
		check("historical "+t, fmt.Sprintf("/api/historical/%s?period=%s&interval=%s", esc, url.QueryEscape(period), url.QueryEscape(interval)))
		check("quote "+t, "/api/quote/"+esc)
	}

	if failures > 0 {
		log.Fatalf("%d check(s) failed", failures)
	}
	log.Println("all checks passed")
}

func get(ctx context.Context, client *http.Client, u string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

func indentJSON(s string) string {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s
	}
	return string(b)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x != 0 {
			return x
		}
	}
	return def
}
