package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rmoran/folio-data/internal/config"
)

func TestClient_GetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/quotes/AAPL" {
			t.Errorf("path = %s, want /api/v1/quotes/AAPL", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quote":{
			"symbol":"AAPL",
			"name":"Apple Inc.",
			"market_open":true,
			"last_dollars":"189.43",
			"bid_dollars":"189.42",
			"ask_dollars":"189.45",
			"prev_close_dollars":"188.00",
			"volume":52100000,
			"updated_time":"2024-01-15T12:00:00Z"
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("Symbol = %s, want AAPL", quote.Symbol)
	}
	if quote.Last != 1894300 {
		t.Errorf("Last = %d, want 1894300", quote.Last)
	}
	if quote.PrevClose != 1880000 {
		t.Errorf("PrevClose = %d, want 1880000", quote.PrevClose)
	}
	if quote.Volume != 52100000 {
		t.Errorf("Volume = %d, want 52100000", quote.Volume)
	}
	if !quote.MarketOpen {
		t.Error("MarketOpen = false, want true")
	}
}

func TestClient_GetQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "AAPL,MSFT" {
			t.Errorf("symbols = %q, want AAPL,MSFT", got)
		}
		w.Write([]byte(`{"quotes":[
			{"symbol":"AAPL","last_dollars":"189.43"},
			{"symbol":"MSFT","last_dollars":"402.10"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	quotes, err := client.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("GetQuotes failed: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("len(quotes) = %d, want 2", len(quotes))
	}
	if quotes[1].Symbol != "MSFT" || quotes[1].Last != 4021000 {
		t.Errorf("quotes[1] = %+v, want MSFT at 4021000", quotes[1])
	}
}

func TestClient_GetAllMarkets_Pagination(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt64(&calls, 1) {
		case 1:
			if got := r.URL.Query().Get("cursor"); got != "" {
				t.Errorf("first page cursor = %q, want empty", got)
			}
			w.Write([]byte(`{"markets":[{"symbol":"AAPL"},{"symbol":"MSFT"}],"cursor":"page2"}`))
		default:
			if got := r.URL.Query().Get("cursor"); got != "page2" {
				t.Errorf("second page cursor = %q, want page2", got)
			}
			w.Write([]byte(`{"markets":[{"symbol":"GOOG"}],"cursor":""}`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	markets, err := client.GetAllMarkets(context.Background(), GetMarketsOptions{Limit: 2})
	if err != nil {
		t.Fatalf("GetAllMarkets failed: %v", err)
	}

	if len(markets) != 3 {
		t.Fatalf("len(markets) = %d, want 3", len(markets))
	}
	if markets[2].Symbol != "GOOG" {
		t.Errorf("markets[2].Symbol = %s, want GOOG", markets[2].Symbol)
	}
}

func TestClient_GetPositions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/portfolio/positions" {
			t.Errorf("path = %s, want /api/v1/portfolio/positions", r.URL.Path)
		}
		w.Write([]byte(`{"positions":[
			{"symbol":"AAPL","quantity":10,"avg_cost_dollars":"180.00","updated_time":"2024-01-15T12:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	positions, err := client.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("GetPositions failed: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if positions[0].AvgCost != 1800000 {
		t.Errorf("AvgCost = %d, want 1800000", positions[0].AvgCost)
	}
}

func TestClient_RetryOn500(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"quote":{"symbol":"AAPL","last_dollars":"189.43"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(3, time.Millisecond))

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if quote.Symbol != "AAPL" {
		t.Errorf("Symbol = %s, want AAPL", quote.Symbol)
	}
	if n := atomic.LoadInt64(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestClient_NoRetryOn404(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(3, time.Millisecond))

	_, err := client.GetQuote(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("GetQuote expected error")
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 404)", n)
	}
}

func TestClient_GetNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/news" {
			t.Errorf("path = %s, want /api/v1/news", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("symbols = %q, want AAPL", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		w.Write([]byte(`{"items":[{
			"id":"n-1",
			"headline":"Apple ships results",
			"source":"Newswire",
			"url":"https://example.com/n-1",
			"symbols":["AAPL"],
			"published_time":"2024-01-15T12:00:00Z"
		}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	items, err := client.GetNews(context.Background(), []string{"AAPL"}, 5)
	if err != nil {
		t.Fatalf("GetNews failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Headline != "Apple ships results" {
		t.Errorf("Headline = %q", items[0].Headline)
	}
	if items[0].PublishedAt != 1705320000000000 {
		t.Errorf("PublishedAt = %d, want 1705320000000000", items[0].PublishedAt)
	}
}

func TestClient_GetPortfolioHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/portfolio/history" {
			t.Errorf("path = %s, want /api/v1/portfolio/history", r.URL.Path)
		}
		w.Write([]byte(`{"points":[
			{"time":"2024-01-15T12:00:00Z","value_dollars":"10250.00"},
			{"time":"2024-01-16T12:00:00Z","value_dollars":"10300.50"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	points, err := client.GetPortfolioHistory(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolioHistory failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].TS != 1705320000000000 {
		t.Errorf("TS = %d, want 1705320000000000", points[0].TS)
	}
	if points[1].Value != 103005000 {
		t.Errorf("Value = %d, want 103005000", points[1].Value)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"symbol_not_found","message":"unknown symbol NOPE"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.GetQuote(context.Background(), "NOPE")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Code != "symbol_not_found" {
		t.Errorf("Code = %q, want symbol_not_found", apiErr.Code)
	}
	if apiErr.Message != "unknown symbol NOPE" {
		t.Errorf("Message = %q, want envelope message", apiErr.Message)
	}
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("gateway exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(0, 0))

	_, err := client.GetQuote(context.Background(), "AAPL")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "Internal Server Error" {
		t.Errorf("Message = %q, want status text fallback", apiErr.Message)
	}
	if string(apiErr.Body) != "gateway exploded" {
		t.Errorf("Body = %q, want raw body preserved", apiErr.Body)
	}
}

func TestClient_RetryZeroBackoff(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(2, 0))

	_, err := client.GetQuote(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("GetQuote expected error")
	}
	if n := atomic.LoadInt64(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestNewClientFromConfig(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer cfg-key" {
			t.Errorf("Authorization = %q, want config api key", got)
		}
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"quote":{"symbol":"AAPL","last_dollars":"189.43"}}`))
	}))
	defer server.Close()

	client := NewClientFromConfig(config.APIConfig{
		BaseURL:    server.URL,
		APIKey:     "cfg-key",
		Timeout:    time.Second,
		MaxRetries: 2,
	}, WithRetries(2, time.Millisecond))

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if quote.Symbol != "AAPL" {
		t.Errorf("Symbol = %s, want AAPL", quote.Symbol)
	}
	if n := atomic.LoadInt64(&calls); n != 3 {
		t.Errorf("calls = %d, want 3 (config retries honored)", n)
	}
}

func TestAPIError_IsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{500, true},
		{503, true},
		{429, true},
		{404, false},
		{401, false},
		{400, false},
	}

	for _, tt := range tests {
		e := &APIError{StatusCode: tt.status}
		if got := e.IsRetryable(); got != tt.want {
			t.Errorf("IsRetryable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
