package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStockBarsPathAndDecode(t *testing.T) {
	var gotPath, gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDays = r.URL.Query().Get("days")
		json.NewEncoder(w).Encode(StockBarsResponse{
			Symbol: "CN:600000",
			Market: "CN",
			Ticker: "600000",
			Name:   "SPDB",
			Bars: []StockBar{
				{Date: "2025-06-02", Open: "10.1", Close: "10.3", Volume: "123"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, nil)
	resp, err := c.StockBars(context.Background(), "CN:600000", 30)
	if err != nil {
		t.Fatalf("StockBars: %v", err)
	}
	if gotPath != "/market/stocks/CN:600000/bars" {
		t.Errorf("path = %q, want /market/stocks/CN:600000/bars", gotPath)
	}
	if gotDays != "30" {
		t.Errorf("days query = %q, want 30", gotDays)
	}
	if resp.Name != "SPDB" || len(resp.Bars) != 1 || resp.Bars[0].Close != "10.3" {
		t.Errorf("unexpected decode: %+v", resp)
	}
}

func TestStockBarsOmitsNonPositiveDays(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(StockBarsResponse{})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	if _, err := c.StockBars(context.Background(), "CN:600000", 0); err != nil {
		t.Fatalf("StockBars: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestLeaderStocksAlwaysSendsForceFalse(t *testing.T) {
	var gotForce, gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotForce = r.URL.Query().Get("force")
		gotDays = r.URL.Query().Get("days")
		json.NewEncoder(w).Encode(LeaderStocksResponse{})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	if _, err := c.LeaderStocks(context.Background(), 10); err != nil {
		t.Fatalf("LeaderStocks: %v", err)
	}
	if gotForce != "false" {
		t.Errorf("force = %q, want false", gotForce)
	}
	if gotDays != "10" {
		t.Errorf("days = %q, want 10", gotDays)
	}
}

func TestStrategyDailyOmitsEmptyDate(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(StrategyReport{Date: "2025-06-02"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	if _, err := c.StrategyDaily(context.Background(), "acct-1", ""); err != nil {
		t.Fatalf("StrategyDaily: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
	if _, err := c.StrategyDaily(context.Background(), "acct-1", "2025-06-02"); err != nil {
		t.Fatalf("StrategyDaily with date: %v", err)
	}
	if gotQuery != "date=2025-06-02" {
		t.Errorf("query = %q, want date=2025-06-02", gotQuery)
	}
}

func TestNon2xxStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.TVSnapshot(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	want := "GET /integrations/tradingview/snapshots/missing: status 404"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestFailedCallMakesExactlyOneAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	if _, err := c.MarketSentiment(context.Background(), 10, ""); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestBrokerStatePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(BrokerStateResponse{AccountID: "a1", Broker: "pingan"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	resp, err := c.BrokerState(context.Background(), "pingan", "a1")
	if err != nil {
		t.Fatalf("BrokerState: %v", err)
	}
	if gotPath != "/broker/pingan/accounts/a1/state" {
		t.Errorf("path = %q, want /broker/pingan/accounts/a1/state", gotPath)
	}
	if resp.Broker != "pingan" {
		t.Errorf("broker = %q, want pingan", resp.Broker)
	}
}

func TestDecodeErrorMentionsPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.MarketSentiment(context.Background(), 5, "2025-06-02")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "GET /market/cn/sentiment: decoding response") {
		t.Errorf("error = %q, want decode error mentioning path", err.Error())
	}
}
