package refctx

import (
	"testing"
)

func TestParseReferencesKindDispatch(t *testing.T) {
	data := []byte(`[
		{"kind": "tv", "snapshotId": "s1", "screenerName": "Falcon"},
		{"kind": "stock", "symbol": "CN:600000", "ticker": "600000", "barsDays": 5},
		{"kind": "broker", "broker": "pingan", "snapshotId": "b1"},
		{"kind": "brokerState", "broker": "pingan", "accountId": "a1"},
		{"kind": "strategyReport", "accountId": "a1", "date": "2025-06-02"},
		{"kind": "industryFundFlow", "days": 10, "topN": 5, "metric": "sum", "windowDays": 5, "direction": "in", "view": "rankedList"},
		{"kind": "leaderStocks", "days": 10},
		{"kind": "marketSentiment", "days": 10},
		{"kind": "watchlistStock", "symbol": "CN:600000", "close": 10.5, "trendOk": true},
		{"kind": "watchlistTable", "total": 2, "items": [{"symbol": "CN:600000"}]},
		{"kind": "journal", "journalId": "j1", "content": "note"}
	]`)
	refs, err := ParseReferences(data)
	if err != nil {
		t.Fatalf("ParseReferences: %v", err)
	}
	if len(refs) != 11 {
		t.Fatalf("len = %d, want 11", len(refs))
	}

	tv, ok := refs[0].(TVRef)
	if !ok || tv.SnapshotID != "s1" || tv.ScreenerName != "Falcon" {
		t.Errorf("refs[0] = %#v, want TVRef s1/Falcon", refs[0])
	}
	stock, ok := refs[1].(StockRef)
	if !ok || stock.Symbol != "CN:600000" || stock.BarsDays != 5 {
		t.Errorf("refs[1] = %#v, want StockRef", refs[1])
	}
	if _, ok := refs[2].(BrokerSnapshotRef); !ok {
		t.Errorf("refs[2] = %#v, want BrokerSnapshotRef", refs[2])
	}
	if _, ok := refs[3].(BrokerStateRef); !ok {
		t.Errorf("refs[3] = %#v, want BrokerStateRef", refs[3])
	}
	if _, ok := refs[4].(StrategyReportRef); !ok {
		t.Errorf("refs[4] = %#v, want StrategyReportRef", refs[4])
	}
	ind, ok := refs[5].(IndustryFlowRef)
	if !ok || ind.Metric != "sum" || ind.WindowDays != 5 {
		t.Errorf("refs[5] = %#v, want IndustryFlowRef sum/5", refs[5])
	}
	if _, ok := refs[6].(LeaderStocksRef); !ok {
		t.Errorf("refs[6] = %#v, want LeaderStocksRef", refs[6])
	}
	if _, ok := refs[7].(SentimentRef); !ok {
		t.Errorf("refs[7] = %#v, want SentimentRef", refs[7])
	}
	ws, ok := refs[8].(WatchlistStockRef)
	if !ok {
		t.Fatalf("refs[8] = %#v, want WatchlistStockRef", refs[8])
	}
	if ws.Close == nil || *ws.Close != 10.5 {
		t.Errorf("watchlist close = %v, want 10.5", ws.Close)
	}
	if ws.TrendOK == nil || !*ws.TrendOK {
		t.Errorf("watchlist trendOk = %v, want true", ws.TrendOK)
	}
	wt, ok := refs[9].(WatchlistTableRef)
	if !ok || wt.Total != 2 || len(wt.Items) != 1 {
		t.Errorf("refs[9] = %#v, want WatchlistTableRef with 1 item", refs[9])
	}
	if _, ok := refs[10].(JournalRef); !ok {
		t.Errorf("refs[10] = %#v, want JournalRef", refs[10])
	}
}

func TestParseReferencesUnknownKind(t *testing.T) {
	refs, err := ParseReferences([]byte(`[{"kind": "hologram", "x": 1}]`))
	if err != nil {
		t.Fatalf("ParseReferences: %v", err)
	}
	u, ok := refs[0].(UnknownRef)
	if !ok {
		t.Fatalf("refs[0] = %#v, want UnknownRef", refs[0])
	}
	if u.Kind() != "hologram" {
		t.Errorf("Kind() = %q, want hologram", u.Kind())
	}
}

func TestParseReferencesMissingKind(t *testing.T) {
	refs, err := ParseReferences([]byte(`[{"symbol": "CN:600000"}]`))
	if err != nil {
		t.Fatalf("ParseReferences: %v", err)
	}
	if _, ok := refs[0].(UnknownRef); !ok {
		t.Errorf("refs[0] = %#v, want UnknownRef for missing kind", refs[0])
	}
}

func TestParseReferencesMalformed(t *testing.T) {
	if _, err := ParseReferences([]byte(`{"kind": "tv"}`)); err == nil {
		t.Error("expected error for non-array input")
	}
	if _, err := ParseReferences([]byte(`[{"kind": 5}]`)); err == nil {
		t.Error("expected error for non-string kind")
	}
}

func TestParseReferencesEmpty(t *testing.T) {
	refs, err := ParseReferences([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseReferences: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("len = %d, want 0", len(refs))
	}
}
