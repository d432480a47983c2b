package refctx

import (
	"encoding/json"
	"fmt"
)

// Reference kinds understood by the aggregator. Anything else parses into an
// UnknownRef and renders as a minimal stub section.
const (
	KindTV             = "tv"
	KindStock          = "stock"
	KindBroker         = "broker"
	KindBrokerState    = "brokerState"
	KindStrategyReport = "strategyReport"
	KindIndustryFlow   = "industryFundFlow"
	KindLeaderStocks   = "leaderStocks"
	KindSentiment      = "marketSentiment"
	KindWatchlistStock = "watchlistStock"
	KindWatchlistTable = "watchlistTable"
	KindJournal        = "journal"
)

// Reference is one item the user pinned into a chat: a pointer to a snapshot,
// a stock, a report, or a pre-resolved blob of content. References are plain
// immutable data; the aggregator reads them and never writes them back.
type Reference interface {
	Kind() string
}

// TVRef points at a stored TradingView screener snapshot.
type TVRef struct {
	SnapshotID   string `json:"snapshotId"`
	ScreenerName string `json:"screenerName"`
	CapturedAt   string `json:"capturedAt"`
}

func (TVRef) Kind() string { return KindTV }

// StockRef points at a stock's market-data history. The three day windows
// select how much of each sub-resource to pull; zero means service default.
type StockRef struct {
	Symbol       string `json:"symbol"`
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	CapturedAt   string `json:"capturedAt"`
	BarsDays     int    `json:"barsDays"`
	ChipsDays    int    `json:"chipsDays"`
	FundFlowDays int    `json:"fundFlowDays"`
}

func (StockRef) Kind() string { return KindStock }

// BrokerSnapshotRef points at one extracted broker screenshot.
type BrokerSnapshotRef struct {
	Broker       string `json:"broker"`
	SnapshotID   string `json:"snapshotId"`
	AccountTitle string `json:"accountTitle"`
}

func (BrokerSnapshotRef) Kind() string { return KindBroker }

// BrokerStateRef points at a broker account's consolidated live state.
type BrokerStateRef struct {
	Broker       string `json:"broker"`
	AccountID    string `json:"accountId"`
	AccountTitle string `json:"accountTitle"`
}

func (BrokerStateRef) Kind() string { return KindBrokerState }

// StrategyReportRef points at an account's daily strategy report.
type StrategyReportRef struct {
	AccountID    string `json:"accountId"`
	Date         string `json:"date"`
	AccountTitle string `json:"accountTitle"`
	CreatedAt    string `json:"createdAt"`
}

func (StrategyReportRef) Kind() string { return KindStrategyReport }

// IndustryFlowRef points at the CN industry fund-flow ranking, with the
// ranking parameters chosen by the user when the reference was added.
type IndustryFlowRef struct {
	AsOfDate   string `json:"asOfDate"`
	Days       int    `json:"days"`
	TopN       int    `json:"topN"`
	Metric     string `json:"metric"`     // netInflow | sum
	WindowDays int    `json:"windowDays"` // only used when Metric == "sum"
	Direction  string `json:"direction"`  // in | out
	View       string `json:"view"`       // rankedList | dailyTopByDate
	Title      string `json:"title"`
}

func (IndustryFlowRef) Kind() string { return KindIndustryFlow }

// LeaderStocksRef points at recent leader-stock picks.
type LeaderStocksRef struct {
	Days int `json:"days"`
}

func (LeaderStocksRef) Kind() string { return KindLeaderStocks }

// SentimentRef points at the CN market sentiment series.
type SentimentRef struct {
	Days     int    `json:"days"`
	AsOfDate string `json:"asOfDate"`
}

func (SentimentRef) Kind() string { return KindSentiment }

// WatchlistRow is one watchlist entry as materialized by the UI. Optional
// fields are pointers so absent and zero stay distinguishable.
type WatchlistRow struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	AsOfDate      string   `json:"asOfDate"`
	Close         *float64 `json:"close"`
	TrendOK       *bool    `json:"trendOk"`
	Score         *float64 `json:"score"`
	StopLossPrice *float64 `json:"stopLossPrice"`
	BuyMode       string   `json:"buyMode"`
	BuyAction     string   `json:"buyAction"`
	BuyZone       string   `json:"buyZone"`
	BuyWhy        string   `json:"buyWhy"`
}

// WatchlistStockRef carries one watchlist row verbatim; no fetch happens.
type WatchlistStockRef struct {
	WatchlistRow
	CapturedAt string `json:"capturedAt"`
}

func (WatchlistStockRef) Kind() string { return KindWatchlistStock }

// WatchlistTableRef carries a full watchlist snapshot verbatim; no fetch.
type WatchlistTableRef struct {
	CapturedAt string         `json:"capturedAt"`
	Total      int            `json:"total"`
	Items      []WatchlistRow `json:"items"`
}

func (WatchlistTableRef) Kind() string { return KindWatchlistTable }

// JournalRef carries a free-text journal entry, already resolved.
type JournalRef struct {
	JournalID  string `json:"journalId"`
	Title      string `json:"title"`
	CapturedAt string `json:"capturedAt"`
	Content    string `json:"content"`
}

func (JournalRef) Kind() string { return KindJournal }

// UnknownRef stands in for any kind this build does not understand. It keeps
// the raw kind string so the stub section can still identify itself.
type UnknownRef struct {
	RawKind string
}

func (r UnknownRef) Kind() string { return r.RawKind }

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseReferences decodes a JSON array of reference objects, dispatching on
// each object's "kind" field. Unrecognized kinds decode into UnknownRef
// rather than failing, so one stray item cannot reject a whole request.
func ParseReferences(data []byte) ([]Reference, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing references: %w", err)
	}
	refs := make([]Reference, 0, len(raws))
	for i, raw := range raws {
		ref, err := parseReference(raw)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseReference(raw json.RawMessage) (Reference, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch probe.Kind {
	case KindTV:
		var r TVRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindStock:
		var r StockRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindBroker:
		var r BrokerSnapshotRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindBrokerState:
		var r BrokerStateRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindStrategyReport:
		var r StrategyReportRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindIndustryFlow:
		var r IndustryFlowRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindLeaderStocks:
		var r LeaderStocksRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindSentiment:
		var r SentimentRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindWatchlistStock:
		var r WatchlistStockRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindWatchlistTable:
		var r WatchlistTableRef
		err := json.Unmarshal(raw, &r)
		return r, err
	case KindJournal:
		var r JournalRef
		err := json.Unmarshal(raw, &r)
		return r, err
	default:
		return UnknownRef{RawKind: probe.Kind}, nil
	}
}
