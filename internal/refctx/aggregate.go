// Package refctx builds reference-context documents: it turns an ordered,
// heterogeneous list of chat references (a screener snapshot, a stock, a
// broker account, a report, a journal entry) into one deterministic markdown
// document suitable for injection into a model prompt.
//
// The contract, in order of importance: one "## " section per reference, in
// input order; a reference whose fetch fails yields a failure stub, never a
// missing or corrupt section; and given identical backend state, two builds
// of the same reference list produce byte-identical documents. There is no
// retrying, no caching and no cross-reference memoization.
package refctx

import (
	"context"
	"log/slog"
	"strings"

	"karios/internal/backend"
)

// Table row caps. They bound prompt size per kind; nothing else about the
// payload is truncated.
const (
	maxTVRows       = 20
	maxPositionRows = 30
	maxOrderRows    = 30
	maxTradeRows    = 60
)

const documentTitle = "Reference Context"

// Aggregator builds documents against one quant-service client. It holds no
// per-call state, so one instance serves concurrent Build calls.
type Aggregator struct {
	backend *backend.Client
	log     *slog.Logger
}

func New(b *backend.Client, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{backend: b, log: log}
}

// BuildResult summarizes one aggregation run.
type BuildResult struct {
	Document string `json:"document"`
	Sections int    `json:"sections"`
	Failed   int    `json:"failed"`
}

// Build renders refs into one markdown document. References are processed
// strictly sequentially: reference i+1's fetches do not start until
// reference i's section is fully written, which keeps section order equal to
// input order and bounds outstanding backend connections to one reference's
// fan-out at a time. Build never returns an error; each failed reference
// becomes a stub section and increments Failed.
func (a *Aggregator) Build(ctx context.Context, refs []Reference) BuildResult {
	w := &docWriter{}
	w.title(documentTitle)
	res := BuildResult{Sections: len(refs)}
	for i, ref := range refs {
		if err := a.buildSection(ctx, w, ref); err != nil {
			res.Failed++
			w.kv("status", "failed to load ("+err.Error()+")")
			a.log.Warn("reference failed", "index", i, "kind", ref.Kind(), "error", err)
		}
		w.blank()
	}
	res.Document = strings.TrimRight(w.String(), "\n") + "\n"
	return res
}

// buildSection writes one reference's section. Fetch-backed arms write the
// heading and identifying key/value lines before any fetch, so an error
// return leaves a stub that Build completes with a status line.
func (a *Aggregator) buildSection(ctx context.Context, w *docWriter, ref Reference) error {
	switch r := ref.(type) {
	case TVRef:
		return a.sectionTV(ctx, w, r)
	case StockRef:
		return a.sectionStock(ctx, w, r)
	case BrokerSnapshotRef:
		return a.sectionBrokerSnapshot(ctx, w, r)
	case BrokerStateRef:
		return a.sectionBrokerState(ctx, w, r)
	case StrategyReportRef:
		return a.sectionStrategy(ctx, w, r)
	case IndustryFlowRef:
		return a.sectionIndustryFlow(ctx, w, r)
	case LeaderStocksRef:
		return a.sectionLeaders(ctx, w, r)
	case SentimentRef:
		return a.sectionSentiment(ctx, w, r)
	case WatchlistStockRef:
		sectionWatchlistStock(w, r)
	case WatchlistTableRef:
		sectionWatchlistTable(w, r)
	case JournalRef:
		sectionJournal(w, r)
	default:
		sectionUnknown(w, ref)
	}
	return nil
}
