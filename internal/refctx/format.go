package refctx

import (
	"context"
	"strconv"
	"strings"
)

// headingWith joins a fixed prefix with an optional display name.
func headingWith(prefix, name string) string {
	if name == "" {
		return prefix
	}
	return prefix + ": " + name
}

// symbolLabel renders "Name (SYMBOL)", degrading to whichever part exists.
func symbolLabel(name, symbol string) string {
	switch {
	case name != "" && symbol != "" && name != symbol:
		return name + " (" + symbol + ")"
	case name != "":
		return name
	default:
		return symbol
	}
}

// kvInt writes an integer key/value line, treating zero as absent.
func kvInt(w *docWriter, key string, v int) {
	if v == 0 {
		return
	}
	w.kv(key, strconv.Itoa(v))
}

// ---------------------------------------------------------------------------
// tv
// ---------------------------------------------------------------------------

func (a *Aggregator) sectionTV(ctx context.Context, w *docWriter, r TVRef) error {
	w.heading(headingWith("TradingView snapshot", r.ScreenerName))
	w.kv("snapshotId", r.SnapshotID)
	w.kv("capturedAt", r.CapturedAt)

	snap, err := a.backend.TVSnapshot(ctx, r.SnapshotID)
	if err != nil {
		return err
	}
	w.kv("screenTitle", snap.ScreenTitle)
	w.kv("filters", strings.Join(snap.Filters, "; "))
	w.kv("url", snap.URL)
	kvInt(w, "rowCount", snap.RowCount)

	cols := pickColumns(snap.Headers)
	rows := make([][]string, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = row[c]
		}
		rows = append(rows, cells)
	}
	w.table(cols, rows, maxTVRows)
	return nil
}

// ---------------------------------------------------------------------------
// watchlistStock / watchlistTable / journal / unknown (no fetch)
// ---------------------------------------------------------------------------

func sectionWatchlistStock(w *docWriter, r WatchlistStockRef) {
	w.heading(headingWith("Watchlist stock", symbolLabel(r.Name, r.Symbol)))
	w.kv("symbol", r.Symbol)
	w.kv("capturedAt", r.CapturedAt)
	w.kv("asOfDate", r.AsOfDate)
	if r.Close != nil {
		w.kv("close", formatFloat(*r.Close))
	}
	if r.TrendOK != nil {
		w.kv("trendOk", formatBool(*r.TrendOK))
	}
	if r.Score != nil {
		w.kv("score", formatFloat(*r.Score))
	}
	if r.StopLossPrice != nil {
		w.kv("stopLossPrice", formatFloat(*r.StopLossPrice))
	}
	w.kv("buyMode", r.BuyMode)
	w.kv("buyAction", r.BuyAction)
	w.kv("buyZone", r.BuyZone)
	w.kv("buyWhy", r.BuyWhy)
}

var watchlistColumns = []string{"symbol", "name", "asOfDate", "close", "trendOk", "score", "stopLoss", "buyAction"}

func watchlistCells(row WatchlistRow) []string {
	cells := []string{row.Symbol, row.Name, row.AsOfDate, "", "", "", "", row.BuyAction}
	if row.Close != nil {
		cells[3] = formatFloat(*row.Close)
	}
	if row.TrendOK != nil {
		cells[4] = formatBool(*row.TrendOK)
	}
	if row.Score != nil {
		cells[5] = formatFloat(*row.Score)
	}
	if row.StopLossPrice != nil {
		cells[6] = formatFloat(*row.StopLossPrice)
	}
	return cells
}

func sectionWatchlistTable(w *docWriter, r WatchlistTableRef) {
	w.heading("Watchlist snapshot")
	w.kv("capturedAt", r.CapturedAt)
	kvInt(w, "total", r.Total)

	rows := make([][]string, 0, len(r.Items))
	for _, item := range r.Items {
		rows = append(rows, watchlistCells(item))
	}
	w.table(watchlistColumns, rows, 0)
}

func sectionJournal(w *docWriter, r JournalRef) {
	w.heading(headingWith("Journal", r.Title))
	w.kv("journalId", r.JournalID)
	w.kv("capturedAt", r.CapturedAt)
	w.blockquote(r.Content)
}

func sectionUnknown(w *docWriter, ref Reference) {
	w.heading("Unknown reference")
	w.kv("kind", ref.Kind())
	w.kv("status", "unsupported reference kind")
}
