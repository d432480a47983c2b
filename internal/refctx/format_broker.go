package refctx

import "context"

// Fixed column sets for broker tables. Screenshot extraction emits loosely
// typed rows; missing keys render as "-" cells.
var (
	positionColumns = []string{"ticker", "name", "qtyHeld", "qtyAvailable", "costPrice", "price", "marketValue", "pnl"}
	orderColumns    = []string{"ticker", "name", "side", "triggerCondition", "triggerValue", "qty", "status"}
	tradeColumns    = []string{"time", "ticker", "side", "price", "qty"}
)

func mapRowsTable(w *docWriter, rows []any, cols []string, maxRows int) {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		m := asMap(r)
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = field(m, c)
		}
		out = append(out, cells)
	}
	w.table(cols, out, maxRows)
}

func stateRowsTable(w *docWriter, rows []map[string]any, cols []string, maxRows int) {
	out := make([][]string, 0, len(rows))
	for _, m := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = field(m, c)
		}
		out = append(out, cells)
	}
	w.table(cols, out, maxRows)
}

func overviewLines(w *docWriter, m map[string]any) {
	w.kv("currency", field(m, "currency"))
	w.kv("totalAssets", field(m, "totalAssets"))
	w.kv("securitiesValue", field(m, "securitiesValue"))
	w.kv("cashAvailable", field(m, "cashAvailable"))
	w.kv("withdrawable", field(m, "withdrawable"))
}

// sectionBrokerSnapshot renders one extracted broker screenshot. The outer
// reference kind chose this fetcher; the payload's extracted.kind chooses the
// sub-renderer. An extraction kind this build does not know falls back to a
// fenced JSON dump of the extracted data rather than dropping it.
func (a *Aggregator) sectionBrokerSnapshot(ctx context.Context, w *docWriter, r BrokerSnapshotRef) error {
	w.heading(headingWith("Broker snapshot", r.AccountTitle))
	w.kv("broker", r.Broker)
	w.kv("snapshotId", r.SnapshotID)

	snap, err := a.backend.BrokerSnapshot(ctx, r.Broker, r.SnapshotID)
	if err != nil {
		return err
	}
	w.kv("accountId", snap.AccountID)
	w.kv("capturedAt", snap.CapturedAt)

	data := snap.Extracted.Data
	switch snap.Extracted.Kind {
	case "account_overview":
		w.subheading("Account overview")
		overviewLines(w, data)
	case "positions":
		w.subheading("Positions")
		mapRowsTable(w, asSlice(data["positions"]), positionColumns, maxPositionRows)
	case "conditional_orders":
		w.subheading("Conditional orders")
		mapRowsTable(w, asSlice(data["orders"]), orderColumns, maxOrderRows)
	case "trades":
		w.subheading("Trades")
		mapRowsTable(w, asSlice(data["trades"]), tradeColumns, maxTradeRows)
	default:
		w.kv("extractedKind", snap.Extracted.Kind)
		w.fencedJSON(data)
	}
	return nil
}

// sectionBrokerState renders an account's consolidated state: overview
// lines, then positions, conditional orders and trades tables. Empty
// collections omit their sub-heading entirely.
func (a *Aggregator) sectionBrokerState(ctx context.Context, w *docWriter, r BrokerStateRef) error {
	w.heading(headingWith("Broker account state", r.AccountTitle))
	w.kv("broker", r.Broker)
	w.kv("accountId", r.AccountID)

	st, err := a.backend.BrokerState(ctx, r.Broker, r.AccountID)
	if err != nil {
		return err
	}
	w.kv("updatedAt", st.UpdatedAt)
	overviewLines(w, st.Overview)

	if len(st.Positions) > 0 {
		w.subheading("Positions")
		stateRowsTable(w, st.Positions, positionColumns, maxPositionRows)
	}
	if len(st.ConditionalOrders) > 0 {
		w.subheading("Conditional orders")
		stateRowsTable(w, st.ConditionalOrders, orderColumns, maxOrderRows)
	}
	if len(st.Trades) > 0 {
		w.subheading("Trades")
		stateRowsTable(w, st.Trades, tradeColumns, maxTradeRows)
	}
	return nil
}
