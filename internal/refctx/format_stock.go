package refctx

import "context"

var (
	barColumns      = []string{"date", "open", "high", "low", "close", "volume", "amount"}
	chipsColumns    = []string{"date", "profitRatio", "avgCost", "cost90Low", "cost90High", "cost90Conc", "cost70Low", "cost70High", "cost70Conc"}
	fundFlowColumns = []string{"date", "close", "changePct", "mainNet", "mainPct", "superNet", "largeNet", "mediumNet", "smallNet"}
)

// sectionStock renders one stock's market-data section. Bars always render
// when the fetch succeeded; the chips and fund-flow sub-tables appear only
// when their optional fetch returned data, never as empty placeholders.
func (a *Aggregator) sectionStock(ctx context.Context, w *docWriter, r StockRef) error {
	label := r.Name
	if label == "" {
		label = r.Ticker
	}
	w.heading(headingWith("Stock", symbolLabel(label, r.Symbol)))
	w.kv("symbol", r.Symbol)
	w.kv("ticker", r.Ticker)
	w.kv("capturedAt", r.CapturedAt)
	kvInt(w, "barsDays", r.BarsDays)
	kvInt(w, "chipsDays", r.ChipsDays)
	kvInt(w, "fundFlowDays", r.FundFlowDays)

	data, err := a.fetchStock(ctx, r)
	if err != nil {
		return err
	}
	w.kv("market", data.Bars.Market)
	w.kv("currency", data.Bars.Currency)

	w.subheading("Bars")
	barRows := make([][]string, 0, len(data.Bars.Bars))
	for _, b := range data.Bars.Bars {
		barRows = append(barRows, []string{b.Date, b.Open, b.High, b.Low, b.Close, b.Volume, b.Amount})
	}
	w.table(barColumns, barRows, 0)

	if data.Chips != nil && len(data.Chips.Items) > 0 {
		w.subheading("Chips")
		rows := make([][]string, 0, len(data.Chips.Items))
		for _, c := range data.Chips.Items {
			rows = append(rows, []string{
				c.Date, c.ProfitRatio, c.AvgCost,
				c.Cost90Low, c.Cost90High, c.Cost90Conc,
				c.Cost70Low, c.Cost70High, c.Cost70Conc,
			})
		}
		w.table(chipsColumns, rows, 0)
	}

	if data.FundFlow != nil && len(data.FundFlow.Items) > 0 {
		w.subheading("Fund flow")
		rows := make([][]string, 0, len(data.FundFlow.Items))
		for _, f := range data.FundFlow.Items {
			rows = append(rows, []string{
				f.Date, f.Close, f.ChangePct,
				f.MainNetAmount, f.MainNetRatio,
				f.SuperNetAmount, f.LargeNetAmount, f.MediumNetAmount, f.SmallNetAmount,
			})
		}
		w.table(fundFlowColumns, rows, 0)
	}
	return nil
}
