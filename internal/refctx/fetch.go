package refctx

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"karios/internal/backend"
)

// stockData is the fan-in result of one stock reference's three sub-fetches.
// Bars are required; chips and fund-flow stay nil when their fetch failed.
type stockData struct {
	Bars     *backend.StockBarsResponse
	Chips    *backend.StockChipsResponse
	FundFlow *backend.StockFundFlowResponse
}

// fetchStock pulls a stock's bars, chips and fund-flow in parallel. A bars
// failure fails the whole reference. Chips and fund-flow are optional: their
// errors are absorbed and the corresponding field stays nil, which later
// omits that sub-table from the section.
func (a *Aggregator) fetchStock(ctx context.Context, ref StockRef) (*stockData, error) {
	var data stockData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bars, err := a.backend.StockBars(ctx, ref.Symbol, ref.BarsDays)
		if err != nil {
			return fmt.Errorf("bars: %w", err)
		}
		data.Bars = bars
		return nil
	})
	g.Go(func() error {
		chips, err := a.backend.StockChips(ctx, ref.Symbol, ref.ChipsDays)
		if err != nil {
			a.log.Debug("chips fetch skipped", "symbol", ref.Symbol, "error", err)
			return nil
		}
		data.Chips = chips
		return nil
	})
	g.Go(func() error {
		flow, err := a.backend.StockFundFlow(ctx, ref.Symbol, ref.FundFlowDays)
		if err != nil {
			a.log.Debug("fund-flow fetch skipped", "symbol", ref.Symbol, "error", err)
			return nil
		}
		data.FundFlow = flow
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}
