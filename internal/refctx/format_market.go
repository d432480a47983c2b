package refctx

import (
	"context"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// strategyReport
// ---------------------------------------------------------------------------

// sectionStrategy renders a daily strategy report from its structured
// fields. The payload also carries the model's raw markdown body; that is
// deliberately not inlined, since its headings would corrupt the document's
// one-heading-per-reference shape.
func (a *Aggregator) sectionStrategy(ctx context.Context, w *docWriter, r StrategyReportRef) error {
	label := strings.TrimSpace(r.AccountTitle + " " + r.Date)
	w.heading(headingWith("Strategy report", label))
	w.kv("accountId", r.AccountID)
	w.kv("date", r.Date)
	w.kv("createdAt", r.CreatedAt)

	rep, err := a.backend.StrategyDaily(ctx, r.AccountID, r.Date)
	if err != nil {
		return err
	}
	if r.Date == "" {
		w.kv("date", rep.Date)
	}
	if r.CreatedAt == "" {
		w.kv("createdAt", rep.CreatedAt)
	}
	w.kv("model", rep.Model)
	if rep.Leader.Symbol != "" {
		leader := rep.Leader.Symbol
		if rep.Leader.Reason != "" {
			leader += " (" + rep.Leader.Reason + ")"
		}
		w.kv("leader", leader)
	}
	w.kv("riskNotes", strings.Join(rep.RiskNotes, "; "))

	if len(rep.Candidates) > 0 {
		w.subheading("Candidates")
		rows := make([][]string, 0, len(rep.Candidates))
		for _, c := range rep.Candidates {
			rows = append(rows, []string{
				c.Ticker, c.Name, formatFloat(c.Score), strconv.Itoa(c.Rank), c.Why,
			})
		}
		w.table([]string{"ticker", "name", "score", "rank", "why"}, rows, 0)
	}

	for _, rec := range rep.Recommendations {
		name := rec.Name
		if name == "" {
			name = rec.Ticker
		}
		w.subheading(symbolLabel(name, rec.Symbol))
		w.kv("thesis", rec.Thesis)
		w.kv("positionSizing", rec.PositionSizing)
		w.kv("support", strings.Join(rec.Levels.Support, "; "))
		w.kv("resistance", strings.Join(rec.Levels.Resistance, "; "))
		w.kv("invalidations", strings.Join(rec.Levels.Invalidations, "; "))
		w.kv("riskNotes", strings.Join(rec.RiskNotes, "; "))
		if len(rec.Orders) > 0 {
			rows := make([][]string, 0, len(rec.Orders))
			for _, o := range rec.Orders {
				rows = append(rows, []string{o.Kind, o.Side, o.Trigger, o.Qty, o.TimeInForce, o.Notes})
			}
			w.table([]string{"kind", "side", "trigger", "qty", "timeInForce", "notes"}, rows, 0)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// industryFundFlow
// ---------------------------------------------------------------------------

func (a *Aggregator) sectionIndustryFlow(ctx context.Context, w *docWriter, r IndustryFlowRef) error {
	title := r.Title
	if title == "" {
		title = "Industry fund flow"
	}
	w.heading(title)
	w.kv("asOfDate", r.AsOfDate)
	kvInt(w, "days", r.Days)
	kvInt(w, "topN", r.TopN)
	w.kv("metric", r.Metric)
	if r.Metric == "sum" {
		kvInt(w, "windowDays", r.WindowDays)
	}
	w.kv("direction", r.Direction)
	w.kv("view", r.View)

	resp, err := a.backend.IndustryFundFlow(ctx, r.Days, r.TopN, r.AsOfDate)
	if err != nil {
		return err
	}
	if r.AsOfDate == "" {
		w.kv("asOfDate", resp.AsOfDate)
	}

	if r.View == "dailyTopByDate" {
		kept, collapsed := collapseDates(dailyTopByDate(resp, r.Days, r.TopN))
		rows := make([][]string, 0, len(kept))
		for _, d := range kept {
			rows = append(rows, []string{d.Date, strings.Join(d.Names, ", ")})
		}
		w.table([]string{"date", "top industries"}, rows, 0)
		if collapsed > 0 {
			w.kv("note", collapseNote(collapsed))
		}
		return nil
	}

	scores := rankIndustries(resp.Top, r.Metric, r.WindowDays, r.Direction, r.TopN)
	rows := make([][]string, 0, len(scores))
	for i, s := range scores {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, formatAmount(s.Score)})
	}
	w.table([]string{"rank", "industry", "score"}, rows, 0)
	return nil
}

// ---------------------------------------------------------------------------
// leaderStocks
// ---------------------------------------------------------------------------

func (a *Aggregator) sectionLeaders(ctx context.Context, w *docWriter, r LeaderStocksRef) error {
	w.heading("Leader stocks")
	kvInt(w, "days", r.Days)

	resp, err := a.backend.LeaderStocks(ctx, r.Days)
	if err != nil {
		return err
	}
	if len(resp.Leaders) == 0 {
		w.kv("leaders", "none")
		return nil
	}
	for _, l := range resp.Leaders {
		w.subheading(symbolLabel(l.Name, l.Symbol))
		w.kv("date", l.Date)
		if l.Score != 0 {
			w.kv("score", formatFloat(l.Score))
		}
		if l.Probability != 0 {
			w.kv("probability", formatFloat(l.Probability))
		}
		w.kv("reason", l.Reason)
		w.kv("why", strings.Join(l.WhyBullets, "; "))
		if l.BuyZone != nil {
			zone := formatFloat(l.BuyZone.Low) + " - " + formatFloat(l.BuyZone.High)
			if l.BuyZone.Note != "" {
				zone += " (" + l.BuyZone.Note + ")"
			}
			w.kv("buyZone", zone)
		}
		if len(l.Triggers) > 0 {
			parts := make([]string, 0, len(l.Triggers))
			for _, t := range l.Triggers {
				part := strings.TrimSpace(strings.Join([]string{
					field(t, "kind"), field(t, "condition"), field(t, "value"),
				}, " "))
				if part != "" {
					parts = append(parts, part)
				}
			}
			w.kv("triggers", strings.Join(parts, "; "))
		}
		w.kv("invalidation", l.Invalidation)
		if l.TargetPrice != nil {
			target := formatFloat(l.TargetPrice.Primary)
			if l.TargetPrice.Stretch != 0 {
				target += " (stretch " + formatFloat(l.TargetPrice.Stretch) + ")"
			}
			w.kv("targetPrice", target)
		}
		kvInt(w, "expectedDurationDays", l.ExpectedDurationDays)
		w.kv("risks", strings.Join(l.Risks, "; "))
	}
	return nil
}

// ---------------------------------------------------------------------------
// marketSentiment
// ---------------------------------------------------------------------------

var sentimentColumns = []string{"date", "up", "down", "flat", "ratio", "turnover", "premium", "failedRate", "risk"}

func (a *Aggregator) sectionSentiment(ctx context.Context, w *docWriter, r SentimentRef) error {
	w.heading("Market sentiment")
	kvInt(w, "days", r.Days)
	w.kv("asOfDate", r.AsOfDate)

	resp, err := a.backend.MarketSentiment(ctx, r.Days, r.AsOfDate)
	if err != nil {
		return err
	}
	if r.AsOfDate == "" {
		w.kv("asOfDate", resp.AsOfDate)
	}

	rows := make([][]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		rows = append(rows, []string{
			it.Date,
			formatInt(it.UpCount),
			formatInt(it.DownCount),
			formatInt(it.FlatCount),
			formatFloat(it.UpDownRatio),
			formatAmount(it.MarketTurnoverCny),
			formatPercent(it.YesterdayLimitUpPremium),
			formatPercent(it.FailedLimitUpRate),
			it.RiskMode,
		})
	}
	w.table(sentimentColumns, rows, 0)

	// Items arrive oldest first; the latest day's rules are the active ones.
	if len(resp.Items) > 0 {
		last := resp.Items[len(resp.Items)-1]
		w.kv("rules", strings.Join(last.Rules, "; "))
	}
	return nil
}
