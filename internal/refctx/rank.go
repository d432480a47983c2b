package refctx

import (
	"fmt"
	"sort"
	"strings"

	"karios/internal/backend"
)

// Window clamps for the industry fund-flow views. User-supplied reference
// parameters pass through these before touching any series.
const (
	minWindowDays = 1
	maxWindowDays = 30
	minTopPerDate = 1
	maxTopPerDate = 20
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sumLastN sums the trailing n points of a series. An empty series or a
// non-positive n sums to zero.
func sumLastN(series []backend.IndustryFlowPoint, n int) float64 {
	if n <= 0 || len(series) == 0 {
		return 0
	}
	if n > len(series) {
		n = len(series)
	}
	var sum float64
	for _, p := range series[len(series)-n:] {
		sum += p.NetInflow
	}
	return sum
}

type industryScore struct {
	Name  string
	Code  string
	Score float64
}

// rankIndustries scores every industry row and returns the first topN in
// direction order: "in" descending (strongest inflow first), "out"
// ascending. The sort is stable, so score ties keep the service's order.
// metric "sum" scores by sumLastN over windowDays (clamped to [1,30]);
// anything else scores by the latest-day net inflow.
func rankIndustries(rows []backend.IndustryFlowRow, metric string, windowDays int, direction string, topN int) []industryScore {
	windowDays = clampInt(windowDays, minWindowDays, maxWindowDays)
	scores := make([]industryScore, 0, len(rows))
	for _, r := range rows {
		score := r.NetInflow
		if metric == "sum" {
			score = sumLastN(r.Series10d, windowDays)
		}
		scores = append(scores, industryScore{Name: r.IndustryName, Code: r.IndustryCode, Score: score})
	}
	asc := direction == "out"
	sort.SliceStable(scores, func(i, j int) bool {
		if asc {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].Score > scores[j].Score
	})
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}

type dateLeaders struct {
	Date  string
	Names []string
}

// dailyTopByDate builds, for each of the last days dates in the response,
// the topN industry names ranked by that single date's net inflow, hottest
// first. days clamps to [1,30], topN to [1,20]. Only names are kept.
func dailyTopByDate(resp *backend.IndustryFlowResponse, days, topN int) []dateLeaders {
	days = clampInt(days, minWindowDays, maxWindowDays)
	topN = clampInt(topN, minTopPerDate, maxTopPerDate)
	dates := resp.Dates
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}
	out := make([]dateLeaders, 0, len(dates))
	for _, date := range dates {
		type nameFlow struct {
			name string
			flow float64
		}
		flows := make([]nameFlow, 0, len(resp.Top))
		for _, row := range resp.Top {
			for _, p := range row.Series10d {
				if p.Date == date {
					flows = append(flows, nameFlow{row.IndustryName, p.NetInflow})
					break
				}
			}
		}
		sort.SliceStable(flows, func(i, j int) bool { return flows[i].flow > flows[j].flow })
		if len(flows) > topN {
			flows = flows[:topN]
		}
		names := make([]string, len(flows))
		for i, f := range flows {
			names[i] = f.name
		}
		out = append(out, dateLeaders{Date: date, Names: names})
	}
	return out
}

// collapseDates drops dates whose leader list repeats the immediately
// preceding kept date. The fund-flow source snapshots non-trading days with
// the prior trading day's composition, so a weekend shows up as identical
// consecutive rows; only the first of each run survives.
func collapseDates(rows []dateLeaders) ([]dateLeaders, int) {
	kept := make([]dateLeaders, 0, len(rows))
	collapsed := 0
	prevSig := ""
	for i, r := range rows {
		sig := strings.Join(r.Names, "|")
		if i > 0 && sig == prevSig {
			collapsed++
			continue
		}
		kept = append(kept, r)
		prevSig = sig
	}
	return kept, collapsed
}

func collapseNote(n int) string {
	if n == 1 {
		return "collapsed 1 duplicate non-trading snapshot"
	}
	return fmt.Sprintf("collapsed %d duplicate non-trading snapshots", n)
}
