package refctx

// preferredColumns orders TradingView screener headers by usefulness in a
// chat context. Headers not listed here keep their screener order.
var preferredColumns = []string{
	"Ticker",
	"Name",
	"Symbol",
	"Price",
	"Change %",
	"Rel Volume",
	"Rel Volume 1W",
	"Market cap",
	"Sector",
	"Analyst Rating",
	"RSI (14)",
}

// maxTableColumns bounds screener table width in the document.
const maxTableColumns = 8

// pickColumns selects and orders screener headers: preferred headers first
// (in preference order), then the remaining headers in their original order,
// truncated to maxTableColumns. Stable for a given input.
func pickColumns(available []string) []string {
	avail := make(map[string]bool, len(available))
	for _, h := range available {
		avail[h] = true
	}
	cols := make([]string, 0, len(available))
	taken := make(map[string]bool, len(available))
	for _, p := range preferredColumns {
		if avail[p] && !taken[p] {
			cols = append(cols, p)
			taken[p] = true
		}
	}
	for _, h := range available {
		if !taken[h] {
			cols = append(cols, h)
			taken[h] = true
		}
	}
	if len(cols) > maxTableColumns {
		cols = cols[:maxTableColumns]
	}
	return cols
}
