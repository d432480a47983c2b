package refctx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatFloat formats a score or price with up to two decimals, trimming
// trailing zeros so whole numbers render bare.
func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatAmount formats a CNY amount with B/M/K suffixes, keeping the sign.
func formatAmount(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// formatInt formats an integer with comma separators.
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	start := len(s) % 3
	if start > 0 {
		b.WriteString(s[:start])
	}
	first := true
	for i := start; i < len(s); i += 3 {
		if !first || start > 0 {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatPercent formats an already percent-scaled value (70 means 70%),
// keeping the sign.
func formatPercent(v float64) string {
	return formatFloat(v) + "%"
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
