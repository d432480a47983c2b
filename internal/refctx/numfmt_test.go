package refctx

import "testing"

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{1.25, "1.25"},
		{1.256, "1.26"},
		{-3.10, "-3.1"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2_350_000_000, "2.35B"},
		{-2_350_000_000, "-2.35B"},
		{120_500_000, "120.5M"},
		{45_200, "45.2K"},
		{-45_200, "-45.2K"},
		{999, "999"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := formatInt(tt.in); got != tt.want {
			t.Errorf("formatInt(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(70); got != "70%" {
		t.Errorf("formatPercent(70) = %q, want 70%%", got)
	}
	if got := formatPercent(-3.25); got != "-3.25%" {
		t.Errorf("formatPercent(-3.25) = %q, want -3.25%%", got)
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"float", 12.50, "12.5"},
		{"bool true", true, "yes"},
		{"bool false", false, "no"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asString(tt.in); got != tt.want {
				t.Errorf("asString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldMissingKey(t *testing.T) {
	m := map[string]any{"a": "1"}
	if got := field(m, "missing"); got != "" {
		t.Errorf("field missing = %q, want empty", got)
	}
	if got := field(nil, "a"); got != "" {
		t.Errorf("field on nil map = %q, want empty", got)
	}
	if got := field(m, "a"); got != "1" {
		t.Errorf("field = %q, want 1", got)
	}
}
