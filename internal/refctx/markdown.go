package refctx

import (
	"encoding/json"
	"regexp"
	"strings"
)

// cellWS matches newline runs; they get collapsed to one space so a cell or
// heading can never break its markdown row.
var cellWS = regexp.MustCompile(`[\r\n]+`)

func sanitizeCell(s string) string {
	return strings.TrimSpace(cellWS.ReplaceAllString(s, " "))
}

// docWriter accumulates the output document. All rendering goes through it
// so the markdown shape stays uniform and byte-stable: lines end with one
// "\n" and blocks are separated by exactly one blank line.
type docWriter struct {
	b strings.Builder
}

func (w *docWriter) title(s string) {
	w.b.WriteString("# ")
	w.b.WriteString(s)
	w.b.WriteString("\n\n")
}

func (w *docWriter) heading(s string) {
	w.b.WriteString("## ")
	w.b.WriteString(sanitizeCell(s))
	w.b.WriteString("\n\n")
}

func (w *docWriter) subheading(s string) {
	w.blank()
	w.b.WriteString("### ")
	w.b.WriteString(sanitizeCell(s))
	w.b.WriteString("\n\n")
}

// kv writes one "- key: value" line. An empty value drops the line entirely;
// absent metadata never renders as a placeholder.
func (w *docWriter) kv(key, value string) {
	if value == "" {
		return
	}
	w.b.WriteString("- ")
	w.b.WriteString(key)
	w.b.WriteString(": ")
	w.b.WriteString(sanitizeCell(value))
	w.b.WriteString("\n")
}

func (w *docWriter) line(s string) {
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

// blank closes the current block with one empty line. Consecutive calls
// collapse, so the document never carries double blank lines.
func (w *docWriter) blank() {
	s := w.b.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	w.b.WriteString("\n")
}

// table writes a pipe table, truncating rows to maxRows when maxRows > 0.
// Short rows pad with "-" cells; cell text is sanitized.
func (w *docWriter) table(headers []string, rows [][]string, maxRows int) {
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	w.blank()
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = sanitizeCell(h)
	}
	w.line("| " + strings.Join(cells, " | ") + " |")
	for i := range cells {
		cells[i] = "---"
	}
	w.line("| " + strings.Join(cells, " | ") + " |")
	for _, row := range rows {
		for i := range cells {
			cells[i] = "-"
			if i < len(row) {
				if c := sanitizeCell(row[i]); c != "" {
					cells[i] = c
				}
			}
		}
		w.line("| " + strings.Join(cells, " | ") + " |")
	}
	w.blank()
}

// blockquote writes free text as a quoted block. Quoting keeps user-authored
// lines (journal entries) from injecting section headings into the document.
func (w *docWriter) blockquote(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	w.blank()
	for _, ln := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		w.line("> " + strings.TrimRight(ln, "\r"))
	}
	w.blank()
}

// fencedJSON writes v as an indented JSON code fence. Map keys marshal
// sorted, so the output is deterministic.
func (w *docWriter) fencedJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	w.blank()
	w.line("```json")
	w.line(string(data))
	w.line("```")
	w.blank()
}

func (w *docWriter) String() string { return w.b.String() }
