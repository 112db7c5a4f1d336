// Package history contains read-side session queries and text rendering.
package history

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// column is one table column; numeric columns align right.
type column struct {
	header string
	right  bool
}

func left(header string) column  { return column{header: header} }
func right(header string) column { return column{header: header, right: true} }

// formatTable lays out rows under cols, sizing each column to its widest
// cell in terminal cells. Trailing blanks are trimmed.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = displayWidth(c.header)
	}
	for _, r := range rows {
		for i := range cols {
			if w := displayWidth(cell(r, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinRow(cols, widths, headers))
	for _, r := range rows {
		lines = append(lines, joinRow(cols, widths, r))
	}
	return lines
}

func joinRow(cols []column, widths []int, r []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		v := cell(r, i)
		pad := strings.Repeat(" ", max(0, widths[i]-displayWidth(v)))
		if c.right {
			parts[i] = pad + v
		} else {
			parts[i] = v + pad
		}
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ")
}

func cell(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

// clip truncates lines wider than width. A non-positive width disables it.
func clip(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = runewidth.Truncate(line, width, "...")
	}
	return out
}
