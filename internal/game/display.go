package game

import (
	"strconv"
	"strings"
)

const cellSeparator = " | "

// FormatGrid renders the grid one row per line, columns separated by pipes
func FormatGrid(grid Grid) string {
	var b strings.Builder
	for r := 0; r < grid.Rows(); r++ {
		for c, column := range grid {
			if c > 0 {
				b.WriteString(cellSeparator)
			}
			b.WriteString(string(column[r]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatLines joins winning line numbers with spaces
func FormatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, " ")
}
