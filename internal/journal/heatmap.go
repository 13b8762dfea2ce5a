package journal

import (
	"fmt"
	"slices"
	"strings"
)

// Grid is a date-by-mood matrix of counts ready for rendering.
type Grid struct {
	Dates  []string // rows, ascending
	Moods  []string // columns, ascending
	Counts [][]int  // Counts[row][col]
	Max    int
}

// Empty reports whether the grid has no data.
func (g Grid) Empty() bool {
	return len(g.Dates) == 0
}

// Count returns the count at (date, mood), or 0.
func (g Grid) Count(date, mood string) int {
	r := slices.Index(g.Dates, date)
	c := slices.Index(g.Moods, mood)
	if r < 0 || c < 0 {
		return 0
	}
	return g.Counts[r][c]
}

// Heatmap lays cells out on a grid.
func Heatmap(cells []Cell) Grid {
	var g Grid
	for _, c := range cells {
		if !slices.Contains(g.Dates, c.Date) {
			g.Dates = append(g.Dates, c.Date)
		}
		if !slices.Contains(g.Moods, c.Mood) {
			g.Moods = append(g.Moods, c.Mood)
		}
	}
	slices.Sort(g.Dates)
	slices.Sort(g.Moods)

	g.Counts = make([][]int, len(g.Dates))
	for i := range g.Counts {
		g.Counts[i] = make([]int, len(g.Moods))
	}

	for _, c := range cells {
		r := slices.Index(g.Dates, c.Date)
		col := slices.Index(g.Moods, c.Mood)
		g.Counts[r][col] += c.Count
		g.Max = max(g.Max, g.Counts[r][col])
	}
	return g
}

// Summary returns a human-readable description of aggregated cells.
func Summary(cells []Cell) string {
	if len(cells) == 0 {
		return "No moods logged yet\n"
	}

	var sb strings.Builder

	total := 0
	days := make(map[string]struct{})
	for _, c := range cells {
		total += c.Count
		days[c.Date] = struct{}{}
	}

	entryWord := "entry"
	if total > 1 {
		entryWord = "entries"
	}
	dayWord := "day"
	if len(days) > 1 {
		dayWord = "days"
	}
	sb.WriteString(fmt.Sprintf("%d mood %s over %d %s\n", total, entryWord, len(days), dayWord))

	for _, c := range cells {
		sb.WriteString(fmt.Sprintf("  %s  %-12s x%d\n", c.Date, c.Mood, c.Count))
	}
	return sb.String()
}
