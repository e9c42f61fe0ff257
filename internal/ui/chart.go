package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/dirscope/internal/cache"
	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// CategoryChart renders per-category byte totals as horizontal bars, with
// the changes since the previous scan of the same root underneath.
type CategoryChart struct {
	totals     map[category.Category]scan.CategoryTotal
	deltas     []cache.CategoryDelta
	totalDelta int64
	hasDeltas  bool
	width      int
	height     int
}

// NewCategoryChart creates an empty chart.
func NewCategoryChart() CategoryChart {
	return CategoryChart{}
}

// SetTotals replaces the category totals.
func (c *CategoryChart) SetTotals(totals map[category.Category]scan.CategoryTotal) {
	c.totals = totals
}

// SetDeltas sets the changes against the previous scan.
func (c *CategoryChart) SetDeltas(deltas []cache.CategoryDelta, totalDelta int64) {
	c.deltas = deltas
	c.totalDelta = totalDelta
	c.hasDeltas = true
}

// ClearDeltas hides the change section, used when a new scan starts.
func (c *CategoryChart) ClearDeltas() {
	c.deltas = nil
	c.totalDelta = 0
	c.hasDeltas = false
}

// SetSize sets the panel dimensions
func (c *CategoryChart) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// View renders the chart panel.
func (c *CategoryChart) View() string {
	contentW := c.width - 4
	if contentW < 20 {
		contentW = 20
	}

	type row struct {
		cat   category.Category
		total scan.CategoryTotal
	}
	var rows []row
	var max int64 = 1
	for _, cat := range category.All {
		t := c.totals[cat]
		if t.Count == 0 {
			continue
		}
		rows = append(rows, row{cat, t})
		if t.Bytes > max {
			max = t.Bytes
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].total.Bytes > rows[j].total.Bytes
	})

	title := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("Categories")
	lines := []string{title, ""}

	if len(rows) == 0 {
		lines = append(lines, HelpStyle.Render("no data yet"))
	}

	const labelW = 10
	barW := contentW - labelW - 22
	if barW < 5 {
		barW = 5
	}
	for _, r := range rows {
		filled := int(float64(r.total.Bytes) / float64(max) * float64(barW))
		if filled < 1 && r.total.Bytes > 0 {
			filled = 1
		}
		bar := SizeBarStyle.Render(strings.Repeat("█", filled)) +
			HelpStyle.Render(strings.Repeat("░", barW-filled))
		lines = append(lines, fmt.Sprintf("%-*s %s %9s (%s)",
			labelW, truncate(string(r.cat), labelW), bar,
			FormatSize(r.total.Bytes), FormatCount(r.total.Count)))
	}

	if c.hasDeltas {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("Since last scan"))
		if len(c.deltas) == 0 {
			lines = append(lines, HelpStyle.Render("no changes"))
		}
		for _, d := range c.deltas {
			style := GrewStyle
			if d.Bytes < 0 {
				style = ShrunkStyle
			}
			lines = append(lines, fmt.Sprintf("%-*s %s",
				labelW, truncate(string(d.Category), labelW),
				style.Render(FormatDelta(d.Bytes))))
		}
		totalStyle := GrewStyle
		if c.totalDelta < 0 {
			totalStyle = ShrunkStyle
		}
		lines = append(lines, fmt.Sprintf("%-*s %s",
			labelW, "total", totalStyle.Render(FormatDelta(c.totalDelta))))
	}

	// Trim to the available height so the panel never overflows.
	maxLines := c.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return PanelStyle.Width(c.width).Height(c.height).
		Render(strings.Join(lines, "\n"))
}
