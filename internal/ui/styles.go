package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#73F59F")
	ColorWarning = lipgloss.Color("#F5A623")
	ColorDanger  = lipgloss.Color("#F56565")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#3F3F46")
	ColorCyan    = lipgloss.Color("#00FFFF")

	ColorGrew   = lipgloss.Color("#FCA5A5") // light red
	ColorShrunk = lipgloss.Color("#86EFAC") // light green
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	DriveTabActive = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	DriveTabInactive = lipgloss.NewStyle().
				Background(lipgloss.Color("#3F3F46")).
				Foreground(lipgloss.Color("#A1A1AA")).
				Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E4E7"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E4E7"))

	ListItemSelected = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	SizeBarStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	GrewStyle = lipgloss.NewStyle().
			Foreground(ColorGrew)

	ShrunkStyle = lipgloss.NewStyle().
			Foreground(ColorShrunk)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)
)

// FormatSize formats bytes to a human readable string
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatDelta formats a size change with an explicit sign
func FormatDelta(bytes int64) string {
	if bytes >= 0 {
		return "+" + humanize.Bytes(uint64(bytes))
	}
	return "-" + humanize.Bytes(uint64(-bytes))
}

// FormatCount formats an item count with thousands separators
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return fmt.Sprintf("%s…", s[:max-1])
}
