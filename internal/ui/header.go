package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/dirscope/internal/model"
)

const headerProgressBarWidth = 20 // Width of disk usage progress bar

// Header displays drive tabs, freed-space stats, and disk usage
type Header struct {
	drives       []model.Drive
	selected     int
	width        int
	scanning     bool
	scanProgress string
	freedSession int64
	freedTotal   int64
}

// NewHeader creates a new header component
func NewHeader(drives []model.Drive) Header {
	return Header{drives: drives}
}

// SetSelected sets the selected drive index
func (h *Header) SetSelected(idx int) {
	if idx >= 0 && idx < len(h.drives) {
		h.selected = idx
	}
}

// Selected returns the currently selected drive
func (h Header) Selected() *model.Drive {
	if h.selected < 0 || h.selected >= len(h.drives) {
		return nil
	}
	return &h.drives[h.selected]
}

// SetScanning sets the scanning state
func (h *Header) SetScanning(scanning bool, progress string) {
	h.scanning = scanning
	h.scanProgress = progress
}

// SetFreedStats sets the freed space statistics
func (h *Header) SetFreedStats(session, total int64) {
	h.freedSession = session
	h.freedTotal = total
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")).
		Bold(true).
		Render("DIRSCOPE")

	var tabs []string
	for i, d := range h.drives {
		if i == h.selected {
			tabs = append(tabs, DriveTabActive.Render(d.Name))
		} else {
			tabs = append(tabs, DriveTabInactive.Render(d.Name))
		}
	}
	driveTabs := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var freedStats string
	if h.freedSession > 0 || h.freedTotal > 0 {
		label := lipgloss.NewStyle().Foreground(ColorMuted).Render("Freed: ")
		session := lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).
			Render(FormatSize(h.freedSession) + " session")
		sep := lipgloss.NewStyle().Foreground(ColorMuted).Render(" | ")
		total := lipgloss.NewStyle().Foreground(ColorMuted).
			Render(FormatSize(h.freedTotal) + " total")
		freedStats = label + session + sep + total
	}

	var stats string
	if h.scanning {
		if h.scanProgress != "" {
			stats = StatsStyle.Render(h.scanProgress)
		}
	} else if drive := h.Selected(); drive != nil && drive.TotalBytes > 0 {
		usedPct := drive.UsedPercent()
		filled := int(usedPct / 100 * float64(headerProgressBarWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", headerProgressBarWidth-filled)
		stats = StatsStyle.Render(fmt.Sprintf(
			"Used: %s / %s  [%s] %.0f%%",
			FormatSize(drive.UsedBytes()),
			FormatSize(drive.TotalBytes),
			bar,
			usedPct,
		))
	}

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")
	left := appName + sep + driveTabs

	leftWidth := lipgloss.Width(left)
	freedWidth := lipgloss.Width(freedStats)
	statsWidth := lipgloss.Width(stats)

	// Progressively drop the middle and right sections on narrow terminals.
	if h.width < leftWidth+freedWidth+statsWidth+4 {
		freedStats = ""
		freedWidth = 0
	}
	if h.width < leftWidth+statsWidth+2 {
		stats = ""
		statsWidth = 0
	}

	remaining := h.width - leftWidth - freedWidth - statsWidth
	if remaining < 2 {
		remaining = 2
	}
	leftGap := remaining / 2
	rightGap := remaining - leftGap

	line := left + strings.Repeat(" ", leftGap) + freedStats + strings.Repeat(" ", rightGap) + stats

	return HeaderStyle.MaxHeight(1).Render(line)
}
