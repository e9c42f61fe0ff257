package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/dirscope/internal/model"
)

// Inspector shows the details of one item in a centered overlay, including
// the content-sniffed MIME type, which often disagrees with the extension.
type Inspector struct {
	visible bool
	item    model.Item
	mime    string
	modTime time.Time
	err     error
	loading bool
	width   int
	height  int
}

// NewInspector creates an inspector overlay.
func NewInspector() Inspector {
	return Inspector{}
}

// Show opens the overlay for item while detection runs.
func (in *Inspector) Show(item model.Item) {
	in.visible = true
	in.item = item
	in.mime = ""
	in.modTime = time.Time{}
	in.err = nil
	in.loading = true
}

// SetResult fills in the detection outcome.
func (in *Inspector) SetResult(mime string, modTime time.Time, err error) {
	in.mime = mime
	in.modTime = modTime
	in.err = err
	in.loading = false
}

// Hide closes the overlay.
func (in *Inspector) Hide() {
	in.visible = false
}

// IsVisible returns whether the overlay is open.
func (in Inspector) IsVisible() bool {
	return in.visible
}

// Item returns the item being inspected.
func (in Inspector) Item() model.Item {
	return in.item
}

// SetSize sets the dimensions for centering.
func (in *Inspector) SetSize(w, h int) {
	in.width = w
	in.height = h
}

// View renders the inspector overlay.
func (in Inspector) View() string {
	if !in.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Background(lipgloss.Color("#1F1F23"))

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7"))

	line := func(label, value string) string {
		return labelStyle.Width(10).Render(label) + valueStyle.Render(value) + "\n"
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(in.item.Name))
	content.WriteString("\n")
	content.WriteString(line("Path", truncate(in.item.Path, 60)))
	content.WriteString(line("Kind", in.item.Kind.String()))
	content.WriteString(line("Category", string(in.item.DisplayCategory())))
	content.WriteString(line("Size", fmt.Sprintf("%s (%s bytes)",
		FormatSize(in.item.Size), FormatCount(in.item.Size))))

	switch {
	case in.loading:
		content.WriteString(line("Type", "detecting..."))
	case in.err != nil:
		content.WriteString(line("Type", "unavailable"))
	default:
		content.WriteString(line("Type", in.mime))
		if !in.modTime.IsZero() {
			content.WriteString(line("Modified", in.modTime.Format("2006-01-02 15:04")))
		}
	}

	hintStyle := lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
	content.WriteString(hintStyle.Render("Esc close"))

	box := boxStyle.Render(strings.TrimSuffix(content.String(), "\n"))
	return lipgloss.Place(in.width, in.height, lipgloss.Center, lipgloss.Center, box)
}
