package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/dirscope/internal/model"
)

// maxVisibleItems caps how many rows the list renders from one snapshot.
// Everything past the cap is still counted in the totals, only the display
// is truncated.
const maxVisibleItems = 1000

// Filter selects which item kinds the list shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterFiles
	FilterFolders
)

// String returns the filter label for the footer.
func (f Filter) String() string {
	switch f {
	case FilterFiles:
		return "files"
	case FilterFolders:
		return "folders"
	default:
		return "all"
	}
}

// SortMode selects the list ordering.
type SortMode int

const (
	SortSize SortMode = iota
	SortName
)

// String returns the sort label for the footer.
func (s SortMode) String() string {
	if s == SortName {
		return "name"
	}
	return "size"
}

// ItemPanel renders the scanned items as a scrollable list.
type ItemPanel struct {
	items   []model.Item // all items from the latest snapshot
	visible []model.Item // filtered, sorted, capped
	matched int          // count matching the filter, before the cap

	filter   Filter
	sortMode SortMode
	selected int
	offset   int
	width    int
	height   int
}

// NewItemPanel creates an empty item panel.
func NewItemPanel() ItemPanel {
	return ItemPanel{}
}

// SetItems replaces the backing item list and rebuilds the view.
func (p *ItemPanel) SetItems(items []model.Item) {
	p.items = items
	p.rebuild()
}

// SetSize sets the panel dimensions
func (p *ItemPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.clamp()
}

// Selected returns the item under the cursor, nil when the list is empty.
func (p *ItemPanel) Selected() *model.Item {
	if p.selected < 0 || p.selected >= len(p.visible) {
		return nil
	}
	item := p.visible[p.selected]
	return &item
}

// CycleFilter advances all -> files -> folders -> all.
func (p *ItemPanel) CycleFilter() {
	p.filter = (p.filter + 1) % 3
	p.rebuild()
}

// ToggleSort switches between size and name ordering.
func (p *ItemPanel) ToggleSort() {
	if p.sortMode == SortSize {
		p.sortMode = SortName
	} else {
		p.sortMode = SortSize
	}
	p.rebuild()
}

// Filter returns the active filter.
func (p *ItemPanel) Filter() Filter {
	return p.filter
}

// SortMode returns the active ordering.
func (p *ItemPanel) SortMode() SortMode {
	return p.sortMode
}

func (p *ItemPanel) rebuild() {
	filtered := make([]model.Item, 0, len(p.items))
	for _, it := range p.items {
		switch p.filter {
		case FilterFiles:
			if it.IsDir() {
				continue
			}
		case FilterFolders:
			if !it.IsDir() {
				continue
			}
		}
		filtered = append(filtered, it)
	}
	p.matched = len(filtered)

	switch p.sortMode {
	case SortName:
		model.SortByName(filtered)
	default:
		model.SortBySize(filtered)
	}

	if len(filtered) > maxVisibleItems {
		filtered = filtered[:maxVisibleItems]
	}
	p.visible = filtered
	p.clamp()
}

func (p *ItemPanel) clamp() {
	if p.selected >= len(p.visible) {
		p.selected = len(p.visible) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
	rows := p.rowCount()
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+rows {
		p.offset = p.selected - rows + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// rowCount is the number of item rows that fit inside the panel chrome.
func (p *ItemPanel) rowCount() int {
	rows := p.height - 4 // border + footer
	if rows < 1 {
		rows = 1
	}
	return rows
}

// MoveUp moves the cursor up one row.
func (p *ItemPanel) MoveUp() {
	p.selected--
	p.clamp()
}

// MoveDown moves the cursor down one row.
func (p *ItemPanel) MoveDown() {
	p.selected++
	p.clamp()
}

// PageUp scrolls up a full page.
func (p *ItemPanel) PageUp() {
	p.selected -= p.rowCount()
	p.clamp()
}

// PageDown scrolls down a full page.
func (p *ItemPanel) PageDown() {
	p.selected += p.rowCount()
	p.clamp()
}

// GoToTop jumps to the first row.
func (p *ItemPanel) GoToTop() {
	p.selected = 0
	p.clamp()
}

// GoToBottom jumps to the last row.
func (p *ItemPanel) GoToBottom() {
	p.selected = len(p.visible) - 1
	p.clamp()
}

// View renders the list panel.
func (p *ItemPanel) View() string {
	contentW := p.width - 4
	if contentW < 10 {
		contentW = 10
	}
	rows := p.rowCount()

	var largest int64 = 1
	for _, it := range p.visible {
		if it.Size > largest {
			largest = it.Size
		}
	}

	var lines []string
	end := p.offset + rows
	if end > len(p.visible) {
		end = len(p.visible)
	}
	for i := p.offset; i < end; i++ {
		lines = append(lines, p.renderRow(p.visible[i], i == p.selected, largest, contentW))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}

	lines = append(lines, p.footer(contentW))

	content := strings.Join(lines, "\n")
	return PanelStyle.Width(p.width).Height(p.height).Render(content)
}

func (p *ItemPanel) renderRow(item model.Item, selected bool, largest int64, width int) string {
	const barWidth = 10
	sizeStr := FormatSize(item.Size)
	catStr := string(item.DisplayCategory())

	filled := int(float64(item.Size) / float64(largest) * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", barWidth-filled)

	name := item.Name
	if item.IsDir() {
		name += "/"
	}
	if item.Unreadable {
		name += " !"
	}

	// name column fills whatever the fixed columns leave over
	nameW := width - barWidth - len(catStr) - len(sizeStr) - 6
	if nameW < 8 {
		nameW = 8
	}
	name = truncate(name, nameW)

	row := fmt.Sprintf("%-*s  %s  %s  %*s",
		nameW, name, SizeBarStyle.Render(bar), catStr, 10, sizeStr)

	if selected {
		return ListItemSelected.Render(row)
	}
	if item.Unreadable {
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(row)
	}
	return ListItemStyle.Render(row)
}

func (p *ItemPanel) footer(width int) string {
	var shown string
	if p.matched > maxVisibleItems {
		shown = fmt.Sprintf("top %d of %s", maxVisibleItems, FormatCount(int64(p.matched)))
	} else {
		shown = fmt.Sprintf("%s items", FormatCount(int64(p.matched)))
	}
	text := fmt.Sprintf("%s · filter: %s · sort: %s", shown, p.filter, p.sortMode)
	return HelpStyle.Render(truncate(text, width))
}
