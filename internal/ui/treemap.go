package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

const (
	minBlockWidth  = 8 // fits a short label
	minBlockHeight = 3 // border plus one text line
)

// Block is one laid-out rectangle of the category treemap.
type Block struct {
	Category      category.Category
	Bytes         int64
	X, Y          int
	Width, Height int
}

// treemapItem wraps a category total for the squarify algorithm
type treemapItem struct {
	cat      category.Category
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

var categoryColors = map[category.Category]lipgloss.Color{
	category.Video:     lipgloss.Color("#1E3A5F"),
	category.Images:    lipgloss.Color("#14532D"),
	category.PDF:       lipgloss.Color("#7F1D1D"),
	category.Documents: lipgloss.Color("#713F12"),
	category.Archives:  lipgloss.Color("#4C1D95"),
	category.Audio:     lipgloss.Color("#164E63"),
	category.Code:      lipgloss.Color("#3F3F46"),
	category.Other:     lipgloss.Color("#2D2D2D"),
}

// TreemapPanel renders category byte totals as a squarified treemap.
type TreemapPanel struct {
	totals map[category.Category]scan.CategoryTotal
	blocks []Block
	width  int
	height int
}

// NewTreemapPanel creates an empty treemap panel.
func NewTreemapPanel() TreemapPanel {
	return TreemapPanel{}
}

// SetTotals replaces the category totals and recomputes the layout.
func (t *TreemapPanel) SetTotals(totals map[category.Category]scan.CategoryTotal) {
	t.totals = totals
	t.layout()
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.layout()
}

// Blocks returns the current layout.
func (t *TreemapPanel) Blocks() []Block {
	return t.blocks
}

// layout calculates block positions using the squarify library
func (t *TreemapPanel) layout() {
	t.blocks = nil
	if t.width <= 4 || t.height <= 4 {
		return
	}

	contentW := t.width - 4
	contentH := t.height - 2

	items := make([]*treemapItem, 0, len(category.All))
	for _, cat := range category.All {
		total := t.totals[cat]
		if total.Bytes <= 0 {
			continue
		}
		items = append(items, &treemapItem{cat: cat, size: float64(total.Bytes)})
	}
	if len(items) == 0 {
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].size > items[j].size
	})

	root := &treemapItem{children: items}
	for _, child := range items {
		root.size += child.size
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	for i, block := range blocks {
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok {
			continue
		}

		// Round both edges so adjacent blocks share boundaries instead of
		// overlapping.
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		w := int(math.Round(block.X+block.W)) - x
		h := int(math.Round(block.Y+block.H)) - y
		if w < 1 || h < 1 {
			continue
		}

		t.blocks = append(t.blocks, Block{
			Category: item.cat,
			Bytes:    int64(item.size),
			X:        x,
			Y:        y,
			Width:    w,
			Height:   h,
		})
	}
}

// View renders the treemap panel.
func (t *TreemapPanel) View() string {
	contentW := t.width - 4
	contentH := t.height - 2
	if contentW < 1 || contentH < 1 {
		return PanelStyle.Width(t.width).Height(t.height).Render("")
	}
	if len(t.blocks) == 0 {
		return PanelStyle.Width(t.width).Height(t.height).Render("No data")
	}

	grid := make([][]rune, contentH)
	colors := make([][]lipgloss.Style, contentH)
	for i := range grid {
		grid[i] = make([]rune, contentW)
		colors[i] = make([]lipgloss.Style, contentW)
		for j := range grid[i] {
			grid[i][j] = ' '
			colors[i][j] = lipgloss.NewStyle()
		}
	}

	for _, block := range t.blocks {
		t.drawBlock(grid, colors, block, contentW, contentH)
	}

	var lines []string
	for y := 0; y < contentH; y++ {
		var line strings.Builder
		for x := 0; x < contentW; x++ {
			line.WriteString(colors[y][x].Render(string(grid[y][x])))
		}
		lines = append(lines, line.String())
	}

	return PanelStyle.Width(t.width).Height(t.height).
		Render(strings.Join(lines, "\n"))
}

// drawBlock fills one block's area and writes its label when space permits.
func (t *TreemapPanel) drawBlock(grid [][]rune, colors [][]lipgloss.Style, block Block, gridW, gridH int) {
	bg, ok := categoryColors[block.Category]
	if !ok {
		bg = lipgloss.Color("#2D2D2D")
	}
	fill := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#E4E4E7"))
	border := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#4B5563"))

	for y := block.Y; y < block.Y+block.Height && y < gridH; y++ {
		for x := block.X; x < block.X+block.Width && x < gridW; x++ {
			if y < 0 || x < 0 {
				continue
			}
			grid[y][x] = ' '
			colors[y][x] = fill
			onEdge := y == block.Y || y == block.Y+block.Height-1 ||
				x == block.X || x == block.X+block.Width-1
			if onEdge {
				if y == block.Y || y == block.Y+block.Height-1 {
					grid[y][x] = '─'
				} else {
					grid[y][x] = '│'
				}
				colors[y][x] = border
			}
		}
	}

	setCorner := func(y, x int, ch rune) {
		if y >= 0 && y < gridH && x >= 0 && x < gridW {
			grid[y][x] = ch
			colors[y][x] = border
		}
	}
	setCorner(block.Y, block.X, '┌')
	setCorner(block.Y, block.X+block.Width-1, '┐')
	setCorner(block.Y+block.Height-1, block.X, '└')
	setCorner(block.Y+block.Height-1, block.X+block.Width-1, '┘')

	if block.Width >= minBlockWidth && block.Height >= minBlockHeight {
		writeText := func(y int, text string) {
			x := block.X + 2
			for _, ch := range text {
				if x >= gridW || x >= block.X+block.Width-2 {
					break
				}
				if y >= 0 && y < gridH {
					grid[y][x] = ch
					colors[y][x] = fill
				}
				x++
			}
		}
		writeText(block.Y+1, string(block.Category))
		if block.Height > 3 {
			writeText(block.Y+2, FormatSize(block.Bytes))
		}
	}
}
