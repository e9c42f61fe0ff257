// Package ui implements the interactive terminal frontend on Bubbletea.
// It consumes controller events and never touches the filesystem itself,
// except to sniff file types for the inspector.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"

	"github.com/lumipallolabs/dirscope/internal/core"
	"github.com/lumipallolabs/dirscope/internal/logging"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// depthChoices are the depth limits the m key cycles through.
var depthChoices = []int{scan.DepthUnlimited, 3, 5, 10, 15}

const spinnerTickInterval = 80 * time.Millisecond

// Spinner frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// scanChannelMsg carries the event channel of a freshly started scan
type scanChannelMsg struct {
	ch <-chan core.Event
}

// scanEventMsg carries one event from the active scan
type scanEventMsg struct {
	ev core.Event
	ch <-chan core.Event
}

// scanDrainedMsg is sent when the scan's event channel closes
type scanDrainedMsg struct{}

// notifyMsg carries an event from a long-lived controller channel
type notifyMsg struct {
	ev core.Event
	ch <-chan core.Event
}

// deleteResultMsg carries the outcome of a trash operation
type deleteResultMsg struct {
	path  string
	freed int64
	err   error
}

// inspectResultMsg carries the outcome of MIME detection
type inspectResultMsg struct {
	path    string
	mime    string
	modTime time.Time
	err     error
}

// spinnerTickMsg triggers redraws while scanning
type spinnerTickMsg struct{}

// App is the main application model
type App struct {
	ctrl *core.Controller

	// Components
	header        Header
	list          ItemPanel
	chart         CategoryChart
	treemap       TreemapPanel
	help          HelpOverlay
	driveSelector DriveSelector
	inspector     Inspector
	keys          KeyMap

	// Data
	snapshot *scan.Snapshot

	// UI state
	scanning    bool
	showTreemap bool
	depthIdx    int
	confirm     *model.Item // pending trash confirmation
	status      string
	err         error

	// Dimensions
	width  int
	height int
}

// NewApp creates the application model around a controller.
func NewApp(ctrl *core.Controller) App {
	drives := ctrl.Drives()
	state := ctrl.State()

	app := App{
		ctrl:          ctrl,
		header:        NewHeader(drives),
		list:          NewItemPanel(),
		chart:         NewCategoryChart(),
		treemap:       NewTreemapPanel(),
		help:          NewHelpOverlay(),
		driveSelector: NewDriveSelector(drives),
		inspector:     NewInspector(),
		keys:          DefaultKeyMap(),
	}
	app.header.SetSelected(state.SelectedDrive)
	app.header.SetFreedStats(state.Freed.Session, state.Freed.Lifetime)

	for i, d := range depthChoices {
		if d == ctrl.MaxDepth() {
			app.depthIdx = i
		}
	}

	// Without a remembered target the first thing the user sees is the
	// drive picker.
	if !ctrl.HasSavedDefaultRoot() && len(drives) > 0 {
		app.driveSelector.SetVisible(true)
	}

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("DIRSCOPE"),
		listenNotify(a.ctrl.Events()),
	}
	if a.ctrl.HasSavedDefaultRoot() {
		cmds = append(cmds, a.startScan())
	}
	return tea.Batch(cmds...)
}

// startScan asks the controller for a new scan and hands its channel back
// into the update loop.
func (a App) startScan() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		ch, err := ctrl.StartScan(context.Background())
		if err != nil {
			return deleteResultMsg{err: err} // reuses the error surface
		}
		if ch == nil {
			return nil
		}
		return scanChannelMsg{ch: ch}
	}
}

// listenScan waits for the next event of the active scan.
func listenScan(ch <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return scanDrainedMsg{}
		}
		return scanEventMsg{ev: ev, ch: ch}
	}
}

// listenNotify waits for the next event on a long-lived channel.
func listenNotify(ch <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return notifyMsg{ev: ev, ch: ch}
	}
}

// startWatcher asks the controller to watch the scanned root.
func (a App) startWatcher() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		ch, err := ctrl.StartWatching()
		if err != nil {
			logging.Debug.Printf("Failed to start watcher: %v", err)
			return nil
		}
		if ch == nil {
			return nil
		}
		return notifyMsg{ch: ch}
	}
}

// inspect sniffs the MIME type of the selected file off the Update loop.
func inspect(path string) tea.Cmd {
	return func() tea.Msg {
		res := inspectResultMsg{path: path}
		if info, err := os.Lstat(path); err == nil {
			res.modTime = info.ModTime()
		}
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			res.err = err
			return res
		}
		res.mime = mtype.String()
		return res
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case scanChannelMsg:
		a.scanning = true
		a.err = nil
		a.status = ""
		a.snapshot = nil
		a.list.SetItems(nil)
		a.chart.SetTotals(nil)
		a.chart.ClearDeltas()
		a.treemap.SetTotals(nil)
		a.header.SetScanning(true, "")
		return a, tea.Batch(listenScan(msg.ch), spinnerTick())

	case scanEventMsg:
		return a.handleScanEvent(msg)

	case scanDrainedMsg:
		a.scanning = false
		return a, nil

	case notifyMsg:
		if msg.ev != nil {
			a.handleNotify(msg.ev)
		}
		return a, listenNotify(msg.ch)

	case deleteResultMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.status = fmt.Sprintf("Moved to Trash: %s (%s)", msg.path, FormatSize(msg.freed))
		a.applySnapshot(a.ctrl.LatestSnapshot())
		freed := a.ctrl.FreedState()
		a.header.SetFreedStats(freed.Session, freed.Lifetime)
		return a, nil

	case inspectResultMsg:
		if a.inspector.IsVisible() && a.inspector.Item().Path == msg.path {
			a.inspector.SetResult(msg.mime, msg.modTime, msg.err)
		}
		return a, nil

	case spinnerTickMsg:
		if a.scanning {
			return a, spinnerTick()
		}
		return a, nil
	}

	return a, nil
}

// handleScanEvent folds one controller scan event into the model.
func (a App) handleScanEvent(msg scanEventMsg) (tea.Model, tea.Cmd) {
	switch ev := msg.ev.(type) {
	case core.ScanStartedEvent:
		a.header.SetScanning(true, "")

	case core.ScanProgressEvent:
		a.applySnapshot(ev.Snapshot)
		a.header.SetScanning(true, fmt.Sprintf("%s files · %s",
			FormatCount(ev.Snapshot.Counts.Files),
			FormatSize(ev.Snapshot.Counts.TotalBytes)))

	case core.ErrorEvent:
		a.err = ev.Err

	case core.ScanCompletedEvent:
		a.scanning = false
		a.header.SetScanning(false, "")
		a.applySnapshot(ev.Snapshot)
		a.chart.SetDeltas(ev.Deltas, ev.TotalDelta)

		switch ev.Snapshot.Status {
		case scan.StatusCancelled:
			a.status = "Scan cancelled"
		case scan.StatusCompleted:
			a.status = fmt.Sprintf("Scanned %s files, %s",
				FormatCount(ev.Snapshot.Counts.Files),
				FormatSize(ev.Snapshot.Counts.TotalBytes))
			if p := ev.Snapshot.Counts.LargestPath; p != "" {
				a.status += fmt.Sprintf(" · largest: %s (%s)",
					filepath.Base(p), FormatSize(ev.Snapshot.Counts.LargestSize))
			}
			return a, tea.Batch(listenScan(msg.ch), a.startWatcher())
		}
	}
	return a, listenScan(msg.ch)
}

// handleNotify folds an out-of-band controller event into the model.
func (a *App) handleNotify(ev core.Event) {
	switch ev := ev.(type) {
	case core.ItemDeletedEvent:
		a.header.SetFreedStats(ev.SessionFreed, ev.LifetimeFreed)
	case core.ExternalDeletionEvent:
		a.header.SetFreedStats(ev.SessionFreed, ev.LifetimeFreed)
		a.status = fmt.Sprintf("Deleted outside app: %s (%s)", ev.Path, FormatSize(ev.Size))
		a.applySnapshot(a.ctrl.LatestSnapshot())
	case core.DriveChangedEvent:
		a.header.SetSelected(ev.Index)
	}
}

// applySnapshot pushes a snapshot into every data panel.
func (a *App) applySnapshot(snap *scan.Snapshot) {
	a.snapshot = snap
	if snap == nil {
		return
	}
	a.list.SetItems(snap.Items)
	a.chart.SetTotals(snap.Categories)
	a.treemap.SetTotals(snap.Categories)
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays take precedence, topmost first.
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	if a.inspector.IsVisible() {
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Inspect) {
			a.inspector.Hide()
		}
		return a, nil
	}

	if a.confirm != nil {
		switch msg.String() {
		case "y", "enter":
			path := a.confirm.Path
			a.confirm = nil
			ctrl := a.ctrl
			return a, func() tea.Msg {
				freed, err := ctrl.Delete(path)
				return deleteResultMsg{path: path, freed: freed, err: err}
			}
		default:
			a.confirm = nil
		}
		return a, nil
	}

	if a.driveSelector.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.Back):
			a.driveSelector.SetVisible(false)
		case key.Matches(msg, a.keys.Up):
			a.driveSelector.MoveUp()
		case key.Matches(msg, a.keys.Down):
			a.driveSelector.MoveDown()
		case key.Matches(msg, a.keys.Enter):
			a.driveSelector.SetVisible(false)
			idx := a.driveSelector.Selected()
			if err := a.ctrl.SelectDrive(idx); err == nil {
				a.header.SetSelected(idx)
				return a, a.startScan()
			}
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.SelectDrive):
		if len(a.ctrl.Drives()) > 0 {
			a.driveSelector.SetVisible(true)
		}

	case key.Matches(msg, a.keys.Up):
		a.list.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.list.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.list.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.list.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.list.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.list.GoToBottom()

	case key.Matches(msg, a.keys.Filter):
		a.list.CycleFilter()
	case key.Matches(msg, a.keys.Sort):
		a.list.ToggleSort()
	case key.Matches(msg, a.keys.Treemap):
		a.showTreemap = !a.showTreemap

	case key.Matches(msg, a.keys.Depth):
		a.depthIdx = (a.depthIdx + 1) % len(depthChoices)
		depth := depthChoices[a.depthIdx]
		a.ctrl.SetMaxDepth(depth)
		if depth == scan.DepthUnlimited {
			a.status = "Depth limit: unlimited (rescan to apply)"
		} else {
			a.status = fmt.Sprintf("Depth limit: %d (rescan to apply)", depth)
		}

	case key.Matches(msg, a.keys.Rescan):
		if !a.scanning {
			return a, a.startScan()
		}

	case key.Matches(msg, a.keys.Cancel):
		if a.scanning {
			ctrl := a.ctrl
			return a, func() tea.Msg {
				ctrl.CancelScan()
				return nil
			}
		}

	case key.Matches(msg, a.keys.Delete):
		if a.scanning {
			a.err = core.ErrScanActive
			break
		}
		if item := a.list.Selected(); item != nil {
			a.confirm = item
		}

	case key.Matches(msg, a.keys.Inspect):
		if item := a.list.Selected(); item != nil && !item.IsDir() {
			a.inspector.Show(*item)
			return a, inspect(item.Path)
		}

	case key.Matches(msg, a.keys.OpenFolder):
		if item := a.list.Selected(); item != nil {
			path := item.Path
			if !item.IsDir() {
				path = filepath.Dir(path)
			}
			if err := openInFileManager(path); err != nil {
				logging.Debug.Printf("open in file manager: %v", err)
			}
		}
	}

	return a, nil
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	headerHeight := 1
	helpBarHeight := 1
	statusHeight := 1

	panelHeight := a.height - headerHeight - helpBarHeight - statusHeight - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	listWidth := a.width * 55 / 100
	if listWidth < 30 {
		listWidth = 30
	}
	sideWidth := a.width - listWidth
	if sideWidth < 20 {
		sideWidth = 20
	}

	a.header.SetWidth(a.width)
	a.list.SetSize(listWidth, panelHeight)
	a.chart.SetSize(sideWidth, panelHeight)
	a.treemap.SetSize(sideWidth, panelHeight)
	a.help.SetSize(a.width, a.height)
	a.driveSelector.SetSize(a.width, a.height)
	a.inspector.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, a.header.View())

	if a.scanning && a.snapshot == nil {
		spinnerIdx := int(time.Now().UnixMilli()/spinnerTickInterval.Milliseconds()) % len(spinnerFrames)
		line := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).
			Render(spinnerFrames[spinnerIdx] + " Scanning files...")
		panelHeight := a.height - 4
		if panelHeight < 1 {
			panelHeight = 1
		}
		sections = append(sections, lipgloss.Place(
			a.width, panelHeight, lipgloss.Center, lipgloss.Center, line))
	} else {
		side := a.chart.View()
		if a.showTreemap {
			side = a.treemap.View()
		}
		panels := lipgloss.JoinHorizontal(lipgloss.Top, a.list.View(), side)
		sections = append(sections, panels)
	}

	switch {
	case a.err != nil:
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err)))
	case a.confirm != nil:
		prompt := fmt.Sprintf("Move %s (%s) to Trash? [y/N]",
			a.confirm.Name, FormatSize(a.confirm.Size))
		sections = append(sections, lipgloss.NewStyle().
			Foreground(ColorWarning).Bold(true).Padding(0, 1).Render(prompt))
	case a.status != "":
		sections = append(sections, StatusStyle.Render(a.status))
	default:
		sections = append(sections, "")
	}

	sections = append(sections, HelpBar(a.width))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if a.help.IsVisible() {
		return a.help.View()
	}
	if a.inspector.IsVisible() {
		return a.inspector.View()
	}
	if a.driveSelector.IsVisible() {
		return a.driveSelector.View()
	}

	return content
}
