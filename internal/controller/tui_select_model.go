package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SikamikanikoBG/codelens/internal/domain"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// progressBuffer sizes the scan progress channel. The scanner drops
// updates when the channel is full, so a slow or closed UI never blocks
// the walk.
const progressBuffer = 64

type selectPhase int

const (
	phaseScanning selectPhase = iota
	phaseSelecting
)

// selectModel drives the interactive scope selection screen: a scan
// progress phase followed by the selectable directory tree.
type selectModel struct {
	session *domain.Session

	phase  selectPhase
	width  int
	height int

	spin         spinner.Model
	progressBar  progress.Model
	scanProgress domain.ScanProgress
	progressCh   chan domain.ScanProgress
	scanCancel   context.CancelFunc
	scanCtx      context.Context

	items  []m.VisibleItem
	kinds  map[m.Path]bool // true when the item is a directory
	cursor int
	offset int

	confirmed bool
	cancelled bool
}

func newSelectModel(session *domain.Session) selectModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	ctx, cancel := context.WithCancel(context.Background())

	return selectModel{
		session:     session,
		spin:        spin,
		progressBar: prog,
		progressCh:  make(chan domain.ScanProgress, progressBuffer),
		scanCtx:     ctx,
		scanCancel:  cancel,
		kinds:       map[m.Path]bool{},
	}
}

func (sm selectModel) Init() tea.Cmd {
	return tea.Batch(sm.spin.Tick, sm.startScanCmd(), sm.waitProgressCmd())
}

// startScanCmd runs the noise scan in its own goroutine. Until the
// returned scanDoneMsg arrives the scanner is the only writer to the
// store, so the tree phase never races it.
func (sm selectModel) startScanCmd() tea.Cmd {
	session := sm.session
	ctx := sm.scanCtx
	ch := sm.progressCh

	return func() tea.Msg {
		session.Scanner.Scan(ctx, func(p domain.ScanProgress) {
			select {
			case ch <- p:
			default:
			}
		})

		close(ch)

		return scanDoneMsg{}
	}
}

// waitProgressCmd forwards the next scan update into the program. It
// re-arms itself from Update until the scanner closes the channel.
func (sm selectModel) waitProgressCmd() tea.Cmd {
	ch := sm.progressCh

	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}

		return scanProgressMsg{progress: p}
	}
}

func (sm selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm = sm.handleWindowSize(msg)

		return sm, nil

	case spinner.TickMsg:
		if sm.phase != phaseScanning {
			return sm, nil
		}

		var cmd tea.Cmd
		sm.spin, cmd = sm.spin.Update(msg)

		return sm, cmd

	case scanProgressMsg:
		sm.scanProgress = msg.progress

		return sm, sm.waitProgressCmd()

	case scanDoneMsg:
		sm.phase = phaseSelecting
		sm = sm.refreshItems()

		return sm, nil

	case tea.KeyMsg:
		return sm.handleKeyMsg(msg)
	}

	return sm, nil
}

func (sm selectModel) handleWindowSize(msg tea.WindowSizeMsg) selectModel {
	sm.width = msg.Width
	sm.height = msg.Height

	barWidth := msg.Width - 8
	if barWidth < 10 {
		barWidth = 10
	}

	sm.progressBar.Width = barWidth
	sm = sm.clampScroll()

	return sm
}

//nolint:cyclop // Key handling requires one case per binding.
func (sm selectModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if sm.phase == phaseScanning {
		switch msg.String() {
		case "esc":
			// Skips the rest of the scan but keeps the session alive.
			sm.scanCancel()

			return sm, nil

		case "q", "ctrl+c":
			sm.scanCancel()
			sm.cancelled = true

			return sm, tea.Quit
		}

		return sm, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		sm.cancelled = true

		return sm, tea.Quit

	case "enter":
		sm.confirmed = true

		return sm, tea.Quit

	case "up", "k":
		sm.cursor--
		sm = sm.clampScroll()

		return sm, nil

	case "down", "j":
		sm.cursor++
		sm = sm.clampScroll()

		return sm, nil

	case "g", "home":
		sm.cursor = 0
		sm = sm.clampScroll()

		return sm, nil

	case "G", "end":
		sm.cursor = len(sm.items) - 1
		sm = sm.clampScroll()

		return sm, nil

	case "pgdown":
		sm.cursor += sm.visibleRows()
		sm = sm.clampScroll()

		return sm, nil

	case "pgup":
		sm.cursor -= sm.visibleRows()
		sm = sm.clampScroll()

		return sm, nil

	case "right", "l":
		return sm.handleExpand(), nil

	case "left", "h":
		return sm.handleCollapse(), nil

	case " ":
		return sm.handleToggle(true), nil

	case "x":
		return sm.handleToggle(false), nil
	}

	return sm, nil
}

func (sm selectModel) handleExpand() selectModel {
	item, ok := sm.currentItem()
	if !ok || !sm.kinds[item.Path] {
		return sm
	}

	sm.session.Store.Expand(item.Path)

	return sm.refreshItems()
}

// handleCollapse folds the directory under the cursor. On files and
// already collapsed directories the cursor jumps to the parent instead.
func (sm selectModel) handleCollapse() selectModel {
	item, ok := sm.currentItem()
	if !ok {
		return sm
	}

	if sm.kinds[item.Path] && sm.session.Store.IsExpanded(item.Path) {
		sm.session.Store.Collapse(item.Path)

		return sm.refreshItems()
	}

	parent := m.Path(filepath.Dir(string(item.Path)))
	for i := sm.cursor - 1; i >= 0; i-- {
		if sm.items[i].Path == parent {
			sm.cursor = i

			break
		}
	}

	return sm.clampScroll()
}

func (sm selectModel) handleToggle(fullySelect bool) selectModel {
	item, ok := sm.currentItem()
	if !ok {
		return sm
	}

	sm.session.Mutator.Toggle(item.Path, fullySelect)

	return sm.refreshItems()
}

func (sm selectModel) currentItem() (m.VisibleItem, bool) {
	if sm.cursor < 0 || sm.cursor >= len(sm.items) {
		return m.VisibleItem{}, false
	}

	return sm.items[sm.cursor], true
}

// refreshItems rebuilds the visible list after any structural change.
// Directory kinds are resolved live per visible item so renames between
// sessions never leave a stale marker.
func (sm selectModel) refreshItems() selectModel {
	sm.items = sm.session.Materializer.VisibleItems()

	sm.kinds = make(map[m.Path]bool, len(sm.items))
	for _, item := range sm.items {
		sm.kinds[item.Path] = sm.session.IsDir(item.Path)
	}

	return sm.clampScroll()
}

// clampScroll keeps the cursor inside the item list and the scroll
// window around the cursor.
func (sm selectModel) clampScroll() selectModel {
	if sm.cursor >= len(sm.items) {
		sm.cursor = len(sm.items) - 1
	}

	if sm.cursor < 0 {
		sm.cursor = 0
	}

	rows := sm.visibleRows()

	if sm.cursor < sm.offset {
		sm.offset = sm.cursor
	}

	if sm.cursor >= sm.offset+rows {
		sm.offset = sm.cursor - rows + 1
	}

	maxOffset := len(sm.items) - rows
	if maxOffset < 0 {
		maxOffset = 0
	}

	if sm.offset > maxOffset {
		sm.offset = maxOffset
	}

	if sm.offset < 0 {
		sm.offset = 0
	}

	return sm
}

// visibleRows calculates how many tree rows fit on screen.
func (sm selectModel) visibleRows() int {
	if sm.height == 0 {
		return 20 // Default before the first WindowSizeMsg
	}
	// Reserve space for:
	// - Title: 2 lines (padding + text)
	// - Summary: 2 lines (text + padding)
	// - Footer: 1 line
	// - Bottom margin: 1 line
	reserved := 6

	available := sm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (sm selectModel) View() string {
	if sm.phase == phaseScanning {
		return sm.viewScanning()
	}

	return sm.viewSelecting()
}

func (sm selectModel) viewScanning() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan

	title := titleStyle.Render("🔍 CodeLens Project Scan")

	var body string

	if sm.scanProgress.Total == 0 {
		body = summaryStyle.Render(fmt.Sprintf("%s Counting directories…", sm.spin.View()))
	} else {
		summary := summaryStyle.Render(fmt.Sprintf(
			"Scanned: %s / %s  •  %s",
			accentStyle.Render(fmt.Sprintf("%d", sm.scanProgress.Scanned)),
			accentStyle.Render(fmt.Sprintf("%d", sm.scanProgress.Total)),
			truncateToWidth(string(sm.scanProgress.Current), sm.width-24),
		))

		progressStyle := lipgloss.NewStyle().Padding(0, 2)
		body = lipgloss.JoinVertical(lipgloss.Left,
			summary,
			progressStyle.Render(sm.progressBar.ViewAs(sm.scanProgress.Percent())),
		)
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(sm.width)

	footer := footerStyle.Render("esc skip scan • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		footer,
	)
}

func (sm selectModel) viewSelecting() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	title := titleStyle.Render("🔍 CodeLens Scope Selection")
	summary := sm.renderSummary()
	tree := sm.renderTree()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(sm.width)

	footer := footerStyle.Render(
		"↑/k ↓/j move • →/l expand • ←/h collapse • space select • x exclude • enter confirm • q cancel",
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		tree,
		footer,
	)
}

func (sm selectModel) renderSummary() string {
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	greenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	yellowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	stats := sm.session.Store.Stats()

	line := fmt.Sprintf(
		"Selected: %s  •  Excluded: %s  •  Partial: %s",
		greenStyle.Render(fmt.Sprintf("%d", stats.Selected)),
		redStyle.Render(fmt.Sprintf("%d", stats.Excluded)),
		yellowStyle.Render(fmt.Sprintf("%d", stats.PartiallySelected)),
	)

	if !sm.session.Store.ScanComplete() {
		line += "  •  scan skipped"
	}

	return summaryStyle.Render(line)
}

func (sm selectModel) renderTree() string {
	if len(sm.items) == 0 {
		return lipgloss.NewStyle().Padding(0, 2).Render("Nothing to select")
	}

	rows := sm.visibleRows()

	end := sm.offset + rows
	if end > len(sm.items) {
		end = len(sm.items)
	}

	lines := make([]string, 0, rows)
	for i := sm.offset; i < end; i++ {
		lines = append(lines, sm.renderRow(sm.items[i], i == sm.cursor))
	}

	return strings.Join(lines, "\n")
}

func (sm selectModel) renderRow(item m.VisibleItem, current bool) string {
	isDir := sm.kinds[item.Path]

	marker := "  "
	if isDir {
		if sm.session.Store.IsExpanded(item.Path) {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	name := filepath.Base(string(item.Path))
	if isDir {
		name += "/"
	}

	indent := strings.Repeat("  ", item.Depth)
	prefix := fmt.Sprintf("  %s %s%s", sm.stateCell(item.Path), indent, marker)

	nameWidth := sm.width - lipgloss.Width(prefix) - 2
	name = truncateToWidth(name, nameWidth)

	nameStyle := sm.nameStyle(item.Path, isDir)
	if current {
		nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
	}

	return prefix + nameStyle.Render(name)
}

// stateCell renders the explicit marking of a path. Unmarked paths show
// an empty cell even when they inherit a state from an ancestor; the name
// color carries the resolved state instead.
func (sm selectModel) stateCell(path m.Path) string {
	switch sm.session.Store.State(path) {
	case m.StateSelected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[+]")
	case m.StateExcluded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("[-]")
	case m.StatePartial:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("[~]")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("[ ]")
	}
}

func (sm selectModel) nameStyle(path m.Path, isDir bool) lipgloss.Style {
	var style lipgloss.Style

	switch {
	case sm.session.Resolver.IsExcluded(path):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // Red
	case sm.session.Resolver.IsPartiallySelected(path):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	}

	if isDir {
		style = style.Bold(true)
	}

	return style
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0
	result := make([]rune, 0, len(text))

	for _, r := range text {
		runeWidth := lipgloss.Width(string(r))
		if currentWidth+runeWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += runeWidth
	}

	return string(result) + ellipsis
}
