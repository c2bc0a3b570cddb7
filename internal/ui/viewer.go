package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runbook-sh/runbook/internal/config"
	"github.com/runbook-sh/runbook/internal/debug"
	"github.com/runbook-sh/runbook/internal/document"
	"github.com/runbook-sh/runbook/internal/executor"
	"github.com/runbook-sh/runbook/internal/nav"
	"github.com/runbook-sh/runbook/internal/parser"
	"github.com/runbook-sh/runbook/internal/watcher"
)

// ErrInterrupted is returned when the operator force-terminated the
// session; the process should exit with the interrupt status.
var ErrInterrupted = errors.New("session interrupted")

// flashTTL is how long local feedback (clipboard copies) stays visible.
const flashTTL = 2 * time.Second

// ============================================================================
// Key Map
// ============================================================================

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Shell    key.Binding
	Copy     key.Binding
	Quit     key.Binding
	Abort    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next step")),
		Prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous step")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Shell:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shell")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy step")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Abort:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
	}
}

// ============================================================================
// Messages
// ============================================================================

type tickMsg time.Time

type fileChangedMsg struct{}

type shellDoneMsg struct {
	err error
}

// tick keeps the view refreshing so transient notices expire on screen.
func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchCmd waits for the next file change notification.
func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return fileChangedMsg{}
	}
}

// ============================================================================
// Viewer Model
// ============================================================================

// viewerModel is the Bubble Tea model for the scrollable runbook viewer.
type viewerModel struct {
	navigator *nav.Navigator
	exec      *executor.Executor
	watch     *watcher.Watcher
	path      string
	keys      keyMap

	width  int
	height int

	flash   string
	flashAt time.Time
	now     func() time.Time

	interrupted bool
}

func newViewerModel(navigator *nav.Navigator, exec *executor.Executor, w *watcher.Watcher, path string) viewerModel {
	return viewerModel{
		navigator: navigator,
		exec:      exec,
		watch:     w,
		path:      path,
		keys:      defaultKeyMap(),
		now:       time.Now,
	}
}

// Init implements tea.Model
func (m viewerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.watch != nil {
		cmds = append(cmds, watchCmd(m.watch))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tick()

	case fileChangedMsg:
		m.reload()
		return m, watchCmd(m.watch)

	case shellDoneMsg:
		if executor.ExitCode(msg.err) == executor.InterruptExitCode {
			// The operator interrupted the sub-shell; treat it as an
			// interrupt of the whole session.
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		m.interrupted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.navigator.Advance()

	case key.Matches(msg, m.keys.Prev):
		m.navigator.Retreat()

	case key.Matches(msg, m.keys.Up):
		m.navigator.JumpTo(m.navigator.Scroll() - 1)

	case key.Matches(msg, m.keys.Down):
		m.navigator.JumpTo(m.navigator.Scroll() + 1)

	case key.Matches(msg, m.keys.PageUp):
		m.navigator.JumpTo(m.navigator.Scroll() - m.contentHeight())

	case key.Matches(msg, m.keys.PageDown):
		m.navigator.JumpTo(m.navigator.Scroll() + m.contentHeight())

	case key.Matches(msg, m.keys.Top):
		m.navigator.JumpTo(0)

	case key.Matches(msg, m.keys.Bottom):
		m.navigator.JumpTo(m.maxScroll())

	case key.Matches(msg, m.keys.Shell):
		return m, tea.ExecProcess(m.exec.ShellCommand(), func(err error) tea.Msg {
			return shellDoneMsg{err: err}
		})

	case key.Matches(msg, m.keys.Copy):
		m.copyCurrentStep()
	}

	return m, nil
}

// reload recompiles the document from disk, keeping the operator's place.
func (m *viewerModel) reload() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		debug.Logf("reload %s: %v", m.path, err)
		return
	}
	m.navigator.SetDocument(parser.Parse(data))
	debug.Logf("reloaded %s: %d steps", m.path, m.navigator.StepCount())
}

func (m *viewerModel) copyCurrentStep() {
	current := m.navigator.Current()
	steps := m.navigator.Document().Steps()
	if current == 0 || current > len(steps) {
		m.setFlash("No current step to copy")
		return
	}
	if err := m.exec.CopyStep(steps[current-1]); err != nil {
		m.setFlash(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.setFlash(fmt.Sprintf("Step %d copied to clipboard", current))
}

func (m *viewerModel) setFlash(msg string) {
	m.flash = msg
	m.flashAt = m.now()
}

func (m viewerModel) contentHeight() int {
	return maxInt(m.height-1, 1)
}

func (m viewerModel) maxScroll() int {
	return maxInt(nav.LayoutLines(m.navigator.Document())-m.contentHeight(), 0)
}

// View implements tea.Model
func (m viewerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lines := renderLines(m.navigator.Document(), m.navigator.Current())
	height := m.contentHeight()
	scroll := clamp(m.navigator.Scroll(), 0, maxInt(len(lines)-height, 0))

	visible := make([]string, height)
	for i := 0; i < height; i++ {
		if idx := scroll + i; idx < len(lines) {
			visible[i] = lines[idx]
		}
	}

	// Transient messages overlay the last content line so the layout
	// never shifts.
	if notice := m.activeNotice(); notice != "" {
		visible[height-1] = styles.Notice.Render(padLine(" "+notice+" ", m.width))
	}

	return strings.Join(visible, "\n") + "\n" + m.statusBar()
}

// activeNotice picks the live transient message: local flash first, then
// the navigator's end-of-runbook notice.
func (m viewerModel) activeNotice() string {
	if m.flash != "" && m.now().Sub(m.flashAt) < flashTTL {
		return m.flash
	}
	return m.navigator.Notice()
}

func (m viewerModel) statusBar() string {
	total := m.navigator.StepCount()
	current := m.navigator.Current()

	var text string
	switch {
	case total == 0:
		text = " No executable steps | q quit "
	case current >= total:
		text = " ✔ Final step complete | q quit · p review · s shell "
	default:
		text = fmt.Sprintf(" Step %d/%d | ↑↓ scroll | n next | p prev | s shell | c copy | q quit ", current, total)
	}

	return styles.Status.Render(padLine(text, m.width))
}

// padLine truncates or pads a line to exactly width display cells.
func padLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = runewidth.Truncate(s, width, "…")
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ============================================================================
// Entry Point
// ============================================================================

// RunViewer starts the interactive runbook viewer for a compiled document.
// It returns ErrInterrupted when the operator aborted the session.
func RunViewer(doc *document.Document, path string) error {
	RefreshStyles()

	navigator := nav.New(doc, nav.WithContextLines(config.GetContextLines()))

	var w *watcher.Watcher
	if config.GetWatch() {
		var err error
		if w, err = watcher.New(path); err != nil {
			// Live reload is best effort; the session works without it.
			debug.Logf("watch %s: %v", path, err)
			w = nil
		}
	}

	m := newViewerModel(navigator, executor.New(), w, path)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()

	if w != nil {
		w.Stop()
	}
	if err != nil {
		return err
	}
	if vm, ok := final.(viewerModel); ok && vm.interrupted {
		return ErrInterrupted
	}
	return nil
}
