// Package tui implements the interactive terminal front end: a pattern
// input line, a scrollable result pane with capture highlighting, and a
// status bar. All matching state lives in the session; the model only
// translates key events into session calls and renders the outcome.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/irecli/ire/internal/tailer"
	"github.com/irecli/ire/pkg/ire"
)

// mode is the input mode: keys either drive the pattern input or the
// result pane, never both.
type mode int

const (
	modeNormal mode = iota
	modeEditing
)

// Config carries the front end's launch parameters.
type Config struct {
	// InitialPattern pre-fills the pattern input.
	InitialPattern string
	// ExportPath is the destination for the export key. Empty disables
	// export with a hint instead of an error.
	ExportPath string
	// ExportFormat selects csv or tsv for exports.
	ExportFormat ire.ExportFormat
	// Tail, when non-nil, feeds appended lines of the first document into
	// the session while the UI runs.
	Tail *tailer.Tailer
}

// tailLineMsg delivers one appended line from the tailer.
type tailLineMsg string

// tailErrMsg delivers a non-fatal tailing error.
type tailErrMsg struct{ err error }

// Model is the bubbletea model for an interactive session.
type Model struct {
	sess   *ire.Session
	cfg    Config
	keys   keyMap
	styles styles

	mode     mode
	input    textinput.Model
	viewport viewport.Model
	ready    bool

	// histPos indexes the next history entry ctrl+p recalls; reset past
	// the end whenever the user types.
	histPos int

	status string
}

// New builds the model. The session must already hold its documents; the
// initial pattern, if any, is applied before the first frame.
func New(sess *ire.Session, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type a regular expression"
	ti.CharLimit = 512

	m := Model{
		sess:    sess,
		cfg:     cfg,
		keys:    defaultKeys,
		styles:  defaultStyles(),
		mode:    modeEditing,
		input:   ti,
		histPos: len(sess.History()),
	}
	m.input.Focus()

	if cfg.InitialPattern != "" {
		m.input.SetValue(cfg.InitialPattern)
		m.input.CursorEnd()
		_ = sess.SetPattern(cfg.InitialPattern)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfg.Tail != nil {
		cmds = append(cmds, waitForTail(m.cfg.Tail))
	}
	return tea.Batch(cmds...)
}

// waitForTail blocks on the tailer until a line or error arrives. The
// command is re-armed after every delivery.
func waitForTail(t *tailer.Tailer) tea.Cmd {
	return func() tea.Msg {
		select {
		case line, ok := <-t.Lines():
			if !ok {
				return nil
			}
			return tailLineMsg(line)
		case err, ok := <-t.Errors():
			if !ok {
				return nil
			}
			return tailErrMsg{err: err}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport()
		return m, nil

	case tailLineMsg:
		m.sess.AppendLine(0, string(msg))
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, waitForTail(m.cfg.Tail)

	case tailErrMsg:
		m.status = m.styles.StatusBad.Render("tail: " + msg.err.Error())
		return m, waitForTail(m.cfg.Tail)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.sess.Terminate()
			return m, tea.Quit
		}
		if m.mode == modeEditing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StopEdit):
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.sess.CommitHistory()
		m.histPos = len(m.sess.History())
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.PrevHistory):
		m.recallHistory()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.sess.Pattern() {
		// Re-filter on every keystroke; compile failures are recorded on
		// the session and rendered inline, never fatal.
		_ = m.sess.SetPattern(m.input.Value())
		m.histPos = len(m.sess.History())
		m.refreshViewport()
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sess.Terminate()
		return m, tea.Quit

	case key.Matches(msg, m.keys.StartEdit):
		m.mode = modeEditing
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Export):
		m.export()
		return m, nil

	case key.Matches(msg, m.keys.NextPreset):
		if p, ok := m.sess.NextPreset(); ok {
			m.input.SetValue(p.Regex)
			m.input.CursorEnd()
			_ = m.sess.SetPattern(p.Regex)
			m.status = "preset: " + p.ID
			m.refreshViewport()
		} else {
			m.status = m.styles.StatusBad.Render("no presets loaded")
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevHistory):
		m.recallHistory()
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// recallHistory steps backwards through recorded patterns, wrapping to the
// newest entry after the oldest.
func (m *Model) recallHistory() {
	hist := m.sess.History()
	if len(hist) == 0 {
		m.status = m.styles.StatusBad.Render("no pattern history")
		return
	}
	m.histPos--
	if m.histPos < 0 {
		m.histPos = len(hist) - 1
	}
	p := hist[m.histPos]
	m.input.SetValue(p)
	m.input.CursorEnd()
	_ = m.sess.SetPattern(p)
	m.refreshViewport()
}

func (m *Model) export() {
	if m.cfg.ExportPath == "" {
		m.status = m.styles.StatusBad.Render("no output path (run with -o FILE)")
		return
	}
	n, err := m.sess.ExportFile(m.cfg.ExportPath, m.cfg.ExportFormat)
	if err != nil {
		m.status = m.styles.StatusBad.Render("export failed: " + err.Error())
		return
	}
	m.status = m.styles.StatusGood.Render(
		fmt.Sprintf("wrote %d records to %s", n, m.cfg.ExportPath))
}

func (m *Model) resize(w, h int) {
	m.input.Width = w - 6
	vh := h - m.chromeHeight()
	if vh < 1 {
		vh = 1
	}
	if !m.ready {
		m.viewport = viewport.New(w, vh)
		m.ready = true
		return
	}
	m.viewport.Width = w
	m.viewport.Height = vh
}

// chromeHeight is the number of terminal rows used outside the viewport:
// help line, bordered input (3), error line, status bar.
func (m *Model) chromeHeight() int { return 1 + 3 + 1 + 1 }

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderResults())
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return strings.Join([]string{
		m.helpLine(),
		m.inputLine(),
		m.errorLine(),
		m.viewport.View(),
		m.statusLine(),
	}, "\n")
}

func (m Model) helpLine() string {
	if m.mode == modeEditing {
		return m.styles.Help.Render("esc stop editing · enter record pattern · ctrl+p history")
	}
	return m.styles.Help.Render("q quit · e edit · x export · p preset · j/k scroll")
}

func (m Model) inputLine() string {
	label := m.styles.InputLabel.Render("pattern ")
	return m.styles.InputBox.Render(label + m.input.View())
}

// errorLine renders the current compile error with a caret under the
// failing position when the engine reported one.
func (m Model) errorLine() string {
	cerr := m.sess.CompileErr()
	if cerr == nil {
		return ""
	}
	msg := m.styles.CompileErr.Render("error: " + cerr.Message)
	if cerr.Offset >= 0 && cerr.Offset <= len(cerr.Pattern) {
		caret := strings.Repeat(" ", len("pattern ")+cerr.Offset) + "^"
		msg = m.styles.ErrCaret.Render(caret) + " " + msg
	}
	return msg
}

func (m Model) renderResults() string {
	d := ire.BuildDisplay(m.sess.Documents(), m.sess.Results())

	var b strings.Builder
	multi := len(d.Files) > 1
	for _, f := range d.Files {
		if multi {
			b.WriteString(m.styles.FileHeader.Render(f.Path))
			b.WriteByte('\n')
		}
		for _, line := range f.Lines {
			b.WriteString(m.styles.LineNumber.Render(fmt.Sprintf("%4d ", line.Number)))
			b.WriteString(renderLine(m.styles, line))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderLine styles one display line: captured runs highlighted, unmatched
// lines dimmed, soft per-line diagnostics flagged at the end.
func renderLine(st styles, line ire.DisplayLine) string {
	var b strings.Builder
	if !line.Matched {
		b.WriteString(st.Unmatched.Render(line.Text))
	} else {
		for _, seg := range line.Segments {
			if seg.Captured {
				b.WriteString(st.Captured.Render(seg.Text))
			} else {
				b.WriteString(st.Plain.Render(seg.Text))
			}
		}
	}
	if line.Diagnostic != "" {
		b.WriteString(st.Diagnostic.Render("  [" + line.Diagnostic + "]"))
	}
	return b.String()
}

func (m Model) statusLine() string {
	rs := m.sess.Results()
	left := fmt.Sprintf("%s matched %d/%d lines · %d file(s) · %s engine",
		m.styles.StatusKey.Render(m.sess.State().String()),
		rs.MatchedCount(), rs.TotalLines(),
		len(rs.Files), m.sess.Engine())

	bar := m.styles.StatusBar.Render(left)
	if m.status != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, m.styles.StatusBar.Render(" · "+m.status))
	}
	return bar
}
