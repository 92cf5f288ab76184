package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/irsum/internal/analyzer"
	"github.com/yildizm/irsum/internal/emoji"
	"github.com/yildizm/irsum/internal/parser"
	"github.com/yildizm/irsum/internal/ui/components"
)

type tickMsg time.Time

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// InteractiveViewState represents different views in the interactive app
type InteractiveViewState int

const (
	InteractiveViewAnalyzing InteractiveViewState = iota
	InteractiveViewButtons
	InteractiveViewDetail
	InteractiveViewHelp
	InteractiveViewError
)

// InteractiveModel browses the decoded buttons of one capture file
type InteractiveModel struct {
	ctx     context.Context
	engine  analyzer.Analyzer
	source  string
	buttons []parser.Button

	analysis *analyzer.Analysis
	err      error

	width    int
	height   int
	ready    bool
	quitting bool

	currentView InteractiveViewState
	filtered    []int // indices into analysis.Buttons
	cursor      int

	filterInput textinput.Model
	filtering   bool

	spinnerFrame int
	styles       *Styles
}

// NewInteractiveModel creates a model that analyzes buttons when started
func NewInteractiveModel(ctx context.Context, engine analyzer.Analyzer, source string, buttons []parser.Button) *InteractiveModel {
	fi := textinput.New()
	fi.Placeholder = "button name..."
	fi.CharLimit = 64

	return &InteractiveModel{
		ctx:         ctx,
		engine:      engine,
		source:      source,
		buttons:     buttons,
		currentView: InteractiveViewAnalyzing,
		filterInput: fi,
		styles:      GetStyles(),
	}
}

// Init starts the analysis and the spinner
func (m *InteractiveModel) Init() tea.Cmd {
	return tea.Batch(
		CreateAnalysisCommand(m.ctx, m.engine, m.buttons),
		tick(),
	)
}

// Update handles messages and navigation
func (m *InteractiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKeyPress(msg)
	case tickMsg:
		if m.currentView != InteractiveViewAnalyzing {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()
	case analysisCompleteMsg:
		m.analysis = msg.analysis
		m.currentView = InteractiveViewButtons
		m.applyFilter()
		return m, nil
	case analysisErrorMsg:
		m.err = msg.err
		m.currentView = InteractiveViewError
		return m, nil
	}

	return m, nil
}

func (m *InteractiveModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.currentView == InteractiveViewDetail || m.currentView == InteractiveViewHelp {
			m.currentView = InteractiveViewButtons
		}
	case "?", "h":
		if m.analysis != nil {
			m.currentView = InteractiveViewHelp
		}
	case "up", "k":
		if m.currentView == InteractiveViewButtons && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.currentView == InteractiveViewButtons && m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if m.currentView == InteractiveViewButtons && len(m.filtered) > 0 {
			m.currentView = InteractiveViewDetail
		}
	case "/":
		if m.currentView == InteractiveViewButtons {
			m.filtering = true
			return m, m.filterInput.Focus()
		}
	}
	return m, nil
}

func (m *InteractiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterInput.Blur()
		m.filtering = false
		return m, nil
	case "esc":
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.filtering = false
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps the buttons whose name contains the filter text
func (m *InteractiveModel) applyFilter() {
	m.filtered = m.filtered[:0]
	if m.analysis == nil {
		return
	}

	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	for i, button := range m.analysis.Buttons {
		if query == "" || strings.Contains(strings.ToLower(button.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Selected returns the button under the cursor
func (m *InteractiveModel) Selected() (analyzer.ButtonReport, bool) {
	if m.analysis == nil || len(m.filtered) == 0 {
		return analyzer.ButtonReport{}, false
	}
	return m.analysis.Buttons[m.filtered[m.cursor]], true
}

// Err returns the analysis error, if any
func (m *InteractiveModel) Err() error {
	return m.err
}

// View renders the interactive model
func (m *InteractiveModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing irsum..."
	}

	var content string
	switch m.currentView {
	case InteractiveViewAnalyzing:
		content = m.renderAnalyzing()
	case InteractiveViewError:
		content = m.renderError()
	case InteractiveViewDetail:
		content = m.renderDetail()
	case InteractiveViewHelp:
		content = m.renderHelp()
	default:
		content = m.renderButtons()
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *InteractiveModel) renderAnalyzing() string {
	status := fmt.Sprintf("%s Analyzing %d buttons from %s",
		spinnerChars[m.spinnerFrame], len(m.buttons), m.source)
	return m.styles.Box.Render(m.styles.Header.Render(status))
}

func (m *InteractiveModel) renderError() string {
	lines := []string{
		m.styles.Error.Render(emoji.GetEmoji("error") + " Analysis failed"),
		"",
		m.styles.Body.Render(m.err.Error()),
		"",
		m.styles.Muted.Render("q: quit"),
	}
	return m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *InteractiveModel) renderButtons() string {
	title := m.styles.Title.Render(emoji.GetEmoji("signal") + " irsum")
	info := m.styles.Muted.Render(fmt.Sprintf("  %s  %d/%d buttons", m.source, len(m.filtered), len(m.analysis.Buttons)))

	rows := make([]string, 0, len(m.filtered))
	for pos, idx := range m.filtered {
		rows = append(rows, m.renderRow(m.analysis.Buttons[idx], pos == m.cursor))
	}
	if len(rows) == 0 {
		rows = append(rows, m.styles.Muted.Render("  no buttons match"))
	}

	var footer string
	if m.filtering {
		footer = m.styles.Header.Render("Filter: ") + m.filterInput.View()
	} else {
		footer = m.styles.Muted.Render("↑↓ move  Enter: details  /: filter  ?: help  q: quit")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title+info,
		"",
		components.CreateSignalStats(m.analysis).Render(),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		footer,
	)
}

func (m *InteractiveModel) renderRow(button analyzer.ButtonReport, selected bool) string {
	summary := "parsed, not analyzed"
	if button.Kind == parser.KindRaw {
		summary = fmt.Sprintf("%d bits", len(button.Bits))
		if button.Hex != "" {
			summary += "  0x" + button.Hex
		}
	}

	row := fmt.Sprintf("%s %-20s %s", emoji.ForKind(button.Kind.String()), button.Name, summary)
	if selected {
		return m.styles.Selected.Render("▶ " + row)
	}
	return m.styles.Body.Render("  " + row)
}

func (m *InteractiveModel) renderDetail() string {
	button, ok := m.Selected()
	if !ok {
		return m.renderButtons()
	}

	lines := []string{
		m.styles.Header.Render(emoji.ForKind(button.Kind.String()) + " " + button.Name),
		m.styles.Muted.Render(button.Kind.String()),
		"",
	}

	if button.Kind == parser.KindRaw {
		lines = append(lines,
			m.styles.Body.Render("Bits:  ")+m.styles.Bits.Render(orDash(button.GroupedBits())),
			m.styles.Body.Render("Hex:   ")+m.styles.Hex.Render(orDash(button.Hex)),
			m.styles.Body.Render("Extra: ")+m.styles.Body.Render(orDash(joinValues(button.Extra))),
			"",
		)
	}

	signal := components.NewSummaryBox("Signal", 44)
	signal.AddKeyValue("Modulation", string(m.analysis.Modulation))
	signal.AddKeyValue("Preamble", m.analysis.Preamble.String())
	signal.AddKeyValue("Bit 0", m.analysis.Bit0.String())
	signal.AddKeyValue("Bit 1", m.analysis.Bit1.String())
	signal.AddKeyValue("Dividers", m.analysis.Dividers.String())
	if marker := m.analysis.RepeatMarker; marker != nil {
		signal.AddKeyValue("Repeat", fmt.Sprintf("index %d (%s pulse %d)", marker.Index, marker.Button, marker.Offset))
	}
	for _, warning := range m.analysis.Warnings {
		signal.AddLine(emoji.GetEmoji("warning") + " " + warning)
	}

	lines = append(lines, signal.Render(), "", m.styles.Muted.Render("Esc: back  q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *InteractiveModel) renderHelp() string {
	help := []string{
		m.styles.Header.Render(emoji.GetEmoji("help") + " Keys"),
		"",
		"↑/k ↓/j   move between buttons",
		"Enter     show bits, hex and extra data",
		"/         filter buttons by name",
		"Esc       back, or clear the filter",
		emoji.GetEmoji("door") + " q         quit",
	}
	return m.styles.Box.Render(m.styles.Body.Render(strings.Join(help, "\n")))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinValues(values []uint32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}

// InteractiveRun runs the viewer until the user quits and returns any
// analysis error it showed
func InteractiveRun(ctx context.Context, engine analyzer.Analyzer, source string, buttons []parser.Button) error {
	model := NewInteractiveModel(ctx, engine, source, buttons)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
