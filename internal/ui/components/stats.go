package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/irsum/internal/analyzer"
	"github.com/yildizm/irsum/internal/emoji"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       20,
		Height:      4,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

var (
	successColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

func statusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "success":
		return successColor
	case "warning":
		return warningColor
	case "error":
		return errorColor
	case "info":
		return infoColor
	default:
		return bodyColor
	}
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(statusColor(s.Status)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(bodyColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	title := titleStyle.Render(s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		valueStyle.Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	return boxStyle.
		Width(s.Width).
		Height(s.Height).
		Render(content)
}

// StatsDashboard lays out stats cards in rows
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  20,
		cardHeight: 4,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Cards returns the cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))

		rowCards := make([]string, 0, end-i)
		for _, card := range d.cards[i:end] {
			rowCards = append(rowCards, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateSignalStats creates stats cards from an analysis
func CreateSignalStats(analysis *analyzer.Analysis) *StatsDashboard {
	dashboard := NewStatsDashboard(4)

	dashboard.AddCard(NewStatsCard(
		"Modulation",
		string(analysis.Modulation),
		analysis.Modulation.Description(),
	).SetIcon(emoji.GetEmoji("signal")))

	dashboard.AddCard(NewStatsCard(
		"Buttons",
		strconv.Itoa(analysis.TotalButtons),
		fmt.Sprintf("%d raw, %d parsed", analysis.RawButtons, analysis.ParsedButtons),
	).SetIcon(emoji.GetEmoji("button")))

	bitsCard := NewStatsCard("Bits", strconv.Itoa(analysis.BitCount), "decoded").
		SetIcon(emoji.GetEmoji("bits"))
	if analysis.BitCount > 0 {
		bitsCard.SetStatus("success")
	} else {
		bitsCard.SetStatus("warning")
	}
	dashboard.AddCard(bitsCard)

	repeatCard := NewStatsCard("Repeat", "none", "no long space").
		SetIcon(emoji.GetEmoji("repeat")).
		SetStatus("neutral")
	if marker := analysis.RepeatMarker; marker != nil {
		repeatCard.Value = fmt.Sprintf("@%d", marker.Index)
		repeatCard.Description = fmt.Sprintf("%d µs space", marker.Space)
		repeatCard.SetStatus("info")
	}
	dashboard.AddCard(repeatCard)

	if len(analysis.Warnings) > 0 {
		dashboard.AddCard(NewStatsCard(
			"Warnings",
			strconv.Itoa(len(analysis.Warnings)),
			"see details",
		).SetIcon(emoji.GetEmoji("warning")).SetStatus("warning"))
	}

	return dashboard
}

// SummaryBox renders a titled box of key/value lines
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-12s: %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	return boxStyle.Width(s.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
