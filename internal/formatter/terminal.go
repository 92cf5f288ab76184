package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/irsum/internal/analyzer"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(analysis *analyzer.Analysis) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSignal(&b, analysis)
	f.writeButtons(&b, analysis.Buttons)

	if len(analysis.Warnings) > 0 {
		f.writeWarnings(&b, analysis.Warnings)
	}

	f.writeNotes(&b, analysis)

	return []byte(b.String()), nil
}

// writeHeader writes the boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "IR Capture Analysis"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSignal writes the file-wide classification and timings as a tree
func (f *terminalFormatter) writeSignal(b *strings.Builder, a *analyzer.Analysis) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Signal\n")

	margin := classificationMargin(a)
	items := []termfmt.TreeItem{
		{Label: "Modulation", Value: fmt.Sprintf("%s (%s)", a.Modulation, a.Modulation.Description())},
		{Label: "Margin", Value: fmt.Sprintf("%s %.0f%%", termfmt.CreateConfidenceBar(margin, f.opts), margin*100)},
		{Label: "Preamble", Value: a.Preamble.String()},
		{Label: "Bit 0", Value: a.Bit0.String()},
		{Label: "Bit 1", Value: a.Bit1.String()},
		{Label: "Dividers", Value: a.Dividers.String()},
		{Label: "Repeat marker", Value: formatMarker(a.RepeatMarker)},
		{Label: "Buttons", Value: fmt.Sprintf("%d (%d raw, %d parsed)", a.TotalButtons, a.RawButtons, a.ParsedButtons)},
		{Label: "Bits decoded", Value: formatNumber(a.BitCount), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeButtons writes one tree node per button in file order
func (f *terminalFormatter) writeButtons(b *strings.Builder, buttons []analyzer.ButtonReport) {
	symbol := termfmt.GetEmoji("target", f.opts)
	b.WriteString(symbol + " Buttons\n")

	items := make([]termfmt.TreeItem, 0, len(buttons))
	for i, button := range buttons {
		item := termfmt.TreeItem{
			Label: button.Name,
			Value: "(" + button.Kind.String() + ")",
			Last:  i == len(buttons)-1,
		}

		var children []termfmt.TreeItem
		if button.Bits != "" {
			children = append(children, termfmt.TreeItem{Label: "Bits", Value: button.GroupedBits()})
		}
		if button.Hex != "" {
			children = append(children, termfmt.TreeItem{Label: "Hex", Value: button.Hex})
		}
		if len(button.Extra) > 0 {
			children = append(children, termfmt.TreeItem{Label: "Extra", Value: formatValues(button.Extra)})
		}
		if len(children) > 0 {
			children[len(children)-1].Last = true
			item.Children = children
		}

		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) writeWarnings(b *strings.Builder, warnings []string) {
	symbol := termfmt.GetEmoji("warning", f.opts)
	b.WriteString(symbol + " Warnings\n")
	for _, w := range warnings {
		b.WriteString("• " + w + "\n")
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeNotes(b *strings.Builder, a *analyzer.Analysis) {
	notes := generateNotes(a)
	if len(notes) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("info", f.opts)
	b.WriteString(symbol + " Notes\n")
	for i, note := range notes {
		if i < 3 { // Limit to top 3 notes for text format
			b.WriteString("• " + note + "\n")
		}
	}
}
