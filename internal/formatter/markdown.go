package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/irsum/internal/analyzer"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	source string
	now    func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(source string) Formatter {
	return &markdownFormatter{source: source, now: time.Now}
}

func (f *markdownFormatter) Format(analysis *analyzer.Analysis) ([]byte, error) {
	var b strings.Builder

	// Header with generation timestamp
	b.WriteString("# IR Capture Analysis\n\n")
	if f.source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", f.source)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, analysis)
	f.writeSignalTable(&b, analysis)
	f.writeButtonTable(&b, analysis.Buttons)

	if len(analysis.Warnings) > 0 {
		f.writeWarnings(&b, analysis.Warnings)
	}

	f.writeNotes(&b, analysis)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, analysis *analyzer.Analysis) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Signal](#signal)\n")
	b.WriteString("- [Buttons](#buttons)\n")
	if len(analysis.Warnings) > 0 {
		b.WriteString("- [Warnings](#warnings)\n")
	}
	b.WriteString("- [Notes](#notes)\n\n")
}

// writeSignalTable writes the classification and average timings
func (f *markdownFormatter) writeSignalTable(b *strings.Builder, a *analyzer.Analysis) {
	b.WriteString("## Signal\n\n")

	opts := termfmt.DefaultOptions()
	opts.Color = false
	margin := classificationMargin(a)

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Modulation | %s (%s) |\n", a.Modulation, a.Modulation.Description())
	fmt.Fprintf(b, "| Margin | %s %.0f%% |\n", termfmt.CreateConfidenceBar(margin, opts), margin*100)
	fmt.Fprintf(b, "| Preamble | %s |\n", a.Preamble)
	fmt.Fprintf(b, "| Bit 0 | %s |\n", a.Bit0)
	fmt.Fprintf(b, "| Bit 1 | %s |\n", a.Bit1)
	fmt.Fprintf(b, "| Dividers | %s |\n", a.Dividers)
	fmt.Fprintf(b, "| Repeat marker | %s |\n", escapeMarkdownCell(formatMarker(a.RepeatMarker)))
	fmt.Fprintf(b, "| Buttons | %d (%d raw, %d parsed) |\n", a.TotalButtons, a.RawButtons, a.ParsedButtons)
	fmt.Fprintf(b, "| Bits decoded | %s |\n\n", formatNumber(a.BitCount))
}

func (f *markdownFormatter) writeButtonTable(b *strings.Builder, buttons []analyzer.ButtonReport) {
	b.WriteString("## Buttons\n\n")
	b.WriteString("| Button | Kind | Bits | Hex | Extra |\n")
	b.WriteString("|--------|------|------|-----|-------|\n")

	for _, button := range buttons {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(button.Name),
			button.Kind,
			codeCell(button.GroupedBits()),
			codeCell(button.Hex),
			codeCell(formatValues(button.Extra)))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeWarnings(b *strings.Builder, warnings []string) {
	b.WriteString("## Warnings\n\n")
	for _, w := range warnings {
		fmt.Fprintf(b, "- %s\n", w)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeNotes(b *strings.Builder, analysis *analyzer.Analysis) {
	b.WriteString("## Notes\n\n")

	notes := generateNotes(analysis)
	if len(notes) == 0 {
		b.WriteString("Nothing to report.\n")
	}
	for i, note := range notes {
		fmt.Fprintf(b, "%d. %s\n", i+1, note)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by irsum*\n")
}

func codeCell(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
