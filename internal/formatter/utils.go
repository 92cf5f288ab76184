package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/irsum/internal/analyzer"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatValues joins raw timings with single spaces, as they appear in a capture file
func formatValues(values []uint32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, " ")
}

// formatMarker describes the repeat marker in one line
func formatMarker(m *analyzer.RepeatMarker) string {
	if m == nil {
		return "none"
	}
	return fmt.Sprintf("index %d, %q pulse %d (space %d µs, long-space threshold %d µs)",
		m.Index, m.Button, m.Offset, m.Space, m.LongSpaceThreshold)
}

// classificationMargin is how decisively one spread beat the other, in [0, 1]
func classificationMargin(a *analyzer.Analysis) float64 {
	deltaMark := spread(a.Bit0.Mark, a.Bit1.Mark)
	deltaSpace := spread(a.Bit0.Space, a.Bit1.Space)

	high, low := deltaMark, deltaSpace
	if low > high {
		high, low = low, high
	}
	if high == 0 {
		return 0
	}
	return float64(high-low) / float64(high)
}

func spread(bit0, bit1 uint32) uint32 {
	if bit1 < bit0 {
		return 0
	}
	return bit1 - bit0
}

// generateNotes turns the analysis into short follow-up hints
func generateNotes(a *analyzer.Analysis) []string {
	var notes []string

	if a.RepeatMarker != nil {
		notes = append(notes, fmt.Sprintf("Pulses from index %d on are reported as extra data", a.RepeatMarker.Index))
	}
	if classificationMargin(a) < 0.1 {
		notes = append(notes, "Mark and space spreads are close, the classification is weak")
	}
	if a.ParsedButtons > 0 {
		notes = append(notes, fmt.Sprintf("%d parsed button(s) were already decoded by the capture device", a.ParsedButtons))
	}
	for _, b := range a.Buttons {
		if b.Bits != "" && len(b.Bits)%8 != 0 {
			notes = append(notes, fmt.Sprintf("%q has %d bits, the last byte is incomplete", b.Name, len(b.Bits)))
		}
	}
	return notes
}
