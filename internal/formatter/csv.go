package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yildizm/irsum/internal/analyzer"
)

// csvFormatter formats button reports as CSV, one row per button
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(analysis *analyzer.Analysis) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Button",
		"Kind",
		"Modulation",
		"Bit Count",
		"Bits",
		"Hex",
		"Extra",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, button := range analysis.Buttons {
		modulation := ""
		if button.Bits != "" {
			modulation = string(analysis.Modulation)
		}

		record := []string{
			escapeCSVString(button.Name),
			button.Kind.String(),
			modulation,
			fmt.Sprintf("%d", len(button.Bits)),
			button.Bits,
			button.Hex,
			formatValues(button.Extra),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// escapeCSVString keeps every record on a single line
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
