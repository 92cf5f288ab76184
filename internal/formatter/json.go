package formatter

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/irsum/internal/analyzer"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct {
	source string
	now    func() time.Time
}

// NewJSON creates a new JSON formatter. source names the analyzed file.
func NewJSON(source string) Formatter {
	return &jsonFormatter{source: source, now: time.Now}
}

func (f *jsonFormatter) Format(analysis *analyzer.Analysis) ([]byte, error) {
	output := &JSONOutput{
		RunID:       uuid.NewString(),
		GeneratedAt: f.now().UTC(),
		Source:      f.source,
		Summary:     createSummary(analysis),
		Signal:      createSignal(analysis),
		Buttons:     analysis.Buttons,
		Warnings:    analysis.Warnings,
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the envelope written by the JSON formatter
type JSONOutput struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Source      string                  `json:"source,omitempty"`
	Summary     *SummaryOutput          `json:"summary"`
	Signal      *SignalOutput           `json:"signal"`
	Buttons     []analyzer.ButtonReport `json:"buttons"`
	Warnings    []string                `json:"warnings"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	TotalButtons  int `json:"total_buttons"`
	RawButtons    int `json:"raw_buttons"`
	ParsedButtons int `json:"parsed_buttons"`
	BitCount      int `json:"bit_count"`
}

// SignalOutput represents the file-wide classification
type SignalOutput struct {
	Modulation   string                 `json:"modulation"`
	Description  string                 `json:"description"`
	Margin       float64                `json:"margin"`
	Preamble     analyzer.Timing        `json:"preamble"`
	Bit0         analyzer.Timing        `json:"bit0"`
	Bit1         analyzer.Timing        `json:"bit1"`
	Dividers     analyzer.Timing        `json:"dividers"`
	RepeatMarker *analyzer.RepeatMarker `json:"repeat_marker,omitempty"`
	BucketPolicy string                 `json:"bucket_policy"`
}

func createSummary(a *analyzer.Analysis) *SummaryOutput {
	return &SummaryOutput{
		TotalButtons:  a.TotalButtons,
		RawButtons:    a.RawButtons,
		ParsedButtons: a.ParsedButtons,
		BitCount:      a.BitCount,
	}
}

func createSignal(a *analyzer.Analysis) *SignalOutput {
	return &SignalOutput{
		Modulation:   string(a.Modulation),
		Description:  a.Modulation.Description(),
		Margin:       classificationMargin(a),
		Preamble:     a.Preamble,
		Bit0:         a.Bit0,
		Bit1:         a.Bit1,
		Dividers:     a.Dividers,
		RepeatMarker: a.RepeatMarker,
		BucketPolicy: string(a.BucketPolicy),
	}
}
