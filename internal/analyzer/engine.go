package analyzer

import (
	"context"
	"fmt"

	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/logger"
	"github.com/yildizm/irsum/internal/parser"
)

// AnalyzerEngine implements the Analyzer and Engine interfaces
type AnalyzerEngine struct {
	repeatFactor uint32
	bucketPolicy BucketPolicy
	groupSize    int
	log          *logger.Logger
}

func NewEngine() *AnalyzerEngine {
	return &AnalyzerEngine{
		repeatFactor: DefaultRepeatFactor,
		bucketPolicy: BucketPolicyZero,
		groupSize:    DefaultGroupSize,
		log:          logger.Nop(),
	}
}

// Analyze runs the passes in order: preamble, repeat marker, thresholds,
// classification and per-button decoding. The buttons are never modified.
func (e *AnalyzerEngine) Analyze(ctx context.Context, buttons []parser.Button) (*Analysis, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	if len(buttons) == 0 {
		return nil, common.Errorf(common.ErrTypeEmptyFile, "no buttons to analyze")
	}

	analysis := &Analysis{
		BucketPolicy: e.bucketPolicy,
		Buttons:      make([]ButtonReport, 0, len(buttons)),
		Warnings:     []string{},
		TotalButtons: len(buttons),
	}

	signals := e.collectSignals(analysis, buttons)
	if len(signals) == 0 {
		return nil, common.Errorf(common.ErrTypeNoRawData,
			"none of %d buttons has raw pulse data", len(buttons))
	}

	analysis.Preamble = preambleTiming(signals)

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	marker := findRepeatMarker(signals, e.repeatFactor)
	analysis.RepeatMarker = marker
	if marker != nil {
		e.log.DebugWithFields("repeat marker found", []logger.Field{
			logger.F("button", marker.Button),
			logger.F("index", marker.Index),
			logger.F("offset", marker.Offset),
			logger.F("space", marker.Space),
			logger.F("long_space_threshold", marker.LongSpaceThreshold),
		})
	}

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	b := fillBuckets(signals, marker)
	if b.marks.Empty() {
		analysis.Warnings = append(analysis.Warnings, "bit region is empty, no bits decoded")
	}
	bucketWarnings, err := applyPolicy(b, e.bucketPolicy)
	if err != nil {
		return nil, err
	}
	analysis.Warnings = append(analysis.Warnings, bucketWarnings...)

	analysis.Dividers = b.dividers()
	analysis.Bit0 = b.bit0()
	analysis.Bit1 = b.bit1()
	analysis.Modulation = classify(analysis.Bit0, analysis.Bit1)

	e.log.DebugWithFields("classified signal", []logger.Field{
		logger.F("modulation", analysis.Modulation),
		logger.F("mark_divider", analysis.Dividers.Mark),
		logger.F("space_divider", analysis.Dividers.Space),
		logger.F("bit_pulses", b.marks.Count),
	})

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	e.decodeButtons(analysis, buttons, marker)

	for _, w := range analysis.Warnings {
		e.log.Debug("warning: %s", w)
	}

	return analysis, nil
}

// WithRepeatFactor sets the repeat marker factor
func (e *AnalyzerEngine) WithRepeatFactor(factor uint32) Engine {
	e.repeatFactor = factor
	return e
}

// WithBucketPolicy sets the empty bucket policy
func (e *AnalyzerEngine) WithBucketPolicy(policy BucketPolicy) Engine {
	e.bucketPolicy = policy
	return e
}

// WithGroupSize sets the bit group size
func (e *AnalyzerEngine) WithGroupSize(size int) Engine {
	e.groupSize = size
	return e
}

// WithLogger sets the engine logger
func (e *AnalyzerEngine) WithLogger(log *logger.Logger) Engine {
	if log != nil {
		e.log = log.WithComponent("analyzer")
	}
	return e
}

func (e *AnalyzerEngine) validate() error {
	if e.repeatFactor == 0 {
		return common.Errorf(common.ErrTypeConfiguration, "repeat factor must be positive")
	}
	if e.groupSize <= 0 {
		return common.Errorf(common.ErrTypeConfiguration, "group size must be positive, got %d", e.groupSize)
	}
	if _, err := ParseBucketPolicy(string(e.bucketPolicy)); err != nil {
		return common.NewError(common.ErrTypeConfiguration, "invalid analysis options", err)
	}
	return nil
}

// collectSignals counts button kinds and returns the raw buttons that carry
// pulses, in file order
func (e *AnalyzerEngine) collectSignals(analysis *Analysis, buttons []parser.Button) []signal {
	var signals []signal
	for i, button := range buttons {
		switch body := button.Body.(type) {
		case *parser.RawButton:
			analysis.RawButtons++
			if !body.HasData() {
				analysis.Warnings = append(analysis.Warnings,
					fmt.Sprintf("button %q has no pulse data", button.Name))
				continue
			}
			signals = append(signals, signal{index: i, name: button.Name, raw: body})
		case *parser.ParsedButton:
			analysis.ParsedButtons++
		}
	}

	e.log.DebugWithFields("collected signals", []logger.Field{
		logger.Count(len(signals)),
		logger.F("raw_buttons", analysis.RawButtons),
		logger.F("parsed_buttons", analysis.ParsedButtons),
	})
	return signals
}

// preambleTiming averages the first pulse of every signal
func preambleTiming(signals []signal) Timing {
	var marks, spaces Metrics
	for _, s := range signals {
		p := s.preamble()
		marks = marks.Add(p.Mark)
		spaces = spaces.Add(p.Space)
	}
	return Timing{Mark: marks.Average(), Space: spaces.Average()}
}

// decodeButtons builds one report per button in file order
func (e *AnalyzerEngine) decodeButtons(analysis *Analysis, buttons []parser.Button, marker *RepeatMarker) {
	for _, button := range buttons {
		report := ButtonReport{Name: button.Name, Kind: button.Body.Kind()}

		switch body := button.Body.(type) {
		case *parser.RawButton:
			if body.HasData() {
				s := signal{name: button.Name, raw: body}
				bits, extra := s.split(marker)
				report.Bits = decodeBits(bits, analysis.Modulation, analysis.Dividers)
				report.Groups = groupBits(report.Bits, e.groupSize)
				report.Hex = bitsToHex(report.Bits)
				report.Extra = extraValues(extra, body.FinalOn)
				analysis.BitCount += len(report.Bits)
			}
		case *parser.ParsedButton:
			// name and kind only
		}

		analysis.Buttons = append(analysis.Buttons, report)
	}
}
