package analyzer

import (
	"context"

	"github.com/yildizm/irsum/internal/logger"
	"github.com/yildizm/irsum/internal/parser"
)

// Analyzer classifies and decodes the raw buttons of a capture file
type Analyzer interface {
	// Analyze derives file-wide thresholds and decodes every button
	Analyze(ctx context.Context, buttons []parser.Button) (*Analysis, error)
}

// Engine is an Analyzer with tunable options
type Engine interface {
	Analyzer

	// WithRepeatFactor sets how far a space must exceed the running average
	// to mark the end of bit data
	WithRepeatFactor(factor uint32) Engine

	// WithBucketPolicy sets the empty bucket handling
	WithBucketPolicy(policy BucketPolicy) Engine

	// WithGroupSize sets the number of bits per reported group
	WithGroupSize(size int) Engine

	// WithLogger sets the logger for pass diagnostics
	WithLogger(log *logger.Logger) Engine
}
