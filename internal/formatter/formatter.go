package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/irsum/internal/analyzer"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(analysis *analyzer.Analysis) ([]byte, error)
}

// Options configures formatter construction
type Options struct {
	Color  bool
	Emoji  bool
	Source string
}

// New returns the formatter for a format name: text, json, markdown or csv
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "terminal", "":
		return NewTerminal(opts.Color, opts.Emoji), nil
	case "json":
		return NewJSON(opts.Source), nil
	case "markdown", "md":
		return NewMarkdown(opts.Source), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
