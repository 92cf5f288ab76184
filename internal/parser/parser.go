package parser

import (
	"io"
)

// Parser defines the interface for capture file parsers
type Parser interface {
	// Parse parses a complete capture file
	Parse(input string) (*File, error)

	// ParseReader parses a complete capture file from a reader
	ParseReader(reader io.Reader) (*File, error)

	// Name returns the parser name
	Name() string
}

// DefaultParser is the parser used by the package-level helpers
var DefaultParser Parser = NewCaptureParser()

// Parse parses a capture file with the default parser
func Parse(input string) (*File, error) {
	return DefaultParser.Parse(input)
}

// ParseReader parses a capture file from a reader with the default parser
func ParseReader(reader io.Reader) (*File, error) {
	return DefaultParser.ParseReader(reader)
}
