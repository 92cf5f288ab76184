package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError describes where a capture file stopped matching the grammar
type FormatError struct {
	// Line is the 1-based line number of the failure
	Line int `json:"line"`

	// Expected names the token that did not match
	Expected string `json:"expected"`

	// Remaining is the unconsumed input at the failure point
	Remaining string `json:"remaining"`
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: expected %s, found %s", e.Line, e.Expected, preview(e.Remaining))
}

// preview quotes the start of the remaining input for error messages
func preview(s string) string {
	if s == "" {
		return "end of input"
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i+1]
	}
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return strconv.Quote(s)
}

// cursor walks the input left to right. It is copied by value to checkpoint
// before alternatives.
type cursor struct {
	input string
	pos   int
	line  int
}

func newCursor(input string) cursor {
	return cursor{input: input, line: 1}
}

func (c *cursor) rest() string {
	return c.input[c.pos:]
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.input[c.pos]
}

func (c *cursor) fail(expected string) *FormatError {
	return &FormatError{Line: c.line, Expected: expected, Remaining: c.rest()}
}

// tag consumes a literal that never contains a newline
func (c *cursor) tag(lit string) error {
	if !strings.HasPrefix(c.rest(), lit) {
		return c.fail(strconv.Quote(lit))
	}
	c.pos += len(lit)
	return nil
}

func (c *cursor) newline() error {
	if c.peek() != '\n' {
		return c.fail(`"\n"`)
	}
	c.pos++
	c.line++
	return nil
}

// lineValue consumes everything up to and including the next newline and
// returns the text before it
func (c *cursor) lineValue() (string, error) {
	i := strings.IndexByte(c.rest(), '\n')
	if i < 0 {
		end := *c
		end.pos = len(end.input)
		return "", end.fail(`"\n"`)
	}
	value := c.input[c.pos : c.pos+i]
	c.pos += i + 1
	c.line++
	return value, nil
}

// keyLine matches `key: value\n`
func (c *cursor) keyLine(key string) (string, error) {
	if err := c.tag(key + ": "); err != nil {
		return "", err
	}
	return c.lineValue()
}

func (c *cursor) takeWhile(accept func(byte) bool) string {
	start := c.pos
	for !c.eof() && accept(c.input[c.pos]) {
		c.pos++
	}
	return c.input[start:c.pos]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (c *cursor) readUint32() (uint32, error) {
	start := *c
	digits := c.takeWhile(isDigit)
	if digits == "" {
		return 0, start.fail("unsigned integer")
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, start.fail("32-bit unsigned integer")
	}
	return uint32(v), nil
}

func (c *cursor) readFloat32() (float32, error) {
	start := *c
	text := c.takeWhile(func(b byte) bool { return isDigit(b) || b == '.' })
	if text == "" {
		return 0, start.fail("decimal number")
	}
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, start.fail("decimal number")
	}
	return float32(v), nil
}
