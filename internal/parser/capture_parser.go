package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/logger"
)

// CaptureParser parses Flipper-style infrared capture files
type CaptureParser struct {
	name string
	log  *logger.Logger
}

// NewCaptureParser creates a new capture file parser
func NewCaptureParser() *CaptureParser {
	return &CaptureParser{
		name: "ir-capture",
		log:  logger.Nop(),
	}
}

// WithLogger sets the logger used for parse diagnostics
func (p *CaptureParser) WithLogger(log *logger.Logger) *CaptureParser {
	if log != nil {
		p.log = log.WithComponent("parser")
	}
	return p
}

// Name returns parser name
func (p *CaptureParser) Name() string {
	return p.name
}

// ParseReader reads the whole input and parses it
func (p *CaptureParser) ParseReader(reader io.Reader) (*File, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, common.NewError(common.ErrTypeIO, "failed to read capture", err)
	}
	return p.Parse(string(data))
}

// Parse parses a complete capture file. Input left over after the last
// button is a format error, and a file without buttons is an empty file error.
func (p *CaptureParser) Parse(input string) (*File, error) {
	file, rest, stop, err := p.parse(input)
	if err != nil {
		return nil, common.NewError(common.ErrTypeFormat, "invalid capture file", err)
	}

	if rest != "" {
		return nil, common.NewError(common.ErrTypeFormat, "invalid capture file", stop)
	}

	if len(file.Buttons) == 0 {
		return nil, common.Errorf(common.ErrTypeEmptyFile, "capture file contains no buttons")
	}

	p.log.DebugWithFields("parsed capture", []logger.Field{
		logger.Count(len(file.Buttons)),
		logger.F("filetype", file.Filetype),
		logger.F("version", file.Version),
	})

	return file, nil
}

// ParseString runs the grammar and returns the unconsumed remainder instead
// of rejecting it. A trailing separator plus a malformed button is left in
// the remainder, not reported.
func (p *CaptureParser) ParseString(input string) (*File, string, error) {
	file, rest, _, err := p.parse(input)
	if err != nil {
		return nil, input, err
	}
	return file, rest, nil
}

// parse returns the file, the remainder, the error that stopped the button
// list (if any) and a hard error.
func (p *CaptureParser) parse(input string) (*File, string, *FormatError, error) {
	c := newCursor(input)

	file, err := parseHeader(&c)
	if err != nil {
		return nil, "", nil, err
	}

	// The separator before the first button is mandatory; a file that ends
	// right after the header (or after that first separator) has no buttons.
	if c.eof() {
		return file, "", nil, nil
	}
	if err := parseComment(&c); err != nil {
		return nil, "", nil, err
	}
	if c.eof() {
		return file, "", nil, nil
	}

	first, err := parseButton(&c)
	if err != nil {
		return nil, "", nil, err
	}
	file.Buttons = append(file.Buttons, first)

	for !c.eof() {
		checkpoint := c
		if err := parseComment(&c); err != nil {
			return file, checkpoint.rest(), asFormatError(err), nil
		}
		button, err := parseButton(&c)
		if err != nil {
			return file, checkpoint.rest(), asFormatError(err), nil
		}
		file.Buttons = append(file.Buttons, button)
	}

	return file, "", nil, nil
}

func asFormatError(err error) *FormatError {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe
	}
	return &FormatError{Expected: err.Error()}
}

func parseHeader(c *cursor) (*File, error) {
	filetype, err := c.keyLine("Filetype")
	if err != nil {
		return nil, err
	}

	versionLine := *c
	versionText, err := c.keyLine("Version")
	if err != nil {
		return nil, err
	}
	version, err := strconv.ParseUint(versionText, 10, 32)
	if err != nil {
		return nil, versionLine.fail("unsigned integer version")
	}

	return &File{Filetype: filetype, Version: uint32(version)}, nil
}

func parseComment(c *cursor) error {
	if err := c.tag("#"); err != nil {
		return err
	}
	_, err := c.lineValue()
	return err
}

func parseButton(c *cursor) (Button, error) {
	name, err := c.keyLine("name")
	if err != nil {
		return Button{}, err
	}

	typeLine := *c
	kind, err := c.keyLine("type")
	if err != nil {
		return Button{}, err
	}

	var body Body
	switch kind {
	case "parsed":
		body, err = parseParsedBody(c)
	case "raw":
		body, err = parseRawBody(c)
	default:
		return Button{}, typeLine.fail(`"type: parsed" or "type: raw"`)
	}
	if err != nil {
		return Button{}, err
	}

	return Button{Name: name, Body: body}, nil
}

func parseParsedBody(c *cursor) (*ParsedButton, error) {
	protocol, err := c.keyLine("protocol")
	if err != nil {
		return nil, err
	}
	address, err := c.keyLine("address")
	if err != nil {
		return nil, err
	}
	command, err := c.keyLine("command")
	if err != nil {
		return nil, err
	}
	return &ParsedButton{Protocol: protocol, Address: address, Command: command}, nil
}

func parseRawBody(c *cursor) (*RawButton, error) {
	raw := &RawButton{}
	var err error

	if err = c.tag("frequency: "); err != nil {
		return nil, err
	}
	if raw.Frequency, err = c.readUint32(); err != nil {
		return nil, err
	}
	if err = c.newline(); err != nil {
		return nil, err
	}

	if err = c.tag("duty_cycle: "); err != nil {
		return nil, err
	}
	if raw.DutyCycle, err = c.readFloat32(); err != nil {
		return nil, err
	}
	if err = c.newline(); err != nil {
		return nil, err
	}

	if raw.Data, raw.FinalOn, err = parseData(c); err != nil {
		return nil, err
	}
	return raw, nil
}

// parseData matches `data: on off on off ... [on]\n`. A data line with no
// values yields nil pulses.
func parseData(c *cursor) ([]Pulse, *uint32, error) {
	if err := c.tag("data:"); err != nil {
		return nil, nil, err
	}
	if c.peek() == '\n' {
		return nil, nil, c.newline()
	}
	if err := c.tag(" "); err != nil {
		return nil, nil, err
	}
	if c.peek() == '\n' {
		return nil, nil, c.newline()
	}

	start := *c
	var values []uint32
	for {
		v, err := c.readUint32()
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
		if c.peek() != ' ' {
			break
		}
		c.pos++
	}
	if err := c.newline(); err != nil {
		return nil, nil, err
	}
	if len(values) < 2 {
		return nil, nil, start.fail("mark/space pair")
	}

	pulses := make([]Pulse, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		pulses = append(pulses, Pulse{Mark: values[i], Space: values[i+1]})
	}

	var finalOn *uint32
	if len(values)%2 == 1 {
		last := values[len(values)-1]
		finalOn = &last
	}
	return pulses, finalOn, nil
}

// String renders a short description of the button body
func (b Button) String() string {
	switch body := b.Body.(type) {
	case *ParsedButton:
		return fmt.Sprintf("%s (parsed %s %s/%s)", b.Name, body.Protocol, body.Address, body.Command)
	case *RawButton:
		return fmt.Sprintf("%s (raw %d Hz, %d pulses)", b.Name, body.Frequency, len(body.Data))
	default:
		return b.Name + " (unknown)"
	}
}
