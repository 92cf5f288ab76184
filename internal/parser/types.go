package parser

import "fmt"

// Kind identifies which body a button carries
type Kind int

const (
	KindParsed Kind = iota
	KindRaw
)

// String methods for Kind
func (k Kind) String() string {
	switch k {
	case KindParsed:
		return "parsed"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON reports
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "parsed":
		*k = KindParsed
	case "raw":
		*k = KindRaw
	default:
		return fmt.Errorf("unknown button kind %q", text)
	}
	return nil
}

// File is a parsed capture file
type File struct {
	Filetype string   `json:"filetype"`
	Version  uint32   `json:"version"`
	Buttons  []Button `json:"buttons"`
}

// Button is a named entry of a capture file
type Button struct {
	Name string `json:"name"`
	Body Body   `json:"body"`
}

// Body is either *ParsedButton or *RawButton. The set is closed: only this
// package can add implementations.
type Body interface {
	Kind() Kind
	isBody()
}

// ParsedButton is a button already decoded by the capture device
type ParsedButton struct {
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	Command  string `json:"command"`
}

// Kind implements Body
func (*ParsedButton) Kind() Kind { return KindParsed }
func (*ParsedButton) isBody()    {}

// RawButton holds the recorded pulse timings of a button
type RawButton struct {
	Frequency uint32  `json:"frequency"`
	DutyCycle float32 `json:"duty_cycle"`
	Data      []Pulse `json:"data"`
	FinalOn   *uint32 `json:"final_on,omitempty"`
}

// Kind implements Body
func (*RawButton) Kind() Kind { return KindRaw }
func (*RawButton) isBody()    {}

// Pulse is one mark/space pair in microseconds. Data[0] of a raw button is
// the preamble.
type Pulse struct {
	Mark  uint32 `json:"mark"`
	Space uint32 `json:"space"`
}

// Raw returns the raw body of the button, if it has one
func (b Button) Raw() (*RawButton, bool) {
	raw, ok := b.Body.(*RawButton)
	return raw, ok
}

// Parsed returns the parsed body of the button, if it has one
func (b Button) Parsed() (*ParsedButton, bool) {
	parsed, ok := b.Body.(*ParsedButton)
	return parsed, ok
}

// HasData reports whether a raw button carries at least one pulse
func (r *RawButton) HasData() bool {
	return r != nil && len(r.Data) > 0
}
