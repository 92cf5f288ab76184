package analyzer

import (
	"fmt"
	"strings"

	"github.com/yildizm/irsum/internal/parser"
)

// Analysis represents the result of analyzing one capture file
type Analysis struct {
	Modulation   Modulation     `json:"modulation"`
	Preamble     Timing         `json:"preamble"`
	Bit0         Timing         `json:"bit0"`
	Bit1         Timing         `json:"bit1"`
	Dividers     Timing         `json:"dividers"`
	RepeatMarker *RepeatMarker  `json:"repeat_marker,omitempty"`
	BucketPolicy BucketPolicy   `json:"bucket_policy"`
	Buttons      []ButtonReport `json:"buttons"`
	Warnings     []string       `json:"warnings"`

	TotalButtons  int `json:"total_buttons"`
	RawButtons    int `json:"raw_buttons"`
	ParsedButtons int `json:"parsed_buttons"`
	BitCount      int `json:"bit_count"`
}

// Timing is an averaged or threshold mark/space pair in microseconds
type Timing struct {
	Mark  uint32 `json:"mark"`
	Space uint32 `json:"space"`
}

// String renders the timing as mark/space
func (t Timing) String() string {
	return fmt.Sprintf("%d/%d µs", t.Mark, t.Space)
}

// Modulation is the inferred infrared encoding
type Modulation string

const (
	ModulationPWM Modulation = "PWM"
	ModulationPDM Modulation = "PDM"
)

// Description returns the long name of the modulation
func (m Modulation) Description() string {
	switch m {
	case ModulationPWM:
		return "Pulse Width Modulation"
	case ModulationPDM:
		return "Pulse Distance Modulation"
	default:
		return "Unknown"
	}
}

// RepeatMarker locates the first anomalously long space. Index counts
// post-preamble pulses across all raw buttons in file order and is the
// bit/extra boundary of every raw button. Offset is the pulse position
// inside Button.
type RepeatMarker struct {
	Button             string `json:"button"`
	ButtonIndex        int    `json:"button_index"`
	Index              int    `json:"index"`
	Offset             int    `json:"offset"`
	Space              uint32 `json:"space"`
	LongSpaceThreshold uint32 `json:"long_space_threshold"`
}

// ButtonReport is the decoded output for one button, in file order
type ButtonReport struct {
	Name   string      `json:"name"`
	Kind   parser.Kind `json:"kind"`
	Bits   string      `json:"bits,omitempty"`
	Groups []string    `json:"groups,omitempty"`
	Hex    string      `json:"hex,omitempty"`
	Extra  []uint32    `json:"extra,omitempty"`
}

// GroupedBits joins the bit groups with spaces
func (r ButtonReport) GroupedBits() string {
	return strings.Join(r.Groups, " ")
}

// BucketPolicy decides what an empty bit0/bit1 bucket averages to
type BucketPolicy string

const (
	// BucketPolicyZero averages an empty bucket to 0 and records a warning
	BucketPolicyZero BucketPolicy = "zero"

	// BucketPolicyStrict fails the analysis on an empty bucket
	BucketPolicyStrict BucketPolicy = "strict"
)

// ParseBucketPolicy converts a config or flag value to a BucketPolicy
func ParseBucketPolicy(s string) (BucketPolicy, error) {
	switch BucketPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case BucketPolicyZero, "":
		return BucketPolicyZero, nil
	case BucketPolicyStrict:
		return BucketPolicyStrict, nil
	default:
		return "", fmt.Errorf("invalid bucket policy %q (must be zero or strict)", s)
	}
}
