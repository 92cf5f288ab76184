package analyzer

import (
	"fmt"
	"strings"

	"github.com/yildizm/irsum/internal/parser"
)

// DefaultGroupSize is the number of bits per displayed group
const DefaultGroupSize = 8

// decodeBits emits one bit per pulse, reading the mark or the space
// depending on the modulation
func decodeBits(pulses []parser.Pulse, mod Modulation, div Timing) string {
	var sb strings.Builder
	sb.Grow(len(pulses))
	for _, p := range pulses {
		zero := p.Space <= div.Space
		if mod == ModulationPWM {
			zero = p.Mark <= div.Mark
		}
		if zero {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// groupBits splits bits into chunks of size; the last chunk may be shorter
func groupBits(bits string, size int) []string {
	if bits == "" {
		return nil
	}
	groups := make([]string, 0, (len(bits)+size-1)/size)
	for len(bits) > size {
		groups = append(groups, bits[:size])
		bits = bits[size:]
	}
	return append(groups, bits)
}

// bitsToHex renders every complete byte MSB first. Trailing bits that do
// not fill a byte are left out.
func bitsToHex(bits string) string {
	var sb strings.Builder
	for len(bits) >= 8 {
		var b byte
		for i := 0; i < 8; i++ {
			b <<= 1
			if bits[i] == '1' {
				b |= 1
			}
		}
		fmt.Fprintf(&sb, "%02X", b)
		bits = bits[8:]
	}
	return sb.String()
}

// extraValues flattens the pulses past the repeat marker and appends the
// trailing mark
func extraValues(extra []parser.Pulse, finalOn *uint32) []uint32 {
	if len(extra) == 0 && finalOn == nil {
		return nil
	}
	values := make([]uint32, 0, 2*len(extra)+1)
	for _, p := range extra {
		values = append(values, p.Mark, p.Space)
	}
	if finalOn != nil {
		values = append(values, *finalOn)
	}
	return values
}
