package analyzer

import (
	"github.com/yildizm/irsum/internal/parser"
)

// DefaultRepeatFactor is how many times the running average a space must
// exceed to count as a repeat marker
const DefaultRepeatFactor = 10

// signal is a raw button with at least one pulse
type signal struct {
	index int
	name  string
	raw   *parser.RawButton
}

func (s signal) preamble() parser.Pulse {
	return s.raw.Data[0]
}

// pulses returns the post-preamble pulses
func (s signal) pulses() []parser.Pulse {
	return s.raw.Data[1:]
}

// split cuts the post-preamble pulses at the scan-wide marker index
func (s signal) split(marker *RepeatMarker) (bits, extra []parser.Pulse) {
	pulses := s.pulses()
	cut := len(pulses)
	if marker != nil && marker.Index < cut {
		cut = marker.Index
	}
	return pulses[:cut], pulses[cut:]
}

// findRepeatMarker scans the spaces of all post-preamble pulses, button by
// button, and returns the first one exceeding factor times the average of
// the spaces before it. Nil means every pulse is bit data.
func findRepeatMarker(signals []signal, factor uint32) *RepeatMarker {
	var running Metrics
	index := 0
	for _, s := range signals {
		for i, p := range s.pulses() {
			if !running.Empty() && uint64(p.Space) > uint64(factor)*uint64(running.Average()) {
				next := running.Add(p.Space)
				return &RepeatMarker{
					Button:             s.name,
					ButtonIndex:        s.index,
					Index:              index,
					Offset:             i,
					Space:              p.Space,
					LongSpaceThreshold: next.Max / 2,
				}
			}
			running = running.Add(p.Space)
			index++
		}
	}
	return nil
}
