package analyzer

import (
	"fmt"

	"github.com/yildizm/irsum/internal/common"
)

// buckets holds the bit-region statistics the classifier works from
type buckets struct {
	marks  Metrics
	spaces Metrics

	bit0Mark  Metrics
	bit1Mark  Metrics
	bit0Space Metrics
	bit1Space Metrics
}

// dividers returns the mark and space midpoints of the bit region
func (b buckets) dividers() Timing {
	return Timing{Mark: b.marks.Midpoint(), Space: b.spaces.Midpoint()}
}

func (b buckets) bit0() Timing {
	return Timing{Mark: b.bit0Mark.Average(), Space: b.bit0Space.Average()}
}

func (b buckets) bit1() Timing {
	return Timing{Mark: b.bit1Mark.Average(), Space: b.bit1Space.Average()}
}

// empty names the buckets that received no value
func (b buckets) empty() []string {
	var names []string
	for _, bucket := range []struct {
		name string
		m    Metrics
	}{
		{"bit0 mark", b.bit0Mark},
		{"bit0 space", b.bit0Space},
		{"bit1 mark", b.bit1Mark},
		{"bit1 space", b.bit1Space},
	} {
		if bucket.m.Empty() {
			names = append(names, bucket.name)
		}
	}
	return names
}

// fillBuckets derives the dividers from the bit region and sorts every
// bit-region mark and space into its bit0 or bit1 bucket
func fillBuckets(signals []signal, marker *RepeatMarker) buckets {
	var b buckets
	for _, s := range signals {
		bits, _ := s.split(marker)
		for _, p := range bits {
			b.marks = b.marks.Add(p.Mark)
			b.spaces = b.spaces.Add(p.Space)
		}
	}

	div := b.dividers()
	for _, s := range signals {
		bits, _ := s.split(marker)
		for _, p := range bits {
			if p.Mark <= div.Mark {
				b.bit0Mark = b.bit0Mark.Add(p.Mark)
			} else {
				b.bit1Mark = b.bit1Mark.Add(p.Mark)
			}
			if p.Space <= div.Space {
				b.bit0Space = b.bit0Space.Add(p.Space)
			} else {
				b.bit1Space = b.bit1Space.Add(p.Space)
			}
		}
	}
	return b
}

// applyPolicy turns empty buckets into warnings or an error
func applyPolicy(b buckets, policy BucketPolicy) ([]string, error) {
	empty := b.empty()
	if len(empty) == 0 {
		return nil, nil
	}
	if policy == BucketPolicyStrict {
		return nil, common.Errorf(common.ErrTypeDegenerateBucket,
			"empty %s bucket after thresholding", empty[0])
	}

	warnings := make([]string, 0, len(empty))
	for _, name := range empty {
		warnings = append(warnings, fmt.Sprintf("%s bucket is empty, averaged as 0", name))
	}
	return warnings, nil
}

// classify picks PWM only when the mark spread is strictly larger than the
// space spread
func classify(bit0, bit1 Timing) Modulation {
	deltaMark := saturatingSub(bit1.Mark, bit0.Mark)
	deltaSpace := saturatingSub(bit1.Space, bit0.Space)
	if deltaMark > deltaSpace {
		return ModulationPWM
	}
	return ModulationPDM
}

func saturatingSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
