package analyzer

// Metrics is a running count/sum/min/max over timing values. It is a value
// type: Add returns the updated metrics and leaves the receiver untouched.
type Metrics struct {
	Count int    `json:"count"`
	Sum   uint64 `json:"sum"`
	Min   uint32 `json:"min"`
	Max   uint32 `json:"max"`
}

// Add returns the metrics with v included
func (m Metrics) Add(v uint32) Metrics {
	if m.Count == 0 {
		return Metrics{Count: 1, Sum: uint64(v), Min: v, Max: v}
	}
	m.Count++
	m.Sum += uint64(v)
	if v < m.Min {
		m.Min = v
	}
	if v > m.Max {
		m.Max = v
	}
	return m
}

// Empty reports whether no value has been added
func (m Metrics) Empty() bool {
	return m.Count == 0
}

// Average is the integer mean, 0 when empty
func (m Metrics) Average() uint32 {
	if m.Count == 0 {
		return 0
	}
	return uint32(m.Sum / uint64(m.Count))
}

// Midpoint is (min + max) / 2 with integer division
func (m Metrics) Midpoint() uint32 {
	return uint32((uint64(m.Min) + uint64(m.Max)) / 2)
}

// Fold adds every value in order
func Fold(m Metrics, values ...uint32) Metrics {
	for _, v := range values {
		m = m.Add(v)
	}
	return m
}
