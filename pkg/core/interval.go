package core

import "math"

// Interval is the half-open range [Min, Max) of ray parameters accepted as hits
type Interval struct {
	Min float64
	Max float64
}

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Forward returns [epsilon, +Inf), the usual interval for rays leaving a surface
func Forward(epsilon float64) Interval {
	return Interval{Min: epsilon, Max: math.Inf(1)}
}

// Contains reports whether t lies in the interval.
// NaN is never contained, and neither is +Inf since the upper bound is exclusive.
func (i Interval) Contains(t float64) bool {
	return i.Min <= t && t < i.Max
}
