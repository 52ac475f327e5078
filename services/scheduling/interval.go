package scheduling

import "time"

// Interval is a half-open time range [Start, End). It is the working
// unit of every availability computation and is never persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps checks whether two half-open intervals intersect.
// [a.Start, a.End) overlaps [b.Start, b.End) iff a.Start < b.End && b.Start < a.End
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Padded returns the interval expanded by the given buffers on each side
func (a Interval) Padded(before, after time.Duration) Interval {
	return Interval{
		Start: a.Start.Add(-before),
		End:   a.End.Add(after),
	}
}

// SameDate checks if two instants fall on the same calendar date
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
