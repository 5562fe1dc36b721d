package valueobjects

import "errors"

// Span is a half-open byte range [Start, End) into a manifestation's base text.
// Spans are value objects: immutable and compared by value.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan creates a validated span
func NewSpan(start, end int) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate checks the span invariants: 0 <= Start <= End
func (s Span) Validate() error {
	if s.Start < 0 {
		return errors.New("span start must not be negative")
	}
	if s.Start > s.End {
		return errors.New("span start must not exceed span end")
	}
	return nil
}

// Length returns the number of bytes covered by the span
func (s Span) Length() int {
	return s.End - s.Start
}

// Overlaps reports whether the span intersects the half-open range [start, end)
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && start < s.End
}

// Contains reports whether the byte offset falls inside the span
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}
