package entities

import "textgraph/domain/core/valueobjects"

// Segment belongs to exactly one Segmentation and owns one or more spans.
// Pagination segments additionally carry a page-label reference.
type Segment struct {
	ID             string              `json:"id"`
	SegmentationID string              `json:"segmentation_id,omitempty"`
	Spans          []valueobjects.Span `json:"spans"`
	Reference      string              `json:"reference,omitempty"`
}

// MinStart returns the smallest span start, used for segment ordering
func (s Segment) MinStart() int {
	if len(s.Spans) == 0 {
		return 0
	}
	min := s.Spans[0].Start
	for _, sp := range s.Spans[1:] {
		if sp.Start < min {
			min = sp.Start
		}
	}
	return min
}

// MaxEnd returns the largest span end
func (s Segment) MaxEnd() int {
	max := 0
	for _, sp := range s.Spans {
		if sp.End > max {
			max = sp.End
		}
	}
	return max
}

// RelatedSegment is one traversal result: a segment on a reachable
// manifestation that corresponds to the queried span.
type RelatedSegment struct {
	ManifestationID string         `json:"manifestation_id"`
	SegmentationID  string         `json:"segmentation_id"`
	Layer           AnnotationKind `json:"layer"`
	Segment         Segment        `json:"segment"`
}
