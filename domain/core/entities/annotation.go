package entities

import (
	"encoding/json"
	"fmt"

	"textgraph/domain/core/valueobjects"
)

// AnnotationKind tags the variants of the annotation sum type
type AnnotationKind string

const (
	AnnotationKindSegmentation AnnotationKind = "segmentation"
	AnnotationKindPagination   AnnotationKind = "pagination"
	AnnotationKindAlignment    AnnotationKind = "alignment"
	AnnotationKindDurchen      AnnotationKind = "durchen"
	AnnotationKindBibliography AnnotationKind = "bibliographic"
)

// IsValid reports whether the kind is one of the closed set
func (k AnnotationKind) IsValid() bool {
	switch k {
	case AnnotationKindSegmentation, AnnotationKindPagination, AnnotationKindAlignment,
		AnnotationKindDurchen, AnnotationKindBibliography:
		return true
	}
	return false
}

// SegmentInput is one segment spec: one or more byte spans
type SegmentInput struct {
	Lines []valueobjects.Span `json:"lines" validate:"required,min=1"`
}

// SegmentationInput creates a plain segmentation layer
type SegmentationInput struct {
	Segments []SegmentInput `json:"segments" validate:"required,min=1,dive"`
}

// PageInput is one pagination segment with its page-label reference
type PageInput struct {
	Reference string              `json:"reference" validate:"required"`
	Lines     []valueobjects.Span `json:"lines" validate:"required,min=1"`
}

// VolumeInput groups the pages of one volume
type VolumeInput struct {
	Pages []PageInput `json:"pages" validate:"required,min=1,dive"`
}

// PaginationInput creates a pagination layer: a segmentation whose segments
// carry HAS_REFERENCE edges to page labels.
type PaginationInput struct {
	Volume VolumeInput `json:"volume" validate:"required"`
}

// AlignedSegmentInput is a source-side alignment segment together with the
// positions of its targets in AlignmentInput.TargetSegments.
type AlignedSegmentInput struct {
	Lines            []valueobjects.Span `json:"lines" validate:"required,min=1"`
	AlignmentIndices []int               `json:"alignment_indices" validate:"required,min=1"`
}

// AlignmentInput creates an alignment pair: a source segmentation on the
// manifestation being annotated and a target segmentation on the peer.
type AlignmentInput struct {
	TargetManifestationID string                `json:"target_manifestation_id" validate:"required"`
	TargetSegments        []SegmentInput        `json:"target_segments" validate:"required,min=1,dive"`
	AlignedSegments       []AlignedSegmentInput `json:"aligned_segments" validate:"required,min=1,dive"`
}

// NoteInput is one marginal note anchored by span
type NoteInput struct {
	Span     valueobjects.Span `json:"span"`
	NoteType string            `json:"note_type" validate:"required"`
	Content  string            `json:"content,omitempty"`
}

// BibliographyInput is one bibliographic metadata item anchored by span
type BibliographyInput struct {
	Span valueobjects.Span `json:"span"`
	Type string            `json:"type" validate:"required"`
	Text string            `json:"text,omitempty"`
}

// AnnotationInput is the tagged sum over annotation kinds. Exactly one
// variant field must be populated, matching Type.
type AnnotationInput struct {
	Type         AnnotationKind      `json:"type"`
	Segmentation *SegmentationInput  `json:"segmentation,omitempty"`
	Pagination   *PaginationInput    `json:"pagination,omitempty"`
	Alignment    *AlignmentInput     `json:"alignment,omitempty"`
	Notes        []NoteInput         `json:"notes,omitempty"`
	Bibliography []BibliographyInput `json:"bibliography,omitempty"`
}

// UnmarshalJSON dispatches on the sibling type field and rejects payloads
// whose variant does not match it.
func (a *AnnotationInput) UnmarshalJSON(data []byte) error {
	type alias AnnotationInput
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AnnotationInput(raw)
	if !a.Type.IsValid() {
		return fmt.Errorf("unknown annotation type %q", a.Type)
	}
	return a.CheckVariant()
}

// CheckVariant verifies that the populated variant matches Type
func (a *AnnotationInput) CheckVariant() error {
	var ok bool
	switch a.Type {
	case AnnotationKindSegmentation:
		ok = a.Segmentation != nil
	case AnnotationKindPagination:
		ok = a.Pagination != nil
	case AnnotationKindAlignment:
		ok = a.Alignment != nil
	case AnnotationKindDurchen:
		ok = len(a.Notes) > 0
	case AnnotationKindBibliography:
		ok = len(a.Bibliography) > 0
	}
	if !ok {
		return fmt.Errorf("annotation type %q has no matching payload", a.Type)
	}
	return nil
}

// Segmentation is a read-model segmentation layer. Segments are ordered by
// the minimum start of their spans; each segment's spans are ordered by start.
type Segmentation struct {
	ID              string         `json:"id"`
	ManifestationID string         `json:"manifestation_id"`
	Kind            AnnotationKind `json:"kind"`
	Segments        []Segment      `json:"segments"`
}

// Alignment is a read-model alignment pair. TargetSegments are enumerated in
// order of first mention by the sources; AlignmentIndices of each aligned
// segment index into that list.
type Alignment struct {
	ID                    string           `json:"id"`
	SourceSegmentationID  string           `json:"source_segmentation_id"`
	TargetSegmentationID  string           `json:"target_segmentation_id"`
	ManifestationID       string           `json:"manifestation_id"`
	TargetManifestationID string           `json:"target_manifestation_id"`
	TargetSegments        []Segment        `json:"target_segments"`
	AlignedSegments       []AlignedSegment `json:"aligned_segments"`
}

// AlignedSegment is a source-side segment with its resolved target positions
type AlignedSegment struct {
	Segment          Segment `json:"segment"`
	AlignmentIndices []int   `json:"alignment_indices"`
}

// Note is a read-model marginal note
type Note struct {
	ID              string            `json:"id"`
	ManifestationID string            `json:"manifestation_id"`
	NoteType        string            `json:"note_type"`
	Content         string            `json:"content,omitempty"`
	Span            valueobjects.Span `json:"span"`
}

// Bibliography is a read-model bibliographic metadata item
type Bibliography struct {
	ID              string            `json:"id"`
	ManifestationID string            `json:"manifestation_id"`
	Type            string            `json:"type"`
	Text            string            `json:"text,omitempty"`
	Span            valueobjects.Span `json:"span"`
}
