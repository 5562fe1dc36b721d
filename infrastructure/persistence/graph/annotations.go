package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/ids"
)

// Segmentation layer kinds stored on the Segmentation node's type property
const (
	layerSegmentation    = "segmentation"
	layerPagination      = "pagination"
	layerAlignmentSource = "alignment_source"
	layerAlignmentTarget = "alignment_target"
)

// addSegmentationWithTx creates a segmentation layer of the given kind with
// all its segments and spans inside the caller's transaction. Segment ids
// are returned in input order so pagination can attach references.
func addSegmentationWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, kind string, segments []entities.SegmentInput) (string, []string, error) {
	for _, seg := range segments {
		for _, sp := range seg.Lines {
			if err := sp.Validate(); err != nil {
				return "", nil, apperrors.NewValidationError(err.Error())
			}
		}
	}

	segmentationID := ids.New()
	if _, err := runSingle(ctx, tx, catalog.CreateSegmentation, map[string]interface{}{
		"manifestation_id": manifestationID,
		"id":               segmentationID,
		"type":             kind,
	}); err != nil {
		return "", nil, err
	}

	segmentIDs := make([]string, len(segments))
	unwound := make([]interface{}, len(segments))
	for i, seg := range segments {
		segmentIDs[i] = ids.New()
		spans := make([]interface{}, len(seg.Lines))
		for j, sp := range seg.Lines {
			spans[j] = map[string]interface{}{"start": sp.Start, "end": sp.End}
		}
		unwound[i] = map[string]interface{}{"id": segmentIDs[i], "spans": spans}
	}
	if err := runWrite(ctx, tx, catalog.CreateSegments, map[string]interface{}{
		"segmentation_id": segmentationID,
		"segments":        unwound,
	}); err != nil {
		return "", nil, err
	}

	return segmentationID, segmentIDs, nil
}

// AddSegmentationWithTx creates the plain segmentation layer, enforcing at
// most one per manifestation.
func AddSegmentationWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, input *entities.SegmentationInput) (string, error) {
	if err := validateNoAnnotation(ctx, tx, manifestationID, layerSegmentation); err != nil {
		return "", err
	}
	segmentationID, _, err := addSegmentationWithTx(ctx, tx, manifestationID, layerSegmentation, input.Segments)
	return segmentationID, err
}

// AddPaginationWithTx creates the pagination layer: a segmentation whose
// segments carry page-label references. At most one per manifestation.
func AddPaginationWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, input *entities.PaginationInput) (string, error) {
	if err := validateNoAnnotation(ctx, tx, manifestationID, layerPagination); err != nil {
		return "", err
	}

	segments := make([]entities.SegmentInput, len(input.Volume.Pages))
	for i, page := range input.Volume.Pages {
		segments[i] = entities.SegmentInput{Lines: page.Lines}
	}
	segmentationID, segmentIDs, err := addSegmentationWithTx(ctx, tx, manifestationID, layerPagination, segments)
	if err != nil {
		return "", err
	}

	refs := make([]interface{}, len(input.Volume.Pages))
	for i, page := range input.Volume.Pages {
		refs[i] = map[string]interface{}{
			"segment_id": segmentIDs[i],
			"reference":  page.Reference,
		}
	}
	if err := runWrite(ctx, tx, catalog.CreateSegmentReferences, map[string]interface{}{"refs": refs}); err != nil {
		return "", err
	}

	return segmentationID, nil
}

// DeleteSegmentationWithTx removes a segmentation layer and everything
// under it. A no-op when the id is absent.
func DeleteSegmentationWithTx(ctx context.Context, tx neo4j.ManagedTransaction, segmentationID string) error {
	return runWrite(ctx, tx, catalog.DeleteSegmentationSubgraph, map[string]interface{}{"id": segmentationID})
}

// AddNotesWithTx creates one typed, span-anchored note per input item
func AddNotesWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, notes []entities.NoteInput) ([]string, error) {
	noteIDs := make([]string, 0, len(notes))
	for _, note := range notes {
		if err := note.Span.Validate(); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		noteID := ids.New()
		if _, err := runSingle(ctx, tx, catalog.CreateNote, map[string]interface{}{
			"manifestation_id": manifestationID,
			"id":               noteID,
			"note_type":        note.NoteType,
			"content":          note.Content,
			"start":            note.Span.Start,
			"end":              note.Span.End,
		}); err != nil {
			return nil, err
		}
		noteIDs = append(noteIDs, noteID)
	}
	return noteIDs, nil
}

// AddBibliographyWithTx creates one typed, span-anchored bibliographic item
// per input item.
func AddBibliographyWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, items []entities.BibliographyInput) ([]string, error) {
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		if err := item.Span.Validate(); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		itemID := ids.New()
		if _, err := runSingle(ctx, tx, catalog.CreateBibliography, map[string]interface{}{
			"manifestation_id": manifestationID,
			"id":               itemID,
			"type":             item.Type,
			"text":             item.Text,
			"start":            item.Span.Start,
			"end":              item.Span.End,
		}); err != nil {
			return nil, err
		}
		itemIDs = append(itemIDs, itemID)
	}
	return itemIDs, nil
}

// addAnnotationWithTx dispatches one tagged annotation input onto its layer
// handler. Reused by manifestation create and update.
func addAnnotationWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, input entities.AnnotationInput) (string, error) {
	switch input.Type {
	case entities.AnnotationKindSegmentation:
		return AddSegmentationWithTx(ctx, tx, manifestationID, input.Segmentation)
	case entities.AnnotationKindPagination:
		return AddPaginationWithTx(ctx, tx, manifestationID, input.Pagination)
	case entities.AnnotationKindAlignment:
		return AddAlignmentWithTx(ctx, tx, manifestationID, input.Alignment)
	case entities.AnnotationKindDurchen:
		ids, err := AddNotesWithTx(ctx, tx, manifestationID, input.Notes)
		if err != nil || len(ids) == 0 {
			return "", err
		}
		return ids[0], nil
	case entities.AnnotationKindBibliography:
		ids, err := AddBibliographyWithTx(ctx, tx, manifestationID, input.Bibliography)
		if err != nil || len(ids) == 0 {
			return "", err
		}
		return ids[0], nil
	}
	return "", apperrors.NewUnprocessableError(fmt.Sprintf("unknown annotation type %q", input.Type))
}
