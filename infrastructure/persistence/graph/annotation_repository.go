package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/domain/core/valueobjects"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
)

// AnnotationRepository manages the annotation layers of manifestations:
// segmentations, paginations, alignments, notes and bibliographic metadata.
type AnnotationRepository struct {
	client *Client
	logger *zap.Logger
}

// NewAnnotationRepository creates an AnnotationRepository
func NewAnnotationRepository(client *Client, logger *zap.Logger) *AnnotationRepository {
	return &AnnotationRepository{client: client, logger: logger}
}

// Add creates one annotation layer on a manifestation and returns its id
func (r *AnnotationRepository) Add(ctx context.Context, manifestationID string, input entities.AnnotationInput) (string, error) {
	result, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.CountManifestationsByID, map[string]interface{}{"id": manifestationID})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apperrors.NewNotFoundError("manifestation " + manifestationID)
		}
		return addAnnotationWithTx(ctx, tx, manifestationID, input)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// GetSegmentation reads a segmentation or pagination layer with its ordered
// segments.
func (r *AnnotationRepository) GetSegmentation(ctx context.Context, id string) (*entities.Segmentation, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		meta, err := getSegmentationMeta(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if meta.kind != layerSegmentation && meta.kind != layerPagination {
			return nil, apperrors.NewNotFoundError("segmentation " + id)
		}
		segments, err := getSegmentationSegments(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		kind := entities.AnnotationKindSegmentation
		if meta.kind == layerPagination {
			kind = entities.AnnotationKindPagination
		}
		return &entities.Segmentation{
			ID:              meta.id,
			ManifestationID: meta.manifestationID,
			Kind:            kind,
			Segments:        segments,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Segmentation), nil
}

// GetAlignment reads an alignment by either side's segmentation id
func (r *AnnotationRepository) GetAlignment(ctx context.Context, id string) (*entities.Alignment, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return readAlignment(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Alignment), nil
}

// DeleteSegmentation removes a segmentation or pagination layer. Alignment
// halves are refused here; they can only be removed through the alignment
// path, which deletes both sides together. A no-op when the id is absent.
func (r *AnnotationRepository) DeleteSegmentation(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetSegmentationMeta, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, nil
		}
		kind := stringVal(recs[0], "type")
		if kind == layerAlignmentSource || kind == layerAlignmentTarget {
			return nil, apperrors.NewValidationError("annotation " + id + " belongs to an alignment; delete the alignment instead")
		}
		return nil, runWrite(ctx, tx, catalog.DeleteSegmentationSubgraph, map[string]interface{}{"id": id})
	})
	return err
}

// DeleteAlignment removes both halves of an alignment. Errors with not-found
// when the id does not name an alignment layer.
func (r *AnnotationRepository) DeleteAlignment(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return nil, deleteAlignmentWithTx(ctx, tx, id)
	})
	return err
}

// UpdateAlignment replaces an alignment wholesale: both existing halves are
// deleted and the new pair is created in the same transaction. Returns the
// new source segmentation id.
func (r *AnnotationRepository) UpdateAlignment(ctx context.Context, id string, input *entities.AlignmentInput) (string, error) {
	result, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		meta, err := getSegmentationMeta(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if meta.peerID == "" || (meta.kind != layerAlignmentSource && meta.kind != layerAlignmentTarget) {
			return nil, apperrors.NewNotFoundError("alignment " + id)
		}
		manifestationID := meta.manifestationID
		if meta.kind == layerAlignmentTarget {
			peer, err := getSegmentationMeta(ctx, tx, meta.peerID)
			if err != nil {
				return nil, err
			}
			manifestationID = peer.manifestationID
		}
		if err := deleteAlignmentWithTx(ctx, tx, id); err != nil {
			return nil, err
		}
		return AddAlignmentWithTx(ctx, tx, manifestationID, input)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// GetNote reads one note
func (r *AnnotationRepository) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetNote, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, apperrors.NewNotFoundError("note " + id)
		}
		return noteFromRecord(recs[0], ""), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Note), nil
}

// ListNotes lists the notes of a manifestation ordered by span start
func (r *AnnotationRepository) ListNotes(ctx context.Context, manifestationID string) ([]entities.Note, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetNotesOfManifestation, map[string]interface{}{"manifestation_id": manifestationID})
		if err != nil {
			return nil, err
		}
		notes := make([]entities.Note, 0, len(recs))
		for _, rec := range recs {
			notes = append(notes, *noteFromRecord(rec, manifestationID))
		}
		return notes, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Note), nil
}

// DeleteNote removes a note. A no-op when the id is absent.
func (r *AnnotationRepository) DeleteNote(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return nil, runWrite(ctx, tx, catalog.DeleteNoteSubgraph, map[string]interface{}{"id": id})
	})
	return err
}

// GetBibliography reads one bibliographic metadata item
func (r *AnnotationRepository) GetBibliography(ctx context.Context, id string) (*entities.Bibliography, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetBibliography, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, apperrors.NewNotFoundError("bibliography " + id)
		}
		return bibliographyFromRecord(recs[0], ""), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Bibliography), nil
}

// ListBibliography lists the bibliographic items of a manifestation
func (r *AnnotationRepository) ListBibliography(ctx context.Context, manifestationID string) ([]entities.Bibliography, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetBibliographyOfManifestation, map[string]interface{}{"manifestation_id": manifestationID})
		if err != nil {
			return nil, err
		}
		items := make([]entities.Bibliography, 0, len(recs))
		for _, rec := range recs {
			items = append(items, *bibliographyFromRecord(rec, manifestationID))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.Bibliography), nil
}

// DeleteBibliography removes a bibliographic item. A no-op when absent.
func (r *AnnotationRepository) DeleteBibliography(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return nil, runWrite(ctx, tx, catalog.DeleteBibliographySubgraph, map[string]interface{}{"id": id})
	})
	return err
}

func noteFromRecord(rec *neo4j.Record, manifestationID string) *entities.Note {
	if manifestationID == "" {
		manifestationID = stringVal(rec, "manifestation_id")
	}
	return &entities.Note{
		ID:              stringVal(rec, "id"),
		ManifestationID: manifestationID,
		NoteType:        stringVal(rec, "note_type"),
		Content:         stringVal(rec, "content"),
		Span: valueobjects.Span{
			Start: intVal(rec, "start"),
			End:   intVal(rec, "end"),
		},
	}
}

func bibliographyFromRecord(rec *neo4j.Record, manifestationID string) *entities.Bibliography {
	if manifestationID == "" {
		manifestationID = stringVal(rec, "manifestation_id")
	}
	return &entities.Bibliography{
		ID:              stringVal(rec, "id"),
		ManifestationID: manifestationID,
		Type:            stringVal(rec, "type"),
		Text:            stringVal(rec, "text"),
		Span: valueobjects.Span{
			Start: intVal(rec, "start"),
			End:   intVal(rec, "end"),
		},
	}
}
