package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
)

// SegmentRepository resolves segments and runs the related-segment traversal
type SegmentRepository struct {
	client *Client
	logger *zap.Logger
}

// NewSegmentRepository creates a SegmentRepository
func NewSegmentRepository(client *Client, logger *zap.Logger) *SegmentRepository {
	return &SegmentRepository{client: client, logger: logger}
}

// RelatedQuery selects the traversal starting point: either a segment id or
// an explicit byte range on a manifestation. Exactly one of SegmentID and
// Span must be set.
type RelatedQuery struct {
	ManifestationID string
	SegmentID       string
	Start           int
	End             int
	HasSpan         bool
	Transfer        bool
}

// Related walks the alignment graph from the query's range and returns the
// corresponding segments on every transitively aligned manifestation. The
// whole walk runs in one read transaction.
func (r *SegmentRepository) Related(ctx context.Context, query RelatedQuery) ([]entities.RelatedSegment, error) {
	if query.SegmentID != "" && query.HasSpan {
		return nil, apperrors.NewInvalidRequestError("segment_id and span are mutually exclusive")
	}
	if query.SegmentID == "" && !query.HasSpan {
		return nil, apperrors.NewInvalidRequestError("either segment_id or span is required")
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		manifestationID := query.ManifestationID
		start, end := query.Start, query.End

		if query.SegmentID != "" {
			seg, segManifestationID, err := segmentSpansByID(ctx, tx, query.SegmentID)
			if err != nil {
				return nil, err
			}
			manifestationID = segManifestationID
			start, end = seg.MinStart(), seg.MaxEnd()
		} else {
			n, err := runCount(ctx, tx, catalog.CountManifestationsByID, map[string]interface{}{"id": manifestationID})
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, apperrors.NewNotFoundError("manifestation " + manifestationID)
			}
			if start < 0 || end < start {
				return nil, apperrors.NewInvalidRequestError("span must satisfy 0 <= start <= end")
			}
		}

		return traverseRelated(ctx, &txQuerier{tx: tx}, manifestationID, start, end, query.Transfer)
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.RelatedSegment), nil
}

// segmentSpansByID resolves one segment's spans and owning manifestation
func segmentSpansByID(ctx context.Context, tx neo4j.ManagedTransaction, segmentID string) (entities.Segment, string, error) {
	recs, err := runCollect(ctx, tx, catalog.SegmentSpansByID, map[string]interface{}{"id": segmentID})
	if err != nil {
		return entities.Segment{}, "", err
	}
	if len(recs) == 0 {
		return entities.Segment{}, "", apperrors.NewNotFoundError("segment " + segmentID)
	}
	rec := recs[0]
	return entities.Segment{
		ID:             stringVal(rec, "id"),
		SegmentationID: stringVal(rec, "segmentation_id"),
		Spans:          spansVal(rec, "spans"),
	}, stringVal(rec, "manifestation_id"), nil
}

// txQuerier answers traversal queries inside one read transaction
type txQuerier struct {
	tx neo4j.ManagedTransaction
}

func (q *txQuerier) AlignmentPairs(ctx context.Context, manifestationID string) ([]alignmentPair, error) {
	recs, err := runCollect(ctx, q.tx, catalog.AlignmentPairsOfManifestation, map[string]interface{}{"manifestation_id": manifestationID})
	if err != nil {
		return nil, err
	}
	pairs := make([]alignmentPair, 0, len(recs))
	for _, rec := range recs {
		pairs = append(pairs, alignmentPair{
			LocalID: stringVal(rec, "local_id"),
			PeerID:  stringVal(rec, "peer_id"),
		})
	}
	return pairs, nil
}

func (q *txQuerier) AlignedCounterparts(ctx context.Context, localID, peerID string, start, end int) ([]entities.Segment, error) {
	recs, err := runCollect(ctx, q.tx, catalog.AlignedCounterparts, map[string]interface{}{
		"segmentation_id":      localID,
		"peer_segmentation_id": peerID,
		"start":                start,
		"end":                  end,
	})
	if err != nil {
		return nil, err
	}
	segments := make([]entities.Segment, 0, len(recs))
	for _, rec := range recs {
		segments = append(segments, entities.Segment{
			ID:    stringVal(rec, "id"),
			Spans: spansVal(rec, "spans"),
		})
	}
	return segments, nil
}

func (q *txQuerier) ManifestationOf(ctx context.Context, segmentationID string) (string, error) {
	rec, err := runSingle(ctx, q.tx, catalog.ManifestationOfSegmentation, map[string]interface{}{"id": segmentationID})
	if err != nil {
		return "", err
	}
	return stringVal(rec, "id"), nil
}

func (q *txQuerier) SegmentationSegmentsInRange(ctx context.Context, manifestationID string, start, end int) (string, []entities.Segment, error) {
	recs, err := runCollect(ctx, q.tx, catalog.OverlappingSegmentationSegments, map[string]interface{}{
		"manifestation_id": manifestationID,
		"start":            start,
		"end":              end,
	})
	if err != nil {
		return "", nil, err
	}
	var segmentationID string
	segments := make([]entities.Segment, 0, len(recs))
	for _, rec := range recs {
		segmentationID = stringVal(rec, "segmentation_id")
		segments = append(segments, entities.Segment{
			ID:    stringVal(rec, "id"),
			Spans: spansVal(rec, "spans"),
		})
	}
	return segmentationID, segments, nil
}
