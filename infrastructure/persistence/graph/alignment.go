package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
)

// AddAlignmentWithTx creates both halves of an alignment: the source
// segmentation on the annotated manifestation, the target segmentation on
// the peer, the PAIRED_WITH link and the ALIGNED_TO segment edges. Returns
// the source segmentation's id, which identifies the alignment.
func AddAlignmentWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, input *entities.AlignmentInput) (string, error) {
	if input.TargetManifestationID == manifestationID {
		return "", apperrors.NewValidationError("an alignment cannot target its own manifestation")
	}
	n, err := runCount(ctx, tx, catalog.CountManifestationsByID, map[string]interface{}{"id": input.TargetManifestationID})
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", apperrors.NewValidationError("manifestation " + input.TargetManifestationID + " does not exist")
	}
	if err := validateNoAlignmentBetween(ctx, tx, manifestationID, input.TargetManifestationID); err != nil {
		return "", err
	}
	for _, seg := range input.AlignedSegments {
		for _, idx := range seg.AlignmentIndices {
			if idx < 0 || idx >= len(input.TargetSegments) {
				return "", apperrors.NewValidationError(fmt.Sprintf("alignment index %d out of range", idx))
			}
		}
	}

	targetID, targetSegIDs, err := addSegmentationWithTx(ctx, tx, input.TargetManifestationID, layerAlignmentTarget, input.TargetSegments)
	if err != nil {
		return "", err
	}

	sourceSegments := make([]entities.SegmentInput, len(input.AlignedSegments))
	for i, seg := range input.AlignedSegments {
		sourceSegments[i] = entities.SegmentInput{Lines: seg.Lines}
	}
	sourceID, sourceSegIDs, err := addSegmentationWithTx(ctx, tx, manifestationID, layerAlignmentSource, sourceSegments)
	if err != nil {
		return "", err
	}

	if err := runWrite(ctx, tx, catalog.PairSegmentations, map[string]interface{}{
		"source_id": sourceID,
		"target_id": targetID,
	}); err != nil {
		return "", err
	}

	var edges []interface{}
	for i, seg := range input.AlignedSegments {
		for _, idx := range seg.AlignmentIndices {
			edges = append(edges, map[string]interface{}{
				"source_id": sourceSegIDs[i],
				"target_id": targetSegIDs[idx],
			})
		}
	}
	if err := runWrite(ctx, tx, catalog.CreateAlignmentEdges, map[string]interface{}{"edges": edges}); err != nil {
		return "", err
	}

	return sourceID, nil
}

// segmentationMeta is the resolved identity of one segmentation layer
type segmentationMeta struct {
	id              string
	kind            string
	manifestationID string
	peerID          string
}

// getSegmentationMeta resolves a layer's type, owner and alignment peer.
// Returns a not-found error when the id is absent.
func getSegmentationMeta(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*segmentationMeta, error) {
	recs, err := runCollect(ctx, tx, catalog.GetSegmentationMeta, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.NewNotFoundError("annotation " + id)
	}
	rec := recs[0]
	return &segmentationMeta{
		id:              stringVal(rec, "id"),
		kind:            stringVal(rec, "type"),
		manifestationID: stringVal(rec, "manifestation_id"),
		peerID:          stringVal(rec, "peer_id"),
	}, nil
}

// getSegmentationSegments reads all segments of a layer, ordered for reading
func getSegmentationSegments(ctx context.Context, tx neo4j.ManagedTransaction, segmentationID string) ([]entities.Segment, error) {
	recs, err := runCollect(ctx, tx, catalog.GetSegmentationSegments, map[string]interface{}{"id": segmentationID})
	if err != nil {
		return nil, err
	}
	segments := make([]entities.Segment, 0, len(recs))
	for _, rec := range recs {
		segments = append(segments, entities.Segment{
			ID:        stringVal(rec, "id"),
			Reference: stringVal(rec, "reference"),
			Spans:     spansVal(rec, "spans"),
		})
	}
	sortSegments(segments)
	return segments, nil
}

// readAlignment assembles the alignment read model from either side's id.
// The alignment must be a paired alignment layer.
func readAlignment(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*entities.Alignment, error) {
	meta, err := getSegmentationMeta(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if meta.peerID == "" {
		return nil, apperrors.NewNotFoundError("alignment " + id)
	}

	source, target := meta, (*segmentationMeta)(nil)
	peer, err := getSegmentationMeta(ctx, tx, meta.peerID)
	if err != nil {
		return nil, err
	}
	if meta.kind == layerAlignmentTarget {
		source, target = peer, meta
	} else {
		target = peer
	}

	sourceSegs, err := getSegmentationSegments(ctx, tx, source.id)
	if err != nil {
		return nil, err
	}
	targetSegs, err := getSegmentationSegments(ctx, tx, target.id)
	if err != nil {
		return nil, err
	}

	recs, err := runCollect(ctx, tx, catalog.GetAlignmentEdges, map[string]interface{}{
		"source_id": source.id,
		"target_id": target.id,
	})
	if err != nil {
		return nil, err
	}
	edges := make(map[string][]string, len(recs))
	for _, rec := range recs {
		src := stringVal(rec, "source_id")
		edges[src] = append(edges[src], stringVal(rec, "target_id"))
	}

	orderedTargets, aligned := assembleAlignment(sourceSegs, targetSegs, edges)

	return &entities.Alignment{
		ID:                    source.id,
		SourceSegmentationID:  source.id,
		TargetSegmentationID:  target.id,
		ManifestationID:       source.manifestationID,
		TargetManifestationID: target.manifestationID,
		TargetSegments:        orderedTargets,
		AlignedSegments:       aligned,
	}, nil
}

// deleteAlignmentWithTx removes both halves of an alignment. Errors with
// not-found when the id does not name a paired alignment layer.
func deleteAlignmentWithTx(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	meta, err := getSegmentationMeta(ctx, tx, id)
	if err != nil {
		return err
	}
	if meta.peerID == "" || (meta.kind != layerAlignmentSource && meta.kind != layerAlignmentTarget) {
		return apperrors.NewNotFoundError("alignment " + id)
	}
	if err := runWrite(ctx, tx, catalog.DeleteSegmentationSubgraph, map[string]interface{}{"id": meta.peerID}); err != nil {
		return err
	}
	return runWrite(ctx, tx, catalog.DeleteSegmentationSubgraph, map[string]interface{}{"id": meta.id})
}
