package graph

import (
	"context"

	"textgraph/domain/core/entities"
)

// Related-segment traversal. Starting from a byte range on one
// manifestation, the walk crosses alignment pairs breadth-first to every
// transitively aligned edition, carrying the range along: on each hop the
// range becomes the hull of the counterpart segments it matched, so it can
// only grow, never shrink.

// alignmentPair is one (local, peer) alignment layer pair of a manifestation
type alignmentPair struct {
	LocalID string
	PeerID  string
}

// traversalQuerier is the graph access the walk needs. Implemented by
// SegmentRepository over one read transaction; faked in tests.
type traversalQuerier interface {
	// AlignmentPairs lists every alignment layer pair attached to the
	// manifestation, in either direction.
	AlignmentPairs(ctx context.Context, manifestationID string) ([]alignmentPair, error)
	// AlignedCounterparts resolves segments of the local layer intersecting
	// [start, end) to their counterparts in the peer layer.
	AlignedCounterparts(ctx context.Context, localID, peerID string, start, end int) ([]entities.Segment, error)
	// ManifestationOf resolves a layer's owning manifestation.
	ManifestationOf(ctx context.Context, segmentationID string) (string, error)
	// SegmentationSegmentsInRange returns the segments of the
	// manifestation's plain segmentation layer intersecting [start, end).
	SegmentationSegmentsInRange(ctx context.Context, manifestationID string, start, end int) (string, []entities.Segment, error)
}

// traverseRelated walks the alignment graph breadth-first from the given
// range. With transfer set, each reached edition reports the segments of its
// plain segmentation layer covering the carried range instead of the raw
// alignment segments.
func traverseRelated(ctx context.Context, q traversalQuerier, manifestationID string, start, end int, transfer bool) ([]entities.RelatedSegment, error) {
	type frame struct {
		manifestationID string
		start, end      int
	}
	queue := []frame{{manifestationID, start, end}}
	visited := map[string]bool{manifestationID: true}
	traversed := map[[2]string]bool{}

	results := []entities.RelatedSegment{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pairs, err := q.AlignmentPairs(ctx, cur.manifestationID)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			key := [2]string{pair.LocalID, pair.PeerID}
			if traversed[key] {
				continue
			}

			counterparts, err := q.AlignedCounterparts(ctx, pair.LocalID, pair.PeerID, cur.start, cur.end)
			if err != nil {
				return nil, err
			}
			if len(counterparts) == 0 {
				continue
			}
			sortSegments(counterparts)

			peerStart, peerEnd := counterparts[0].MinStart(), 0
			for _, seg := range counterparts {
				if seg.MinStart() < peerStart {
					peerStart = seg.MinStart()
				}
				if seg.MaxEnd() > peerEnd {
					peerEnd = seg.MaxEnd()
				}
			}

			peerManifestationID, err := q.ManifestationOf(ctx, pair.PeerID)
			if err != nil {
				return nil, err
			}
			if visited[peerManifestationID] {
				continue
			}
			visited[peerManifestationID] = true
			traversed[key] = true
			traversed[[2]string{pair.PeerID, pair.LocalID}] = true
			queue = append(queue, frame{peerManifestationID, peerStart, peerEnd})

			if transfer {
				segmentationID, segments, err := q.SegmentationSegmentsInRange(ctx, peerManifestationID, peerStart, peerEnd)
				if err != nil {
					return nil, err
				}
				sortSegments(segments)
				for _, seg := range segments {
					results = append(results, entities.RelatedSegment{
						ManifestationID: peerManifestationID,
						SegmentationID:  segmentationID,
						Layer:           entities.AnnotationKindSegmentation,
						Segment:         seg,
					})
				}
				continue
			}
			for _, seg := range counterparts {
				results = append(results, entities.RelatedSegment{
					ManifestationID: peerManifestationID,
					SegmentationID:  pair.PeerID,
					Layer:           entities.AnnotationKindAlignment,
					Segment:         seg,
				})
			}
		}
	}
	return results, nil
}
