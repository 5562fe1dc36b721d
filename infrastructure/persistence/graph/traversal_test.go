package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textgraph/domain/core/entities"
	"textgraph/domain/core/valueobjects"
)

// fakeQuerier serves a hand-built alignment graph to the traversal
type fakeQuerier struct {
	pairs         map[string][]alignmentPair
	counterparts  map[string][]entities.Segment
	owners        map[string]string
	segmentations map[string][]entities.Segment
}

func (f *fakeQuerier) AlignmentPairs(ctx context.Context, manifestationID string) ([]alignmentPair, error) {
	return f.pairs[manifestationID], nil
}

func (f *fakeQuerier) AlignedCounterparts(ctx context.Context, localID, peerID string, start, end int) ([]entities.Segment, error) {
	var hits []entities.Segment
	for _, seg := range f.counterparts[localID+">"+peerID] {
		hits = append(hits, seg)
	}
	_ = start
	_ = end
	return hits, nil
}

func (f *fakeQuerier) ManifestationOf(ctx context.Context, segmentationID string) (string, error) {
	return f.owners[segmentationID], nil
}

func (f *fakeQuerier) SegmentationSegmentsInRange(ctx context.Context, manifestationID string, start, end int) (string, []entities.Segment, error) {
	return "seg-layer-" + manifestationID, f.segmentations[manifestationID], nil
}

func span(start, end int) valueobjects.Span {
	return valueobjects.Span{Start: start, End: end}
}

// Three editions aligned in a chain: m1 -- m2 -- m3. A query on m1 must
// reach m3 through m2 with the range carried along.
func chainQuerier() *fakeQuerier {
	return &fakeQuerier{
		pairs: map[string][]alignmentPair{
			"m1": {{LocalID: "a1", PeerID: "a2"}},
			"m2": {{LocalID: "a2", PeerID: "a1"}, {LocalID: "b1", PeerID: "b2"}},
			"m3": {{LocalID: "b2", PeerID: "b1"}},
		},
		counterparts: map[string][]entities.Segment{
			"a1>a2": {{ID: "s2", Spans: []valueobjects.Span{span(10, 20)}}},
			"b1>b2": {{ID: "s3", Spans: []valueobjects.Span{span(40, 55)}}},
		},
		owners: map[string]string{
			"a1": "m1", "a2": "m2",
			"b1": "m2", "b2": "m3",
		},
		segmentations: map[string][]entities.Segment{
			"m2": {{ID: "p2", Spans: []valueobjects.Span{span(12, 18)}}},
			"m3": {{ID: "p3", Spans: []valueobjects.Span{span(41, 50)}}},
		},
	}
}

func TestTraverseRelatedCrossesChain(t *testing.T) {
	related, err := traverseRelated(context.Background(), chainQuerier(), "m1", 0, 5, false)
	require.NoError(t, err)
	require.Len(t, related, 2)

	assert.Equal(t, "m2", related[0].ManifestationID)
	assert.Equal(t, "a2", related[0].SegmentationID)
	assert.Equal(t, entities.AnnotationKindAlignment, related[0].Layer)
	assert.Equal(t, "s2", related[0].Segment.ID)

	assert.Equal(t, "m3", related[1].ManifestationID)
	assert.Equal(t, "s3", related[1].Segment.ID)
}

func TestTraverseRelatedTransfersOntoSegmentationLayer(t *testing.T) {
	related, err := traverseRelated(context.Background(), chainQuerier(), "m1", 0, 5, true)
	require.NoError(t, err)
	require.Len(t, related, 2)

	assert.Equal(t, "m2", related[0].ManifestationID)
	assert.Equal(t, "seg-layer-m2", related[0].SegmentationID)
	assert.Equal(t, entities.AnnotationKindSegmentation, related[0].Layer)
	assert.Equal(t, "p2", related[0].Segment.ID)

	assert.Equal(t, "p3", related[1].Segment.ID)
}

func TestTraverseRelatedDoesNotRevisit(t *testing.T) {
	// m1 and m2 aligned both ways through the same pair; the walk must
	// cross the pair once and never return to m1
	q := &fakeQuerier{
		pairs: map[string][]alignmentPair{
			"m1": {{LocalID: "a1", PeerID: "a2"}},
			"m2": {{LocalID: "a2", PeerID: "a1"}},
		},
		counterparts: map[string][]entities.Segment{
			"a1>a2": {{ID: "s2", Spans: []valueobjects.Span{span(0, 9)}}},
			"a2>a1": {{ID: "s1", Spans: []valueobjects.Span{span(0, 9)}}},
		},
		owners: map[string]string{"a1": "m1", "a2": "m2"},
	}
	related, err := traverseRelated(context.Background(), q, "m1", 0, 5, false)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "s2", related[0].Segment.ID)
}

func TestTraverseRelatedStopsWhenNothingOverlaps(t *testing.T) {
	q := &fakeQuerier{
		pairs: map[string][]alignmentPair{
			"m1": {{LocalID: "a1", PeerID: "a2"}},
		},
		counterparts: map[string][]entities.Segment{},
		owners:       map[string]string{"a1": "m1", "a2": "m2"},
	}
	related, err := traverseRelated(context.Background(), q, "m1", 0, 5, false)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestTraverseRelatedHullGrowsAcrossHops(t *testing.T) {
	// the first hop matches two counterpart segments; the carried range on
	// m2 must be their hull [10, 60), not either segment alone
	q := chainQuerier()
	q.counterparts["a1>a2"] = []entities.Segment{
		{ID: "s2a", Spans: []valueobjects.Span{span(10, 20)}},
		{ID: "s2b", Spans: []valueobjects.Span{span(50, 60)}},
	}
	var captured []int
	q.counterparts["b1>b2"] = nil
	wrapped := &rangeCapturingQuerier{inner: q, captured: &captured}

	_, err := traverseRelated(context.Background(), wrapped, "m1", 0, 5, false)
	require.NoError(t, err)
	require.Len(t, captured, 4)
	assert.Equal(t, []int{0, 5, 10, 60}, captured)
}

// rangeCapturingQuerier records the range of every counterpart lookup
type rangeCapturingQuerier struct {
	inner    *fakeQuerier
	captured *[]int
}

func (w *rangeCapturingQuerier) AlignmentPairs(ctx context.Context, manifestationID string) ([]alignmentPair, error) {
	return w.inner.AlignmentPairs(ctx, manifestationID)
}

func (w *rangeCapturingQuerier) AlignedCounterparts(ctx context.Context, localID, peerID string, start, end int) ([]entities.Segment, error) {
	*w.captured = append(*w.captured, start, end)
	return w.inner.AlignedCounterparts(ctx, localID, peerID, start, end)
}

func (w *rangeCapturingQuerier) ManifestationOf(ctx context.Context, segmentationID string) (string, error) {
	return w.inner.ManifestationOf(ctx, segmentationID)
}

func (w *rangeCapturingQuerier) SegmentationSegmentsInRange(ctx context.Context, manifestationID string, start, end int) (string, []entities.Segment, error) {
	return w.inner.SegmentationSegmentsInRange(ctx, manifestationID, start, end)
}
