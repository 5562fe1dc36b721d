package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"textgraph/domain/core/entities"
	"textgraph/domain/core/valueobjects"
)

func seg(id string, spans ...valueobjects.Span) entities.Segment {
	return entities.Segment{ID: id, Spans: spans}
}

func TestSortSegmentsOrdersByMinSpanStart(t *testing.T) {
	segments := []entities.Segment{
		seg("b", valueobjects.Span{Start: 10, End: 20}),
		seg("a", valueobjects.Span{Start: 7, End: 9}, valueobjects.Span{Start: 0, End: 5}),
	}

	sortSegments(segments)

	assert.Equal(t, "a", segments[0].ID)
	assert.Equal(t, valueobjects.Span{Start: 0, End: 5}, segments[0].Spans[0])
	assert.Equal(t, "b", segments[1].ID)
}

func TestAssembleAlignmentFirstMentionOrder(t *testing.T) {
	sources := []entities.Segment{
		seg("src2", valueobjects.Span{Start: 10, End: 20}),
		seg("src1", valueobjects.Span{Start: 0, End: 5}),
	}
	targets := []entities.Segment{
		seg("tA", valueobjects.Span{Start: 0, End: 3}),
		seg("tB", valueobjects.Span{Start: 5, End: 8}),
	}
	edges := map[string][]string{
		"src1": {"tB", "tA"},
		"src2": {"tA"},
	}

	ordered, aligned := assembleAlignment(sources, targets, edges)

	// src1 mentions tA first (smaller start), so tA takes position 0.
	assert.Equal(t, []string{"tA", "tB"}, []string{ordered[0].ID, ordered[1].ID})

	assert.Equal(t, "src1", aligned[0].Segment.ID)
	assert.Equal(t, []int{0, 1}, aligned[0].AlignmentIndices)
	assert.Equal(t, "src2", aligned[1].Segment.ID)
	assert.Equal(t, []int{0}, aligned[1].AlignmentIndices)
}

func TestAssembleAlignmentSharedTargetKeepsOnePosition(t *testing.T) {
	sources := []entities.Segment{
		seg("s1", valueobjects.Span{Start: 0, End: 4}),
		seg("s2", valueobjects.Span{Start: 4, End: 8}),
	}
	targets := []entities.Segment{
		seg("t1", valueobjects.Span{Start: 0, End: 8}),
	}
	edges := map[string][]string{
		"s1": {"t1"},
		"s2": {"t1"},
	}

	ordered, aligned := assembleAlignment(sources, targets, edges)

	assert.Len(t, ordered, 1)
	assert.Equal(t, []int{0}, aligned[0].AlignmentIndices)
	assert.Equal(t, []int{0}, aligned[1].AlignmentIndices)
}
