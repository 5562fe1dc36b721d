package graph

import (
	"sort"

	"textgraph/domain/core/entities"
)

// Read-assembly ordering rules.

// sortSegments orders each segment's spans by start and the segments by the
// minimum start of their spans.
func sortSegments(segments []entities.Segment) {
	for i := range segments {
		spans := segments[i].Spans
		sort.Slice(spans, func(a, b int) bool { return spans[a].Start < spans[b].Start })
	}
	sort.Slice(segments, func(a, b int) bool {
		return segments[a].MinStart() < segments[b].MinStart()
	})
}

// assembleAlignment orders an alignment for reading. Sources are iterated
// by their own min start; each source's targets by the target's min start.
// The target list is the stable deduplicated order of first mention, and
// every aligned segment's indices point into that list.
func assembleAlignment(sourceSegs, targetSegs []entities.Segment, edges map[string][]string) ([]entities.Segment, []entities.AlignedSegment) {
	sortSegments(sourceSegs)

	targetByID := make(map[string]entities.Segment, len(targetSegs))
	for _, t := range targetSegs {
		targetByID[t.ID] = t
	}

	var orderedTargets []entities.Segment
	position := make(map[string]int, len(targetSegs))

	aligned := make([]entities.AlignedSegment, 0, len(sourceSegs))
	for _, src := range sourceSegs {
		targetIDs := append([]string(nil), edges[src.ID]...)
		sort.Slice(targetIDs, func(a, b int) bool {
			return targetByID[targetIDs[a]].MinStart() < targetByID[targetIDs[b]].MinStart()
		})

		indices := make([]int, 0, len(targetIDs))
		for _, tid := range targetIDs {
			pos, seen := position[tid]
			if !seen {
				pos = len(orderedTargets)
				position[tid] = pos
				orderedTargets = append(orderedTargets, targetByID[tid])
			}
			indices = append(indices, pos)
		}
		aligned = append(aligned, entities.AlignedSegment{
			Segment:          src,
			AlignmentIndices: indices,
		})
	}

	return orderedTargets, aligned
}
