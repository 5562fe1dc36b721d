package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/valueobjects"
	"textgraph/infrastructure/persistence/graph/catalog"
)

// Span relocation. When a manifestation's base text is edited by replacing
// the byte range [rs, re) with new content of length newLen, every span
// anchored to that text must move so it keeps pointing at the same
// characters. Spans fully swallowed by the replacement are deleted together
// with their owning entity.

type relocationAction int

const (
	relocationKeep relocationAction = iota
	relocationRewrite
	relocationDelete
)

// relocateSpan computes the fate of one span [s.Start, s.End) under a
// replacement of [rs, re) with newLen bytes. The cases are checked in order;
// delta is the net length change of the text.
func relocateSpan(s valueobjects.Span, rs, re, newLen int) (relocationAction, valueobjects.Span) {
	delta := newLen - (re - rs)
	switch {
	case rs >= s.End:
		// replacement entirely after the span
		return relocationKeep, s
	case re <= s.Start:
		// replacement entirely before the span
		return relocationRewrite, valueobjects.Span{Start: s.Start + delta, End: s.End + delta}
	case rs <= s.Start && re >= s.End:
		// span swallowed by the replacement
		return relocationDelete, valueobjects.Span{}
	case rs < s.Start && re < s.End:
		// replacement clips the span's head
		return relocationRewrite, valueobjects.Span{Start: rs + newLen, End: s.End + delta}
	case s.Start <= rs && re <= s.End:
		// replacement strictly inside the span
		return relocationRewrite, valueobjects.Span{Start: s.Start, End: s.End + delta}
	default:
		// replacement clips the span's tail
		return relocationRewrite, valueobjects.Span{Start: s.Start, End: rs}
	}
}

// anchoredSpan is one span row from the relocation sweep
type anchoredSpan struct {
	spanRef string
	ownerID string
	span    valueobjects.Span
}

// relocateSpansWithTx sweeps every span anchored to the manifestation and
// applies relocateSpan to each. excludedID filters out spans owned by the
// entity whose edit triggered the sweep. Owners of deleted spans are removed
// with their remaining spans and references.
func relocateSpansWithTx(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, excludedID string, rs, re, newLen int) error {
	recs, err := runCollect(ctx, tx, catalog.ListAnchoredSpans, map[string]interface{}{
		"manifestation_id": manifestationID,
		"excluded_id":      excludedID,
	})
	if err != nil {
		return err
	}

	spans := make([]anchoredSpan, 0, len(recs))
	for _, rec := range recs {
		spans = append(spans, anchoredSpan{
			spanRef: stringVal(rec, "span_ref"),
			ownerID: stringVal(rec, "owner_id"),
			span:    valueobjects.Span{Start: intVal(rec, "start"), End: intVal(rec, "end")},
		})
	}

	deleted := make(map[string]bool)
	for _, as := range spans {
		action, moved := relocateSpan(as.span, rs, re, newLen)
		switch action {
		case relocationDelete:
			deleted[as.ownerID] = true
		case relocationRewrite:
			if deleted[as.ownerID] {
				continue
			}
			if err := runWrite(ctx, tx, catalog.RewriteSpan, map[string]interface{}{
				"span_ref": as.spanRef,
				"start":    moved.Start,
				"end":      moved.End,
			}); err != nil {
				return err
			}
		}
	}

	for ownerID := range deleted {
		if err := runWrite(ctx, tx, catalog.DeleteSpanOwner, map[string]interface{}{"owner_id": ownerID}); err != nil {
			return err
		}
	}
	return nil
}
