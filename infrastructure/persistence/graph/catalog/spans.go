package catalog

// Span-relocation queries.

// ListAnchoredSpans returns every span anchored to the manifestation,
// directly or via its owning segment/note/bibliography, excluding spans
// owned by the entity being edited. elementId identifies the span node for
// the follow-up rewrite.
const ListAnchoredSpans = `
MATCH (m:Manifestation {id: $manifestation_id})
MATCH (owner)-[:HAS_SPAN]->(sp:Span)
WHERE ($excluded_id = '' OR owner.id <> $excluded_id)
  AND (
	(owner)<-[:HAS_SEGMENT]-(:Segmentation)-[:SEGMENTATION_OF]->(m)
	OR (owner)-[:NOTE_OF]->(m)
	OR (owner)-[:BIBLIOGRAPHY_OF]->(m)
  )
RETURN elementId(sp) AS span_ref, owner.id AS owner_id,
	sp.start AS start, sp.end AS end`

// RewriteSpan updates one span's coordinates by element id
const RewriteSpan = `
MATCH (sp:Span)
WHERE elementId(sp) = $span_ref
SET sp.start = $start, sp.end = $end`

// DeleteSpanOwner cascades a case-3 deletion to the owning entity: its
// spans, references, and the owner node itself.
const DeleteSpanOwner = `
MATCH (owner {id: $owner_id})
WHERE owner:Segment OR owner:Note OR owner:BibliographicMetadata
OPTIONAL MATCH (owner)-[:HAS_SPAN]->(sp:Span)
OPTIONAL MATCH (owner)-[:HAS_REFERENCE]->(r:Reference)
DETACH DELETE sp, r, owner`
