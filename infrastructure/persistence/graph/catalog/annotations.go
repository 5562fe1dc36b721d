package catalog

// Annotation-layer queries: segmentations, segments, spans, alignment
// edges, references, notes and bibliographic metadata.

// CreateSegmentation creates the layer node and its SEGMENTATION_OF edge.
// type is one of: segmentation, pagination, alignment_source,
// alignment_target.
const CreateSegmentation = `
MATCH (m:Manifestation {id: $manifestation_id})
CREATE (s:Segmentation {id: $id, type: $type})
CREATE (s)-[:SEGMENTATION_OF]->(m)
RETURN s.id AS id`

// CreateSegments unwinds segment specs into Segment and Span creations
const CreateSegments = `
MATCH (s:Segmentation {id: $segmentation_id})
UNWIND $segments AS seg
CREATE (sg:Segment {id: seg.id})
CREATE (s)-[:HAS_SEGMENT]->(sg)
WITH sg, seg
UNWIND seg.spans AS sp
CREATE (sg)-[:HAS_SPAN]->(:Span {start: sp.start, end: sp.end})`

// CreateSegmentReferences attaches page-label Reference nodes to segments
const CreateSegmentReferences = `
UNWIND $refs AS ref
MATCH (sg:Segment {id: ref.segment_id})
CREATE (sg)-[:HAS_REFERENCE]->(:Reference {value: ref.reference})`

// CreateAlignmentEdges creates all ALIGNED_TO edges by id lookup in one
// statement.
const CreateAlignmentEdges = `
UNWIND $edges AS edge
MATCH (src:Segment {id: edge.source_id})
MATCH (dst:Segment {id: edge.target_id})
CREATE (src)-[:ALIGNED_TO]->(dst)`

// PairSegmentations links the two sides of an alignment, source to target
const PairSegmentations = `
MATCH (src:Segmentation {id: $source_id})
MATCH (dst:Segmentation {id: $target_id})
CREATE (src)-[:PAIRED_WITH]->(dst)`

// GetSegmentationMeta returns layer type, owning manifestation, and the
// paired segmentation when the layer is half of an alignment.
const GetSegmentationMeta = `
MATCH (s:Segmentation {id: $id})-[:SEGMENTATION_OF]->(m:Manifestation)
OPTIONAL MATCH (s)-[:PAIRED_WITH]-(peer:Segmentation)
RETURN s.id AS id, s.type AS type, m.id AS manifestation_id, peer.id AS peer_id`

// GetSegmentationSegments returns segments with all their spans and optional
// page references. Ordering is applied in the repository.
const GetSegmentationSegments = `
MATCH (s:Segmentation {id: $id})-[:HAS_SEGMENT]->(sg:Segment)-[:HAS_SPAN]->(sp:Span)
OPTIONAL MATCH (sg)-[:HAS_REFERENCE]->(r:Reference)
RETURN sg.id AS id, r.value AS reference,
	collect({start: sp.start, end: sp.end}) AS spans`

// GetAlignmentEdges returns the directed segment pairs of an alignment
const GetAlignmentEdges = `
MATCH (src:Segmentation {id: $source_id})-[:HAS_SEGMENT]->(a:Segment)
MATCH (a)-[:ALIGNED_TO]->(b:Segment)<-[:HAS_SEGMENT]-(dst:Segmentation {id: $target_id})
RETURN a.id AS source_id, b.id AS target_id`

// DeleteSegmentationSubgraph removes segments, spans, references and the
// segmentation itself in one statement. A no-op when the id is absent.
const DeleteSegmentationSubgraph = `
MATCH (s:Segmentation {id: $id})
OPTIONAL MATCH (s)-[:HAS_SEGMENT]->(sg:Segment)
OPTIONAL MATCH (sg)-[:HAS_SPAN]->(sp:Span)
OPTIONAL MATCH (sg)-[:HAS_REFERENCE]->(r:Reference)
DETACH DELETE sp, r, sg, s`

// CountSegmentationsOfKind supports the at-most-one rule for plain
// segmentation and pagination layers.
const CountSegmentationsOfKind = `
MATCH (s:Segmentation {type: $type})-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
RETURN count(s) AS n`

// CountAlignmentsBetween reports whether an alignment already connects the
// two manifestations.
const CountAlignmentsBetween = `
MATCH (a:Segmentation)-[:SEGMENTATION_OF]->(:Manifestation {id: $manifestation_id})
MATCH (a)-[:PAIRED_WITH]-(b:Segmentation)-[:SEGMENTATION_OF]->(:Manifestation {id: $target_manifestation_id})
RETURN count(a) AS n`

// AlignmentPairsOfManifestation returns every (local, peer) alignment
// segmentation pair attached to the manifestation, either direction.
const AlignmentPairsOfManifestation = `
MATCH (a1:Segmentation)-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
MATCH (a1)-[:PAIRED_WITH]-(a2:Segmentation)
RETURN a1.id AS local_id, a2.id AS peer_id`

// ManifestationOfSegmentation resolves the owning manifestation of a layer
const ManifestationOfSegmentation = `
MATCH (s:Segmentation {id: $id})-[:SEGMENTATION_OF]->(m:Manifestation)
RETURN m.id AS id`

// OverlappingSegments returns segments of a segmentation whose spans
// intersect the half-open range [$start, $end), with all spans of each hit.
const OverlappingSegments = `
MATCH (s:Segmentation {id: $segmentation_id})-[:HAS_SEGMENT]->(sg:Segment)-[:HAS_SPAN]->(sp:Span)
WHERE sp.start < $end AND $start < sp.end
WITH DISTINCT sg
MATCH (sg)-[:HAS_SPAN]->(all:Span)
RETURN sg.id AS id, collect({start: all.start, end: all.end}) AS spans`

// OverlappingSegmentationSegments is the transfer-mode variant: segments of
// the manifestation's plain segmentation layer intersecting the range.
const OverlappingSegmentationSegments = `
MATCH (s:Segmentation {type: 'segmentation'})-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
MATCH (s)-[:HAS_SEGMENT]->(sg:Segment)-[:HAS_SPAN]->(sp:Span)
WHERE sp.start < $end AND $start < sp.end
WITH DISTINCT s, sg
MATCH (sg)-[:HAS_SPAN]->(all:Span)
RETURN s.id AS segmentation_id, sg.id AS id,
	collect({start: all.start, end: all.end}) AS spans`

// AlignedCounterparts follows alignment edges out of one layer: segments of
// $segmentation_id intersecting [$start, $end) are matched undirected to
// their counterparts in the peer layer, returned with all their spans.
const AlignedCounterparts = `
MATCH (s:Segmentation {id: $segmentation_id})-[:HAS_SEGMENT]->(sg:Segment)-[:HAS_SPAN]->(sp:Span)
WHERE sp.start < $end AND $start < sp.end
WITH DISTINCT sg
MATCH (sg)-[:ALIGNED_TO]-(peer:Segment)<-[:HAS_SEGMENT]-(ps:Segmentation {id: $peer_segmentation_id})
WITH DISTINCT peer
MATCH (peer)-[:HAS_SPAN]->(all:Span)
RETURN peer.id AS id, collect({start: all.start, end: all.end}) AS spans`

// SegmentSpansByID returns the spans of one segment together with its layer
const SegmentSpansByID = `
MATCH (s:Segmentation)-[:HAS_SEGMENT]->(sg:Segment {id: $id})-[:HAS_SPAN]->(sp:Span)
MATCH (s)-[:SEGMENTATION_OF]->(m:Manifestation)
RETURN sg.id AS id, s.id AS segmentation_id, m.id AS manifestation_id,
	collect({start: sp.start, end: sp.end}) AS spans`

// CreateNote creates a note with its span and typed edge
const CreateNote = `
MATCH (m:Manifestation {id: $manifestation_id})
MERGE (t:NoteType {name: $note_type})
CREATE (n:Note {id: $id, content: $content})
CREATE (n)-[:NOTE_OF]->(m)
CREATE (n)-[:HAS_TYPE]->(t)
CREATE (n)-[:HAS_SPAN]->(:Span {start: $start, end: $end})
RETURN n.id AS id`

// GetNote returns one note with its span, type and manifestation
const GetNote = `
MATCH (n:Note {id: $id})-[:NOTE_OF]->(m:Manifestation)
MATCH (n)-[:HAS_TYPE]->(t:NoteType)
MATCH (n)-[:HAS_SPAN]->(sp:Span)
RETURN n.id AS id, n.content AS content, t.name AS note_type,
	m.id AS manifestation_id, sp.start AS start, sp.end AS end`

// GetNotesOfManifestation lists notes anchored to an edition
const GetNotesOfManifestation = `
MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $manifestation_id})
MATCH (n)-[:HAS_TYPE]->(t:NoteType)
MATCH (n)-[:HAS_SPAN]->(sp:Span)
RETURN n.id AS id, n.content AS content, t.name AS note_type,
	sp.start AS start, sp.end AS end
ORDER BY sp.start`

// DeleteNoteSubgraph removes a note and its spans. No-op when absent.
const DeleteNoteSubgraph = `
MATCH (n:Note {id: $id})
OPTIONAL MATCH (n)-[:HAS_SPAN]->(sp:Span)
DETACH DELETE sp, n`

// CreateBibliography creates a bibliographic metadata item with span and type
const CreateBibliography = `
MATCH (m:Manifestation {id: $manifestation_id})
MERGE (t:BibliographyType {name: $type})
CREATE (b:BibliographicMetadata {id: $id, text: $text})
CREATE (b)-[:BIBLIOGRAPHY_OF]->(m)
CREATE (b)-[:HAS_TYPE]->(t)
CREATE (b)-[:HAS_SPAN]->(:Span {start: $start, end: $end})
RETURN b.id AS id`

// GetBibliography returns one bibliographic item
const GetBibliography = `
MATCH (b:BibliographicMetadata {id: $id})-[:BIBLIOGRAPHY_OF]->(m:Manifestation)
MATCH (b)-[:HAS_TYPE]->(t:BibliographyType)
MATCH (b)-[:HAS_SPAN]->(sp:Span)
RETURN b.id AS id, b.text AS text, t.name AS type,
	m.id AS manifestation_id, sp.start AS start, sp.end AS end`

// GetBibliographyOfManifestation lists bibliographic items of an edition
const GetBibliographyOfManifestation = `
MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $manifestation_id})
MATCH (b)-[:HAS_TYPE]->(t:BibliographyType)
MATCH (b)-[:HAS_SPAN]->(sp:Span)
RETURN b.id AS id, b.text AS text, t.name AS type,
	sp.start AS start, sp.end AS end
ORDER BY sp.start`

// DeleteBibliographySubgraph removes a bibliographic item and its spans
const DeleteBibliographySubgraph = `
MATCH (b:BibliographicMetadata {id: $id})
OPTIONAL MATCH (b)-[:HAS_SPAN]->(sp:Span)
DETACH DELETE sp, b`
