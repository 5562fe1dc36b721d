package catalog

// Manifestation family queries.

// CreateManifestation creates the node and its MANIFESTATION_OF edge
const CreateManifestation = `
MATCH (e:Expression {id: $expression_id})
CREATE (m:Manifestation {
	id: $id,
	type: $type,
	bdrc_id: $bdrc_id,
	wikidata_id: $wikidata_id,
	source: $source,
	colophon: $colophon
})
CREATE (m)-[:MANIFESTATION_OF]->(e)
RETURN m.id AS id`

// GetManifestation returns scalar properties and the owning expression id,
// resolving by id or external registry id.
const GetManifestation = `
MATCH (m:Manifestation)
WHERE m.id = $id OR m.bdrc_id = $id OR m.wikidata_id = $id
MATCH (m)-[:MANIFESTATION_OF]->(e:Expression)
RETURN m.id AS id, e.id AS expression_id,
	m.type AS type, m.bdrc_id AS bdrc_id, m.wikidata_id AS wikidata_id,
	m.source AS source, m.colophon AS colophon`

// ListManifestationsOfExpression pages through an expression's editions
const ListManifestationsOfExpression = `
MATCH (m:Manifestation)-[:MANIFESTATION_OF]->(e:Expression {id: $expression_id})
WHERE ($type = '' OR m.type = $type)
RETURN m.id AS id
ORDER BY m.id`

// UpdateManifestationScalars rewrites the scalar properties in place
const UpdateManifestationScalars = `
MATCH (m:Manifestation {id: $id})
SET m.type = $type,
	m.bdrc_id = $bdrc_id,
	m.wikidata_id = $wikidata_id,
	m.source = $source,
	m.colophon = $colophon`

// ListSegmentationsOfManifestation returns every segmentation attached to
// the manifestation with its layer type, for the update partition step.
const ListSegmentationsOfManifestation = `
MATCH (s:Segmentation)-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
RETURN s.id AS id, s.type AS type`

// DeleteManifestationNotes removes every note subgraph on the manifestation
const DeleteManifestationNotes = `
MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $manifestation_id})
OPTIONAL MATCH (n)-[:HAS_SPAN]->(sp:Span)
DETACH DELETE sp, n`

// DeleteManifestationBibliography removes every bibliography subgraph
const DeleteManifestationBibliography = `
MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $manifestation_id})
OPTIONAL MATCH (b)-[:HAS_SPAN]->(sp:Span)
DETACH DELETE sp, b`

// CountManifestationsByID is the manifestation existence check
const CountManifestationsByID = `
MATCH (m:Manifestation {id: $id})
RETURN count(m) AS n`

// DeleteManifestationSubgraph removes the manifestation node itself after
// its annotation layers have been deleted.
const DeleteManifestationSubgraph = `
MATCH (m:Manifestation {id: $id})
DETACH DELETE m`
