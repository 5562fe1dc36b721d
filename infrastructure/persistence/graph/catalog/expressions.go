package catalog

// Expression family queries.

// CreateExpressionWithWork creates the Expression, its Work, and the
// EXPRESSION_OF edge in one statement. The original flag is true only for
// root expressions.
const CreateExpressionWithWork = `
CREATE (w:Work {id: $work_id})
CREATE (e:Expression {
	id: $id,
	bdrc_id: $bdrc_id,
	wikidata_id: $wikidata_id,
	type: $type,
	language: $language,
	language_tag: $language_tag,
	date: $date,
	license: $license,
	copyright: $copyright
})
CREATE (e)-[:EXPRESSION_OF {original: $original}]->(w)
WITH e
MATCH (lang:Language {code: $language})
CREATE (e)-[:HAS_LANGUAGE {tag: $language_tag}]->(lang)
RETURN e.id AS id`

// LinkExpressionCategory attaches the category reference
const LinkExpressionCategory = `
MATCH (e:Expression {id: $expression_id})
MATCH (c:Category {id: $category_id})
CREATE (e)-[:HAS_CATEGORY]->(c)`

// LinkContributor creates a CONTRIBUTED_BY edge to a person with a role label
const LinkContributor = `
MATCH (e:Expression {id: $expression_id})
MATCH (p:Person {id: $person_id})
CREATE (e)-[:CONTRIBUTED_BY {role: $role}]->(p)`

// LinkContributorByBdrcID resolves the person by external registry id
const LinkContributorByBdrcID = `
MATCH (e:Expression {id: $expression_id})
MATCH (p:Person {bdrc_id: $person_bdrc_id})
CREATE (e)-[:CONTRIBUTED_BY {role: $role}]->(p)`

// UpsertAIContributor merges the AI node by id and links it
const UpsertAIContributor = `
MATCH (e:Expression {id: $expression_id})
MERGE (a:AI {id: $ai_id})
CREATE (e)-[:CONTRIBUTED_BY {role: $role}]->(a)`

// GetExpression resolves an expression by id or by either external registry
// id and returns its scalar properties plus work, category and parent edges.
const GetExpression = `
MATCH (e:Expression)
WHERE e.id = $id OR e.bdrc_id = $id OR e.wikidata_id = $id
MATCH (e)-[:EXPRESSION_OF]->(w:Work)
OPTIONAL MATCH (e)-[:HAS_CATEGORY]->(c:Category)
OPTIONAL MATCH (e)-[:TRANSLATION_OF]->(ts:Expression)
OPTIONAL MATCH (e)-[:COMMENTARY_OF]->(cs:Expression)
RETURN e.id AS id, w.id AS work_id,
	e.bdrc_id AS bdrc_id, e.wikidata_id AS wikidata_id,
	e.type AS type, e.language AS language, e.language_tag AS language_tag,
	e.date AS date, e.license AS license, e.copyright AS copyright,
	c.id AS category_id, ts.id AS translation_of, cs.id AS commentary_of`

// GetExpressionContributions returns contributor edges with role labels
const GetExpressionContributions = `
MATCH (e:Expression {id: $id})-[r:CONTRIBUTED_BY]->(p)
RETURN p.id AS person_id, r.role AS role, 'AI' IN labels(p) AS is_ai`

// ListExpressions pages through expressions with optional filters. Empty
// filter parameters match everything. The title filter is a case-insensitive
// containment check over localized title texts.
const ListExpressions = `
MATCH (e:Expression)
WHERE ($type = '' OR e.type = $type)
  AND ($language = '' OR e.language = $language)
  AND ($title = '' OR EXISTS {
	MATCH (e)-[:HAS_TITLE]->(:Nomen)-[:HAS_TEXT]->(lt:LocalizedText)
	WHERE toLower(lt.text) CONTAINS toLower($title)
  })
RETURN e.id AS id
ORDER BY e.id
SKIP $offset LIMIT $limit`

// LookupExpressionByExternalID supports the create-idempotence rule: POST
// with an already-registered external registry id returns the existing id.
const LookupExpressionByExternalID = `
MATCH (e:Expression)
WHERE e.bdrc_id = $external_id OR e.wikidata_id = $external_id
RETURN e.id AS id`

// GetExpressionsByIDBatch resolves a batch of ids in one round trip
const GetExpressionsByIDBatch = `
UNWIND $ids AS eid
MATCH (e:Expression {id: eid})
RETURN e.id AS id`

// RelatedExpressions walks the TRANSLATION_OF/COMMENTARY_OF graph in both
// directions from the edition's expression, optionally filtered by type.
const RelatedExpressions = `
MATCH (m:Manifestation {id: $manifestation_id})-[:MANIFESTATION_OF]->(e:Expression)
MATCH (e)-[:TRANSLATION_OF|COMMENTARY_OF*1..6]-(rel:Expression)
WHERE rel.id <> e.id AND ($type = '' OR rel.type = $type)
RETURN DISTINCT rel.id AS id, rel.type AS type, rel.language AS language`

// GetExpressionLanguage returns the base language code of an expression
const GetExpressionLanguage = `
MATCH (e:Expression {id: $id})
RETURN e.language AS language`
