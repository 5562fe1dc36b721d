package catalog

// Nomen family queries. Relationship-label-dependent variants are assembled
// by the combinators in fragments.go.

// CreateNomen creates a bare Nomen node
const CreateNomen = `
CREATE (n:Nomen {id: $id})
RETURN n.id AS id`

// LinkAlternativeNomen attaches an alternative Nomen to its primary
const LinkAlternativeNomen = `
MATCH (alt:Nomen {id: $alt_id})
MATCH (primary:Nomen {id: $primary_id})
CREATE (alt)-[:ALTERNATIVE_OF]->(primary)`

// AddLocalizedText attaches one tag/text pair to a Nomen. The base language
// code lives on the Language node; the full BCP-47 tag on the edge.
const AddLocalizedText = `
MATCH (n:Nomen {id: $nomen_id})
MATCH (lang:Language {code: $code})
CREATE (n)-[:HAS_TEXT]->(lt:LocalizedText {id: $id, text: $text})
CREATE (lt)-[:HAS_LANGUAGE {tag: $tag}]->(lang)`

// UpdateLocalizedTextByTag rewrites the text of an existing localization,
// matched by the full tag on its HAS_LANGUAGE edge. Returns the number of
// localizations touched so the caller can fall back to AddLocalizedText.
const UpdateLocalizedTextByTag = `
MATCH (n:Nomen {id: $nomen_id})-[:HAS_TEXT]->(lt:LocalizedText)-[hl:HAS_LANGUAGE]->(:Language)
WHERE hl.tag = $tag
SET lt.text = $text
RETURN count(lt) AS n`

// MissingLanguages is the batched existence check behind every Nomen write:
// returns the base codes that have no Language node.
const MissingLanguages = `
UNWIND $codes AS code
OPTIONAL MATCH (l:Language {code: code})
WITH code, l
WHERE l IS NULL
RETURN collect(code) AS missing`
