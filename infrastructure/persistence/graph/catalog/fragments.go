// Package catalog is the central registry of parameterized graph queries.
// Query text lives here and nowhere else; repositories invoke entries by
// name with parameters.
package catalog

import "fmt"

// NomenPattern assembles the reusable Nomen-to-LocalizedText subpattern:
// owner -[rel]-> Nomen -[:HAS_TEXT]-> LocalizedText -[:HAS_LANGUAGE]-> Language.
// ownerVar is the bound variable of the owning node; rel is the relationship
// label linking owner to the Nomen.
func NomenPattern(ownerVar, rel string) string {
	return fmt.Sprintf(
		"(%s)-[:%s]->(nomen:Nomen)-[:HAS_TEXT]->(lt:LocalizedText)-[hl:HAS_LANGUAGE]->(:Language)",
		ownerVar, rel,
	)
}

// CollectNomenTexts returns a query collecting all tag/text pairs of the
// Nomen reached from the labelled owner via rel.
func CollectNomenTexts(ownerLabel, rel string) string {
	return fmt.Sprintf(`
MATCH (owner:%s {id: $owner_id})
MATCH %s
RETURN nomen.id AS nomen_id, collect({tag: hl.tag, text: lt.text}) AS texts`,
		ownerLabel, NomenPattern("owner", rel))
}

// CollectAlternativeNomenTexts returns a query collecting the tag/text pairs
// of every alternative Nomen attached to the owner's primary Nomen.
func CollectAlternativeNomenTexts(ownerLabel, rel string) string {
	return fmt.Sprintf(`
MATCH (owner:%s {id: $owner_id})-[:%s]->(primary:Nomen)<-[:ALTERNATIVE_OF]-(alt:Nomen)
MATCH (alt)-[:HAS_TEXT]->(lt:LocalizedText)-[hl:HAS_LANGUAGE]->(:Language)
RETURN alt.id AS nomen_id, collect({tag: hl.tag, text: lt.text}) AS texts`,
		ownerLabel, rel)
}

// LinkNomen returns a query attaching an existing Nomen to an owner node via
// the given relationship label. Relationship types cannot be parameterized
// in Cypher, hence the combinator.
func LinkNomen(ownerLabel, rel string) string {
	return fmt.Sprintf(`
MATCH (owner:%s {id: $owner_id})
MATCH (n:Nomen {id: $nomen_id})
CREATE (owner)-[:%s]->(n)`, ownerLabel, rel)
}

// DeleteNomens returns a query deleting the owner's Nomen subgraph via rel:
// the primary Nomen, its alternatives, and every localized text under them.
func DeleteNomens(ownerLabel, rel string) string {
	return fmt.Sprintf(`
MATCH (owner:%s {id: $owner_id})-[:%s]->(primary:Nomen)
OPTIONAL MATCH (alt:Nomen)-[:ALTERNATIVE_OF]->(primary)
WITH primary, collect(alt) AS alts
UNWIND [primary] + alts AS nom
OPTIONAL MATCH (nom)-[:HAS_TEXT]->(lt:LocalizedText)
DETACH DELETE lt, nom`, ownerLabel, rel)
}

// DeriveEdge returns a query creating the TRANSLATION_OF / COMMENTARY_OF
// edge between two expressions.
func DeriveEdge(rel string) string {
	return fmt.Sprintf(`
MATCH (e:Expression {id: $expression_id})
MATCH (parent:Expression {id: $parent_id})
CREATE (e)-[:%s]->(parent)`, rel)
}
