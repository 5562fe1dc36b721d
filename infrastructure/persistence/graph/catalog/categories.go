package catalog

// Category family queries.

// CreateCategory creates a category under its application tenant
const CreateCategory = `
MERGE (app:Application {name: $application})
CREATE (c:Category {id: $id})
CREATE (c)-[:CATEGORY_OF]->(app)
RETURN c.id AS id`

// LinkCategoryParent nests a category below its parent
const LinkCategoryParent = `
MATCH (c:Category {id: $id})
MATCH (p:Category {id: $parent_id})
CREATE (c)-[:SUB_CATEGORY_OF]->(p)`

// CountSiblingTitles checks per-parent case-insensitive title uniqueness.
// $titles is the list of lowercased proposed titles; $parent_id empty means
// the forest roots of the application.
const CountSiblingTitles = `
MATCH (sib:Category)-[:CATEGORY_OF]->(app:Application {name: $application})
WHERE ($parent_id = '' AND NOT (sib)-[:SUB_CATEGORY_OF]->(:Category))
   OR ($parent_id <> '' AND (sib)-[:SUB_CATEGORY_OF]->(:Category {id: $parent_id}))
MATCH (sib)-[:HAS_TITLE]->(:Nomen)-[:HAS_TEXT]->(lt:LocalizedText)
WHERE toLower(lt.text) IN $titles
RETURN count(DISTINCT sib) AS n`

// ListCategories returns one sibling level with titles and a has_child flag
// computed in the same query.
const ListCategories = `
MATCH (c:Category)-[:CATEGORY_OF]->(app:Application {name: $application})
WHERE ($parent_id = '' AND NOT (c)-[:SUB_CATEGORY_OF]->(:Category))
   OR ($parent_id <> '' AND (c)-[:SUB_CATEGORY_OF]->(:Category {id: $parent_id}))
MATCH (c)-[:HAS_TITLE]->(:Nomen)-[:HAS_TEXT]->(lt:LocalizedText)-[hl:HAS_LANGUAGE]->(:Language)
WITH c, collect({tag: hl.tag, text: lt.text}) AS titles,
	EXISTS { MATCH (:Category)-[:SUB_CATEGORY_OF]->(c) } AS has_child
RETURN c.id AS id, titles, has_child
ORDER BY c.id`

// CountCategoriesByID is the existence validator's query
const CountCategoriesByID = `
MATCH (c:Category {id: $id})
RETURN count(c) AS n`
