package catalog

// Invariant-validator queries. Each is a single query returning a count or
// a list of missing references; the validator turns violations into errors
// inside the caller's transaction.

// CountExpressionsByID is the expression existence check
const CountExpressionsByID = `
MATCH (e:Expression {id: $id})
RETURN count(e) AS n`

// CountRootExpressionsOfWork enforces at most one root expression per work
const CountRootExpressionsOfWork = `
MATCH (e:Expression)-[r:EXPRESSION_OF {original: true}]->(w:Work {id: $work_id})
RETURN count(e) AS n`

// CountCriticalManifestations enforces at most one critical edition per
// expression.
const CountCriticalManifestations = `
MATCH (m:Manifestation {type: 'critical'})-[:MANIFESTATION_OF]->(e:Expression {id: $expression_id})
RETURN count(m) AS n`

// CountExpressionTitles checks title uniqueness across expressions, per
// language tag, case-insensitively.
const CountExpressionTitles = `
UNWIND $entries AS entry
MATCH (e:Expression)-[:HAS_TITLE]->(:Nomen)-[:HAS_TEXT]->(lt:LocalizedText)-[hl:HAS_LANGUAGE]->(:Language)
WHERE hl.tag = entry.tag AND toLower(lt.text) = toLower(entry.text)
RETURN count(DISTINCT e) AS n`
