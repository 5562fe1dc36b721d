package catalog

// Person family queries.

// CreatePerson creates a person directory node
const CreatePerson = `
CREATE (p:Person {id: $id, bdrc_id: $bdrc_id})
RETURN p.id AS id`

// GetPerson resolves by id or external registry id
const GetPerson = `
MATCH (p:Person)
WHERE p.id = $id OR p.bdrc_id = $id
RETURN p.id AS id, p.bdrc_id AS bdrc_id`

// ListPersons pages through the person directory
const ListPersons = `
MATCH (p:Person)
RETURN p.id AS id
ORDER BY p.id
SKIP $offset LIMIT $limit`

// DeletePerson removes a person that has no contribution edges; the count
// lets the repository distinguish absent from still-referenced.
const DeletePerson = `
MATCH (p:Person {id: $id})
WHERE NOT (p)<-[:CONTRIBUTED_BY]-()
DETACH DELETE p
RETURN count(p) AS n`

// CountPersonContributions reports whether a person is still referenced
const CountPersonContributions = `
MATCH (p:Person {id: $id})<-[:CONTRIBUTED_BY]-()
RETURN count(*) AS n`

// MissingPersonsByID returns the ids in the batch with no Person node
const MissingPersonsByID = `
UNWIND $ids AS pid
OPTIONAL MATCH (p:Person {id: pid})
WITH pid, p
WHERE p IS NULL
RETURN collect(pid) AS missing`

// MissingPersonsByBdrcID returns the external registry ids with no Person
const MissingPersonsByBdrcID = `
UNWIND $ids AS pid
OPTIONAL MATCH (p:Person {bdrc_id: pid})
WITH pid, p
WHERE p IS NULL
RETURN collect(pid) AS missing`
