package catalog

// API-key family queries. Only SHA-256 hashes are ever stored or matched.

// CreateAPIKey stores a new key record
const CreateAPIKey = `
CREATE (k:ApiKey {
	id: $id,
	name: $name,
	email: $email,
	api_key_hash: $api_key_hash,
	is_active: true,
	created_at: $created_at
})
RETURN k.id AS id`

// BindAPIKeyToApplication scopes a key to a tenant
const BindAPIKeyToApplication = `
MATCH (k:ApiKey {id: $id})
MERGE (app:Application {name: $application})
CREATE (k)-[:BOUND_TO]->(app)`

// GetAPIKeyByHash resolves an active key by hash, with its optional tenant
const GetAPIKeyByHash = `
MATCH (k:ApiKey {api_key_hash: $hash, is_active: true})
OPTIONAL MATCH (k)-[:BOUND_TO]->(app:Application)
RETURN k.id AS id, k.name AS name, app.name AS application`

// ListAPIKeys lists key records; hashes are never returned
const ListAPIKeys = `
MATCH (k:ApiKey)
OPTIONAL MATCH (k)-[:BOUND_TO]->(app:Application)
RETURN k.id AS id, k.name AS name, k.email AS email,
	k.is_active AS is_active, k.created_at AS created_at,
	app.name AS application
ORDER BY k.created_at`

// RevokeAPIKey deactivates a key
const RevokeAPIKey = `
MATCH (k:ApiKey {id: $id})
SET k.is_active = false
RETURN count(k) AS n`

// RotateAPIKeyHash replaces a key's hash and reactivates it
const RotateAPIKeyHash = `
MATCH (k:ApiKey {id: $id})
SET k.api_key_hash = $hash, k.is_active = true
RETURN count(k) AS n`
