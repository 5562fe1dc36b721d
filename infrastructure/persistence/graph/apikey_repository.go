package graph

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/ids"
)

// APIKeyRepository manages credentials. Raw keys are generated here and
// returned exactly once; only their SHA-256 is stored.
type APIKeyRepository struct {
	client *Client
	logger *zap.Logger
}

// NewAPIKeyRepository creates an APIKeyRepository
func NewAPIKeyRepository(client *Client, logger *zap.Logger) *APIKeyRepository {
	return &APIKeyRepository{client: client, logger: logger}
}

// newRawKey generates a 32-byte random key, URL-safe base64 encoded
func newRawKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.NewInternalError("generate key").WithCause(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashKey returns the hex SHA-256 of a raw key
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Create stores a new key record and returns its id and the raw key
func (r *APIKeyRepository) Create(ctx context.Context, input *entities.CreateAPIKeyInput) (string, string, error) {
	raw, err := newRawKey()
	if err != nil {
		return "", "", err
	}
	keyID := ids.New()
	_, err = r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if _, err := runSingle(ctx, tx, catalog.CreateAPIKey, map[string]interface{}{
			"id":           keyID,
			"name":         input.Name,
			"email":        input.Email,
			"api_key_hash": HashKey(raw),
			"created_at":   time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
		if input.Application != "" {
			if err := runWrite(ctx, tx, catalog.BindAPIKeyToApplication, map[string]interface{}{
				"id":          keyID,
				"application": input.Application,
			}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return "", "", err
	}
	return keyID, raw, nil
}

// Authenticate resolves a raw key to its principal. Unknown, revoked and
// malformed keys all fail the same way.
func (r *APIKeyRepository) Authenticate(ctx context.Context, rawKey string) (*entities.Principal, error) {
	if rawKey == "" {
		return nil, apperrors.NewUnauthorizedError("missing API key")
	}
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.GetAPIKeyByHash, map[string]interface{}{"hash": HashKey(rawKey)})
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, apperrors.NewUnauthorizedError("invalid API key")
		}
		return &entities.Principal{
			KeyID:       stringVal(recs[0], "id"),
			Name:        stringVal(recs[0], "name"),
			Application: stringVal(recs[0], "application"),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.Principal), nil
}

// List returns all key records, without hashes
func (r *APIKeyRepository) List(ctx context.Context) ([]entities.APIKey, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		recs, err := runCollect(ctx, tx, catalog.ListAPIKeys, nil)
		if err != nil {
			return nil, err
		}
		keys := make([]entities.APIKey, 0, len(recs))
		for _, rec := range recs {
			createdAt, _ := time.Parse(time.RFC3339, stringVal(rec, "created_at"))
			keys = append(keys, entities.APIKey{
				ID:          stringVal(rec, "id"),
				Name:        stringVal(rec, "name"),
				Email:       stringVal(rec, "email"),
				Application: stringVal(rec, "application"),
				IsActive:    boolVal(rec, "is_active"),
				CreatedAt:   createdAt,
			})
		}
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.APIKey), nil
}

// Revoke deactivates a key
func (r *APIKeyRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.RevokeAPIKey, map[string]interface{}{"id": id})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apperrors.NewNotFoundError("API key " + id)
		}
		return nil, nil
	})
	return err
}

// Rotate replaces a key's secret, reactivating it, and returns the new raw key
func (r *APIKeyRepository) Rotate(ctx context.Context, id string) (string, error) {
	raw, err := newRawKey()
	if err != nil {
		return "", err
	}
	_, err = r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		n, err := runCount(ctx, tx, catalog.RotateAPIKeyHash, map[string]interface{}{
			"id":   id,
			"hash": HashKey(raw),
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apperrors.NewNotFoundError("API key " + id)
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}
