// Package graph is the property-graph persistence layer. Every mutation the
// service performs funnels through Client.ExecuteWrite; reads that assemble
// structured results go through Client.ExecuteRead.
package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"textgraph/infrastructure/persistence/graph/catalog"
	apperrors "textgraph/pkg/errors"
)

// TxFunc runs inside a managed transaction. The driver commits on normal
// return and rolls back on error, retrying transient failures server-side.
type TxFunc func(tx neo4j.ManagedTransaction) (interface{}, error)

// Client wraps the Neo4j driver with session lifecycle management
type Client struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewClient connects to the graph database and verifies connectivity
func NewClient(ctx context.Context, uri, user, password string, logger *zap.Logger) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewDatabaseError("connect", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, apperrors.NewDatabaseError("verify connectivity", err)
	}
	return &Client{driver: driver, logger: logger}, nil
}

// ExecuteWrite runs fn inside one write transaction
func (c *Client) ExecuteWrite(ctx context.Context, fn TxFunc) (interface{}, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, neo4j.ManagedTransactionWork(fn))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteRead runs fn inside one read transaction
func (c *Client) ExecuteRead(ctx context.Context, fn TxFunc) (interface{}, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, neo4j.ManagedTransactionWork(fn))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EnsureConstraints creates the per-label id uniqueness constraints and the
// directory-name constraints. Idempotent; runs at startup.
func (c *Client) EnsureConstraints(ctx context.Context) error {
	for _, stmt := range catalog.ConstraintStatements {
		if _, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
			return tx.Run(ctx, stmt, nil)
		}); err != nil {
			return apperrors.NewDatabaseError("ensure constraints", err)
		}
	}
	return nil
}

// SeedDirectories merges the enumerated directory nodes (languages, license
// types, note types, bibliography types, role types). Idempotent.
func (c *Client) SeedDirectories(ctx context.Context) error {
	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		for _, stmt := range catalog.SeedStatements {
			if _, err := tx.Run(ctx, stmt.Query, stmt.Params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return apperrors.NewDatabaseError("seed directories", err)
	}
	return nil
}

// Ping verifies the database is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Close releases the driver's connection pool
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
