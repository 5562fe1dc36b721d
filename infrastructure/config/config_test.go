package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDRESS", "ENVIRONMENT", "NEO4J_URI", "INDEXER_URL", "ENABLE_CORS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4jURI)
	assert.Empty(t, cfg.IndexerURL)
	assert.True(t, cfg.EnableCORS)
}

func TestLoadConfigProductionRequiresPassword(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("NEO4J_PASSWORD", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("NEO4J_PASSWORD", "secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("ENABLE_CORS", "false")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.EnableCORS)

	t.Setenv("ENABLE_CORS", "yes")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.EnableCORS)
}
