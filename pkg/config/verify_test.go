package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(validConfig()))
	})

	t.Run("missing listen", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Listen = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen is required")
	})

	t.Run("remote without url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Type = StoreRemote
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote.url is required")
	})

	t.Run("extraction without timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Extraction.Enabled = true
		cfg.Extraction.Timeout = 0
		require.Error(t, VerifyAgainstEmbeddedSchema(cfg))
	})
}

func TestSchemaProperties(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))

	props, err := schemaProperties(schema)
	require.NoError(t, err)
	for _, key := range []string{"server", "store", "database", "remote", "app", "schedule", "feeds", "llm", "extraction"} {
		assert.Contains(t, props, key)
	}

	_, err = schemaProperties(map[string]any{"$ref": "#/$defs/Missing"})
	require.Error(t, err)

	_, err = schemaProperties(map[string]any{})
	require.Error(t, err)
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size")
	assert.Contains(t, string(data), "RemoteConfig")
}

func TestConfig_Location(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Timezone = "UTC"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Server.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}
