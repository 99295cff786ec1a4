package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks that every config section is known to the schema and that the required fields are set.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	props, err := schemaProperties(schema)
	if err != nil {
		return err
	}

	// convert config to JSON to compare with schema properties
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var unknown []string
	for key := range configMap {
		if _, ok := props[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("sections not in schema: %s", strings.Join(unknown, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// schemaProperties returns the top level Config properties, following the root $ref if present
func schemaProperties(schema map[string]any) (map[string]any, error) {
	root := schema
	if ref, ok := schema["$ref"].(string); ok {
		name := strings.TrimPrefix(ref, "#/$defs/")
		defs, _ := schema["$defs"].(map[string]any)
		def, ok := defs[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema ref %s not found", ref)
		}
		root = def
	}
	props, ok := root["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema has no properties")
	}
	return props, nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Store.Type == StoreRemote && cfg.Remote.URL == "" {
		return fmt.Errorf("remote.url is required when store.type is remote")
	}
	if cfg.Extraction.Enabled && cfg.Extraction.Timeout == 0 {
		return fmt.Errorf("extraction.timeout is required when extraction is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
