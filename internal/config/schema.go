package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "https://gendoc.local/config.schema.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks the effective configuration, with defaults and
// environment overrides applied, against the embedded JSON Schema.
func (c *Config) validateSchema() error {
	schema, err := loadCompiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	doc, err := toJSONValue(c)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}
	return nil
}

// toJSONValue converts c into the generic form the validator expects, keyed
// by the same names as the YAML file.
func toJSONValue(c *Config) (any, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	encoded, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return doc, nil
}
