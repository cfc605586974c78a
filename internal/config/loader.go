package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/ekisa-team/sample/internal/core"
)

const embeddedSchemaURL = "https://ekisa-team.github.io/sample/sample.v1.schema.json"

//go:embed schema/sample.v1.schema.json
var embeddedSchema []byte

// LoadAndValidate loads and validates the configuration.
// An empty schemaPath selects the embedded schema.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %w", core.NotFound("config file "+path))
		}
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	return Parse(data, schemaPath)
}

// Parse validates raw YAML against the schema and decodes it into a Config.
func Parse(data []byte, schemaPath string) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: %w", core.InvalidInput("invalid YAML: "+err.Error()))
	}

	doc, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("config: %w", core.InvalidInput(err.Error()))
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("config: %w", core.InvalidInput("validation failed: "+err.Error()))
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	return &config, nil
}

// compileSchema compiles the schema at path, or the embedded one.
func compileSchema(path string) (*jsonschema.Schema, error) {
	if path != "" {
		return jsonschema.Compile(path)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, err
	}

	return compiler.Compile(embeddedSchemaURL)
}

// toJSONValue converts a decoded YAML document into the value shapes the
// schema validator expects (json.Number for numbers).
func toJSONValue(v any) (any, error) {
	if v == nil {
		return nil, errors.New("empty config document")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}
