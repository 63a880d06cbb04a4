// Package config loads the site configuration file.
package config

//go:generate go run internal/schema/main.go site.schema.json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Site holds site-wide settings.
type Site struct {
	Title        string `yaml:"title" json:"title" jsonschema:"required,minLength=1,description=site title shown in the header"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty" jsonschema:"description=meta description"`
	Author       string `yaml:"author,omitempty" json:"author,omitempty" jsonschema:"description=author name shown in the footer"`
	BasePath     string `yaml:"base_path,omitempty" json:"base_path,omitempty" jsonschema:"pattern=^(/[^/]+)*$,description=path prefix when served behind a proxy (e.g. /blog)"`
	PostsPerPage int    `yaml:"posts_per_page,omitempty" json:"posts_per_page,omitempty" jsonschema:"minimum=0,description=posts per index page (0 for all)"`
}

// Default returns settings used when no config file is given.
func Default() Site {
	return Site{Title: "Blog", PostsPerPage: 10}
}

// Load reads, validates and parses the site YAML file. Empty path returns defaults.
func Load(path string) (Site, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is from CLI flag, controlled by admin
	if err != nil {
		return Site{}, fmt.Errorf("failed to read site config: %w", err)
	}

	if err := Verify(data); err != nil {
		return Site{}, err
	}

	site := Default()
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("failed to parse site config: %w", err)
	}
	site.BasePath = strings.TrimSuffix(site.BasePath, "/")
	return site, nil
}

// Schema generates JSON schema for the Site struct.
func Schema() ([]byte, error) {
	schema := jsonschema.Reflect(&Site{})
	schema.Title = "Blog Site Configuration"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// Verify validates site config data against the schema reflected from Site.
func Verify(data []byte) error {
	schemaData, err := Schema()
	if err != nil {
		return err
	}
	if len(schemaData) == 0 {
		return errors.New("site schema is empty")
	}

	compiler := validator.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	// parse yaml config into generic map for schema validation
	var cfg any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse site config: %w", err)
	}

	if err := schema.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
