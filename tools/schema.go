package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/wikipedia"
)

// property adjusts one inferred schema property
type property struct {
	Default   any
	MinLength *int
	Minimum   *float64
}

// inputSchema infers the schema of Args and applies the property adjustments.
// Declared defaults are filled in by the SDK before the handler runs.
func inputSchema[Args any](props map[string]property) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Args](nil)
	if err != nil {
		return nil, err
	}

	for name, p := range props {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("schema for %T has no property %q", *new(Args), name)
		}
		if p.Default != nil {
			raw, err := json.Marshal(p.Default)
			if err != nil {
				return nil, fmt.Errorf("default for %q: %w", name, err)
			}
			prop.Default = raw
		}
		if p.MinLength != nil {
			prop.MinLength = p.MinLength
		}
		if p.Minimum != nil {
			prop.Minimum = p.Minimum
		}
	}
	return schema, nil
}

var (
	langProperty  = property{Default: wikipedia.DefaultLang, MinLength: ptr(1)}
	textProperty  = property{MinLength: ptr(1)}
	countProperty = func(def int) property { return property{Default: def, Minimum: ptr(1.0)} }
)

func searchSchema() (*jsonschema.Schema, error) {
	return inputSchema[wikipedia.SearchArgs](map[string]property{
		"query": textProperty,
		"lang":  langProperty,
		"limit": countProperty(wikipedia.DefaultLimit),
	})
}

func articleSchema() (*jsonschema.Schema, error) {
	return inputSchema[wikipedia.GetArticleArgs](map[string]property{
		"title":           textProperty,
		"lang":            langProperty,
		"include_content": {Default: false},
	})
}

func randomSchema() (*jsonschema.Schema, error) {
	return inputSchema[wikipedia.RandomArgs](map[string]property{
		"lang":  langProperty,
		"count": countProperty(wikipedia.DefaultCount),
	})
}

// InputSchemas returns each registered tool's input schema keyed by tool name
func InputSchemas() (map[string]*jsonschema.Schema, error) {
	builders := map[string]func() (*jsonschema.Schema, error){
		"Search":     searchSchema,
		"GetArticle": articleSchema,
		"GetRandom":  randomSchema,
	}

	schemas := make(map[string]*jsonschema.Schema, len(toolTable))
	for _, spec := range toolTable {
		build, ok := builders[spec.Method]
		if !ok {
			return nil, fmt.Errorf("no schema for method %q", spec.Method)
		}
		s, err := build()
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", spec.Name, err)
		}
		schemas[spec.Name] = s
	}
	return schemas, nil
}
