package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ManifestValidator checks a decoded fixture manifest against its schema.
type ManifestValidator interface {
	ValidateManifest(doc *FixtureManifest) error
}

// PayloadValidator checks an arbitrary payload against a named schema.
type PayloadValidator interface {
	ValidatePayload(code string, schema map[string]any, payload any) error
}

// JSONSchemaValidator compiles schemas once and validates payloads against them.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// ValidateManifest implements ManifestValidator.
func (v *JSONSchemaValidator) ValidateManifest(doc *FixtureManifest) error {
	return v.validate("dashboard.fixtures", ManifestSchema(), doc, TextCodeInvalidFixture)
}

// ValidatePayload normalizes payload through JSON and validates it against schema.
func (v *JSONSchemaValidator) ValidatePayload(code string, schema map[string]any, payload any) error {
	return v.validate(code, schema, payload, TextCodeInvalidPayload)
}

func (v *JSONSchemaValidator) validate(code string, schema map[string]any, payload any, textCode string) error {
	if len(schema) == 0 {
		return nil
	}
	compiled, err := v.schemaFor(code, schema)
	if err != nil {
		return err
	}
	var normalized any = map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("dashboard: marshal payload for %s: %w", code, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("dashboard: normalize payload for %s: %w", code, err)
		}
	}
	if err := compiled.Validate(normalized); err != nil {
		return validationError(textCode, "dashboard: %s failed validation: %v", code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(code string, schema map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	compiled, ok := v.compiled[code]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", code, err)
	}
	compiled, err = compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", code, err)
	}
	v.mu.Lock()
	v.compiled[code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// ManifestSchema is the JSON schema for fixture manifests. Arrays accept null
// because omitted YAML lists decode to nil slices.
func ManifestSchema() map[string]any {
	nullableArray := []string{"array", "null"}
	option := map[string]any{
		"type":     "object",
		"required": []string{"label", "token"},
		"properties": map[string]any{
			"label": map[string]any{"type": "string", "minLength": 1},
			"token": map[string]any{"type": "string", "minLength": 1},
		},
	}
	entry := map[string]any{
		"type":     "object",
		"required": []string{"path", "label"},
		"properties": map[string]any{
			"path":  map[string]any{"type": "string", "pattern": "^/"},
			"label": map[string]any{"type": "string", "minLength": 1},
			"icon":  map[string]any{"type": "string"},
		},
	}
	nonNegative := map[string]any{"type": "number", "minimum": 0}
	period := map[string]any{"type": "string", "minLength": 1}
	samples := func(fields ...string) map[string]any {
		props := map[string]any{"period": period}
		for _, field := range fields {
			props[field] = nonNegative
		}
		return map[string]any{
			"type": nullableArray,
			"items": map[string]any{
				"type":       "object",
				"required":   append([]string{"period"}, fields...),
				"properties": props,
			},
		}
	}
	fact := map[string]any{
		"type":     "object",
		"required": []string{"value", "label"},
		"properties": map[string]any{
			"value":       map[string]any{"type": "string"},
			"label":       map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"version", "fixtures"},
		"properties": map[string]any{
			"version": map[string]any{"type": "string", "enum": []string{manifestVersionV1}},
			"name":    map[string]any{"type": "string"},
			"fixtures": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"active_path": map[string]any{"type": "string", "pattern": "^/"},
					"navigation": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"primary":   map[string]any{"type": nullableArray, "items": entry},
							"secondary": map[string]any{"type": nullableArray, "items": entry},
							"create":    map[string]any{"type": nullableArray, "items": entry},
						},
					},
					"header": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"tabs":          map[string]any{"type": nullableArray, "items": option},
							"ranges":        map[string]any{"type": nullableArray, "items": option},
							"default_range": map[string]any{"type": "integer", "minimum": 0},
						},
					},
					"stat_cards": map[string]any{
						"type": nullableArray,
						"items": map[string]any{
							"type":     "object",
							"required": []string{"kind", "code", "title"},
							"properties": map[string]any{
								"kind": map[string]any{"type": "string", "enum": []string{string(StatCardFunnel), string(StatCardBreakdown)}},
								"code": map[string]any{"type": "string", "minLength": 1},
							},
						},
					},
					"trend": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"ranges":        map[string]any{"type": nullableArray, "items": option},
							"default_range": map[string]any{"type": "integer", "minimum": 0},
							"baseline": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"conversion":  samples("closed_won", "closed_lost"),
									"lead_volume": samples("lead_count"),
									"deal_size":   samples("total_deal_size"),
								},
							},
						},
					},
					"summary": map[string]any{
						"type": nullableArray,
						"items": map[string]any{
							"type":       "object",
							"required":   []string{"code", "title", "facts"},
							"properties": map[string]any{"facts": map[string]any{"type": nullableArray, "items": fact}},
						},
					},
				},
			},
		},
	}
}
