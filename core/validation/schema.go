package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"

	"github.com/opal-lang/chore/core/args"
)

// JSONSchema is a JSON Schema (draft 2020-12) document describing one
// option value.
type JSONSchema map[string]any

// SchemaValidator validates option values against JSON Schemas.
type SchemaValidator struct {
	config *SchemaConfig
	cache  *schemaCache
}

var defaultSchemaValidator = NewSchemaValidator(nil)

// NewSchemaValidator returns a validator; a nil config uses
// DefaultSchemaConfig.
func NewSchemaValidator(config *SchemaConfig) *SchemaValidator {
	if config == nil {
		config = DefaultSchemaConfig()
	}

	var cache *schemaCache
	if config.EnableCache {
		cache = newSchemaCache(config.MaxCacheSize)
	}

	return &SchemaValidator{config: config, cache: cache}
}

// ValidateValue checks a command-line value against schema. The raw string
// is first coerced to the schema's declared type so "3" satisfies
// {"type": "integer"}; a bare flag is validated as JSON null.
func (sv *SchemaValidator) ValidateValue(schema JSONSchema, value args.Value) error {
	compiled, err := sv.compiled(schema)
	if err != nil {
		return fmt.Errorf("schema compilation failed: %w", err)
	}

	if err := compiled.Validate(coerce(schema, value)); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func (sv *SchemaValidator) compiled(schema JSONSchema) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("schema marshal failed: %w", err)
	}
	if len(raw) > sv.config.MaxSchemaSize {
		return nil, fmt.Errorf("schema too large: %d bytes (max: %d)", len(raw), sv.config.MaxSchemaSize)
	}
	if depth := measureDepth(map[string]any(schema), 0); depth > sv.config.MaxSchemaDepth {
		return nil, fmt.Errorf("schema too deep: %d levels (max: %d)", depth, sv.config.MaxSchemaDepth)
	}

	key := keyOf(raw)
	if sv.cache != nil {
		if s, ok := sv.cache.get(key); ok {
			return s, nil
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = sv.config.AssertFormat
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	for name, fn := range formatValidators() {
		compiler.Formats[name] = fn
	}
	compiler.LoadURL = sv.loader()

	const url = "schema://option.json"
	if err := compiler.AddResource(url, strings.NewReader(string(raw))); err != nil {
		return nil, err
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}

	if sv.cache != nil {
		sv.cache.put(key, s)
	}
	return s, nil
}

func (sv *SchemaValidator) loader() func(string) (io.ReadCloser, error) {
	return func(url string) (io.ReadCloser, error) {
		if !sv.config.AllowRemoteRef && (strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
			return nil, fmt.Errorf("remote $ref not allowed: %s", url)
		}

		for _, scheme := range sv.config.AllowedSchemes {
			if strings.HasPrefix(url, scheme+":") {
				return jsonschema.LoadURL(url)
			}
		}
		return nil, fmt.Errorf("URL scheme not allowed: %s", url)
	}
}

// coerce converts a command-line value to the JSON type the schema asks for.
// Values that do not parse are passed through as strings and fail the
// schema's type check.
func coerce(schema JSONSchema, value args.Value) any {
	if !value.Valid {
		return nil
	}

	typ, _ := schema["type"].(string)
	switch typ {
	case "integer", "number":
		if f, err := strconv.ParseFloat(value.String, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(value.String); err == nil {
			return b
		}
	}
	return value.String
}

func formatValidators() map[string]func(interface{}) bool {
	return map[string]func(interface{}) bool{
		"duration": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			_, err := time.ParseDuration(s)
			return err == nil
		},
		"cidr": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			_, err := netip.ParsePrefix(s)
			return err == nil
		},
		"semver": func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			if !strings.HasPrefix(s, "v") {
				s = "v" + s
			}
			return semver.IsValid(s)
		},
	}
}

// convertValidationError reduces a jsonschema error tree to its most
// specific message.
func convertValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return errors.New(ve.Message)
}

func measureDepth(m map[string]any, depth int) int {
	deepest := depth

	visit := func(child any) {
		var cm map[string]any
		switch c := child.(type) {
		case JSONSchema:
			cm = c
		case map[string]any:
			cm = c
		default:
			return
		}
		if d := measureDepth(cm, depth+1); d > deepest {
			deepest = d
		}
	}

	switch props := m["properties"].(type) {
	case map[string]any:
		for _, p := range props {
			visit(p)
		}
	case map[string]JSONSchema:
		for _, p := range props {
			visit(p)
		}
	}
	if items, ok := m["items"]; ok {
		visit(items)
	}
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		switch list := m[key].(type) {
		case []any:
			for _, s := range list {
				visit(s)
			}
		case []JSONSchema:
			for _, s := range list {
				visit(s)
			}
		}
	}
	return deepest
}
