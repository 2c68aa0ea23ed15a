package validation

import (
	"strings"

	"github.com/opal-lang/chore/core/args"
)

// Required fails for absent options, bare flags and blank values.
func Required(_ *Validation, _ string, value args.Value) bool {
	return value.Valid && strings.TrimSpace(value.String) != ""
}

// Schema returns a rule validating the field value against a JSON Schema
// with the package default SchemaValidator. Absent fields pass; use
// Required to demand presence.
func Schema(schema JSONSchema) RuleFunc {
	return SchemaWith(defaultSchemaValidator, schema)
}

// SchemaWith is Schema with an explicit validator.
func SchemaWith(sv *SchemaValidator, schema JSONSchema) RuleFunc {
	return func(v *Validation, field string, value args.Value) bool {
		if !v.data.Has(field) {
			return true
		}
		if err := sv.ValidateValue(schema, value); err != nil {
			v.Error(field, TagSchema, err.Error())
			return false
		}
		return true
	}
}
