// Package validation checks option values against per-field rules.
//
// A Validation holds the data under test and a list of rules per field.
// Rules are plain functions that receive the whole Validation, the field
// name and the field value, so a rule can inspect other fields or record an
// error with its own tag. The first failing rule of a field wins; later
// rules for that field are skipped.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/invariant"
)

// RuleFunc checks one field. Returning false records an error tagged with
// the rule name, unless the rule already recorded its own error for the
// field.
type RuleFunc func(v *Validation, field string, value args.Value) bool

type rule struct {
	name string
	fn   RuleFunc
}

// FieldError describes one failed field.
type FieldError struct {
	Field  string
	Tag    string
	Params []string
}

// Validation is a set of rules over a fixed option map.
type Validation struct {
	data   args.Options
	rules  map[string][]rule
	errors map[string]FieldError
}

// New returns a Validation over a copy of data.
func New(data args.Options) *Validation {
	return &Validation{
		data:   data.Clone(),
		rules:  make(map[string][]rule),
		errors: make(map[string]FieldError),
	}
}

// Data returns a copy of the data under validation.
func (v *Validation) Data() args.Options {
	return v.data.Clone()
}

// Rule adds a named rule for field.
func (v *Validation) Rule(field, name string, fn RuleFunc) *Validation {
	invariant.NotEmpty(name, "rule name")
	invariant.NotNil(fn, "rule func")

	v.rules[field] = append(v.rules[field], rule{name: name, fn: fn})
	return v
}

// Error records a failure for field. The first error of a field is kept.
func (v *Validation) Error(field, tag string, params ...string) *Validation {
	if _, exists := v.errors[field]; !exists {
		v.errors[field] = FieldError{Field: field, Tag: tag, Params: params}
	}
	return v
}

// Check runs every rule and reports whether all fields passed. Check can be
// called again; each call starts from a clean error set.
func (v *Validation) Check() bool {
	v.errors = make(map[string]FieldError)

	fields := make([]string, 0, len(v.rules))
	for f := range v.rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		for _, r := range v.rules[field] {
			if _, failed := v.errors[field]; failed {
				break
			}
			if !r.fn(v, field, value) {
				v.Error(field, r.name)
			}
		}
	}

	return len(v.errors) == 0
}

// FieldErrors returns the recorded errors ordered by field.
func (v *Validation) FieldErrors() []FieldError {
	out := make([]FieldError, 0, len(v.errors))
	for _, e := range v.errors {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Errors renders the recorded errors with msgs, falling back to
// DefaultMessages for unknown tags.
func (v *Validation) Errors(msgs Messages) map[string]string {
	out := make(map[string]string, len(v.errors))
	for field, e := range v.errors {
		out[field] = msgs.Format(e, v.data[field])
	}
	return out
}

// OptionRejectedError reports options that failed validation.
type OptionRejectedError struct {
	Task   string
	Errors map[string]string
}

func (e *OptionRejectedError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("task %q rejected options: %s", e.Task, strings.Join(fields, ", "))
}
