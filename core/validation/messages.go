package validation

import (
	"fmt"
	"strings"

	"github.com/opal-lang/chore/core/args"
)

// Rule tags with a default message.
const (
	TagOption   = "task_option"
	TagRequired = "required"
	TagSchema   = "schema"
)

// Messages maps an error tag to a message template. Templates may use
// :field, :value and :param1, :param2, ... placeholders.
type Messages map[string]string

// DefaultMessages is used for any tag a task does not override.
var DefaultMessages = Messages{
	TagOption:   ":field is not a valid option for this task",
	TagRequired: ":field must not be empty",
	TagSchema:   ":field is invalid: :param1",
}

// Format renders e. Tags missing from both m and DefaultMessages render as
// "field.tag".
func (m Messages) Format(e FieldError, value args.Value) string {
	tmpl, ok := m[e.Tag]
	if !ok {
		tmpl, ok = DefaultMessages[e.Tag]
	}
	if !ok {
		return e.Field + "." + e.Tag
	}

	pairs := []string{":field", e.Field, ":value", value.String}
	// Highest index first so :param1 does not eat the prefix of :param10.
	for i := len(e.Params) - 1; i >= 0; i-- {
		pairs = append(pairs, fmt.Sprintf(":param%d", i+1), e.Params[i])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
