package invariant_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/chore/core/invariant"
)

// panicMessage runs fn and returns the recovered panic message, or "" if fn returned normally.
func panicMessage(fn func()) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%v", r)
		}
	}()
	fn()
	return ""
}

func TestPrecondition(t *testing.T) {
	assert.Empty(t, panicMessage(func() { invariant.Precondition(true, "ok") }))

	msg := panicMessage(func() { invariant.Precondition(false, "id %q must be registered", "db:migrate") })
	assert.Contains(t, msg, "PRECONDITION VIOLATION")
	assert.Contains(t, msg, `id "db:migrate" must be registered`)
	assert.Contains(t, msg, "at ")
}

func TestPostcondition(t *testing.T) {
	assert.Empty(t, panicMessage(func() { invariant.Postcondition(2+2 == 4, "math works") }))
	assert.Contains(t, panicMessage(func() { invariant.Postcondition(false, "instance built") }), "POSTCONDITION VIOLATION")
}

func TestInvariant(t *testing.T) {
	msg := panicMessage(func() { invariant.Invariant(false, "accepted keys must not grow") })
	assert.Contains(t, msg, "INVARIANT VIOLATION")
	assert.Contains(t, msg, "accepted keys must not grow")
}

func TestNotNil(t *testing.T) {
	s := "hello"
	assert.Empty(t, panicMessage(func() { invariant.NotNil(&s, "ptr") }))
	assert.Empty(t, panicMessage(func() { invariant.NotNil([]int{1}, "slice") }))

	tests := []struct {
		name  string
		value interface{}
	}{
		{"untyped nil", nil},
		{"nil pointer", (*string)(nil)},
		{"nil func", (func())(nil)},
		{"nil map", (map[string]int)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := panicMessage(func() { invariant.NotNil(tt.value, "constructor") })
			assert.Contains(t, msg, "constructor must not be nil")
		})
	}
}

func TestNotEmpty(t *testing.T) {
	assert.Empty(t, panicMessage(func() { invariant.NotEmpty(":", "separator") }))
	assert.Contains(t, panicMessage(func() { invariant.NotEmpty("", "separator") }), "separator must not be empty")
}
