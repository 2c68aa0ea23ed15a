// Package invariant provides contract assertions for chore.
//
// Assertions guard programmer errors: registering a task without a
// constructor, resolving with a nil registry, an empty separator. They are
// never used for user input, which is reported through ordinary errors.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Register(id string, fn Constructor) {
//	    invariant.Precondition(id != "", "task identifier must not be empty")
//	    // ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during execution.
// Panics with INVARIANT VIOLATION if condition is false.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils such as (*T)(nil)
// or a nil func stored in an interface.
func NotNil(value interface{}, name string) {
	if isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// NotEmpty panics if s is the empty string.
func NotEmpty(s, name string) {
	if s == "" {
		fail("PRECONDITION", "%s must not be empty", name)
	}
}

func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// fail panics with a formatted message including the caller location.
func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
