package task

import (
	"sort"
	"strings"
	"sync"

	"github.com/opal-lang/chore/core/invariant"
	"github.com/opal-lang/chore/core/taskindex"
)

// Separator joins the segments of a registered identifier. The separator
// users type is configurable; the resolver's Namer maps it to this one.
const Separator = ":"

// Constructor builds a fresh task. Constructors must not perform I/O.
type Constructor func() Task

// Entry is a registered task.
type Entry struct {
	Identifier string
	New        Constructor
	Doc        string
}

// Registry maps task identifiers to constructors.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

var global = NewRegistry()

// Default returns the process-wide registry that Register writes to.
func Default() *Registry {
	return global
}

// reserved are characters a task identifier cannot contain: the task index
// reads them as path and file-suffix separators.
const reserved = `./\`

// Canonical returns the registry form of an identifier: trimmed and
// lower-cased.
func Canonical(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Register adds a task to the default registry under Canonical(id). It
// panics on an empty identifier, one containing '.', '/' or '\', a nil
// constructor or a duplicate identifier.
func Register(id string, fn Constructor, doc string) {
	global.Register(id, fn, doc)
}

// Register adds a task to r. See the package-level Register.
func (r *Registry) Register(id string, fn Constructor, doc string) {
	id = Canonical(id)
	invariant.NotEmpty(id, "task identifier")
	invariant.Precondition(!strings.ContainsAny(id, reserved), "task identifier %q must not contain any of %q", id, reserved)
	invariant.NotNil(fn, "task constructor")

	r.mu.Lock()
	defer r.mu.Unlock()

	_, dup := r.entries[id]
	invariant.Precondition(!dup, "task %q registered twice", id)

	r.entries[id] = Entry{Identifier: id, New: fn, Doc: doc}
}

// Lookup returns the entry registered under Canonical(id).
func (r *Registry) Lookup(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[Canonical(id)]
	return e, ok
}

// Identifiers returns every registered identifier, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Tree returns the registered identifiers as a namespace tree.
func (r *Registry) Tree() []taskindex.Node {
	return taskindex.FromIdentifiers(r.Identifiers(), Separator)
}
