package task

import (
	"strings"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/invariant"
)

// TaskOption names the task explicitly: --task=db:migrate.
const TaskOption = "task"

// positionalTask is the option key of the first positional argument.
const positionalTask = "0"

// Namer maps a user-typed identifier to a registry identifier.
type Namer func(identifier string) string

// Config configures a Resolver.
type Config struct {
	// Separator is the namespace separator users type.
	Separator string
	// DefaultTask runs when no identifier is given.
	DefaultTask string
	// Namer maps identifiers to registry keys. Nil uses SeparatorNamer.
	Namer Namer
}

// DefaultConfig returns ":" as separator and "help" as default task.
func DefaultConfig() Config {
	return Config{Separator: Separator, DefaultTask: "help"}
}

// SeparatorNamer lower-cases an identifier, trims surrounding space and
// rewrites sep to the registry Separator.
func SeparatorNamer(sep string) Namer {
	return func(id string) string {
		id = Canonical(id)
		if sep != Separator {
			id = strings.ReplaceAll(id, sep, Separator)
		}
		return id
	}
}

// Resolver turns options into a task instance.
type Resolver struct {
	registry *Registry
	config   Config
}

// NewResolver returns a resolver over registry.
func NewResolver(registry *Registry, cfg Config) *Resolver {
	invariant.NotNil(registry, "registry")
	invariant.NotEmpty(cfg.Separator, "separator")
	invariant.NotEmpty(cfg.DefaultTask, "default task")

	if cfg.Namer == nil {
		cfg.Namer = SeparatorNamer(cfg.Separator)
	}
	return &Resolver{registry: registry, config: cfg}
}

// Identifier picks the requested identifier from opts and returns the
// options without the consumed key. An explicit --task wins over the first
// positional argument; with neither, the default task is used.
func (r *Resolver) Identifier(opts args.Options) (string, args.Options) {
	rest := opts.Clone()

	if v, ok := rest[TaskOption]; ok && v.Valid {
		delete(rest, TaskOption)
		return v.String, rest
	}
	if v, ok := rest[positionalTask]; ok && v.Valid {
		delete(rest, positionalTask)
		return v.String, rest
	}
	return r.config.DefaultTask, rest
}

// Resolve builds the instance for opts. The remaining options are merged
// over the task defaults, and a supplied --help switches the instance to
// ModeShowHelp.
func (r *Resolver) Resolve(opts args.Options) (*Instance, error) {
	id, rest := r.Identifier(opts)

	entry, ok := r.registry.Lookup(r.config.Namer(id))
	if !ok {
		return nil, &UnknownTaskError{
			Identifier:  id,
			Suggestions: r.suggestions(id),
		}
	}

	t := entry.New()
	if t == nil {
		return nil, &UnknownTaskError{Identifier: id, Reason: "constructor returned no task"}
	}

	inst := newInstance(entry, t).SetOptions(rest)
	if rest.Has(HelpOption) {
		inst.mode = ModeShowHelp
	}

	for k := range inst.accepted {
		invariant.Postcondition(inst.options.Has(k), "accepted option %q of %q has no value", k, entry.Identifier)
	}
	return inst, nil
}

// Display rewrites a registry identifier with the configured separator.
func (r *Resolver) Display(id string) string {
	return strings.ReplaceAll(id, Separator, r.config.Separator)
}

// Config returns the resolver configuration.
func (r *Resolver) Config() Config {
	return r.config
}

func (r *Resolver) suggestions(id string) []string {
	ids := r.registry.Identifiers()
	for i, c := range ids {
		ids[i] = r.Display(c)
	}
	return suggest(strings.ToLower(id), ids)
}
