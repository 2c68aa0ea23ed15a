package task

import (
	"sort"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/invariant"
	"github.com/opal-lang/chore/core/validation"
)

// Mode selects what dispatching an instance does.
type Mode int

const (
	// ModeExecute validates the options and runs the task.
	ModeExecute Mode = iota
	// ModeShowHelp renders the task help without validating.
	ModeShowHelp
)

func (m Mode) String() string {
	switch m {
	case ModeExecute:
		return "execute"
	case ModeShowHelp:
		return "help"
	default:
		return "unknown"
	}
}

// HelpOption is the reserved option that switches an instance to
// ModeShowHelp. It is never an accepted option.
const HelpOption = "help"

// Instance is one resolved task for one invocation.
type Instance struct {
	entry    Entry
	task     Task
	options  args.Options
	accepted map[string]struct{}
	mode     Mode
}

func newInstance(entry Entry, t Task) *Instance {
	defaults := t.Defaults()

	accepted := make(map[string]struct{}, len(defaults))
	for k := range defaults {
		accepted[k] = struct{}{}
	}

	return &Instance{
		entry:    entry,
		task:     t,
		options:  defaults.Clone(),
		accepted: accepted,
		mode:     ModeExecute,
	}
}

// Identifier returns the registered identifier of the task.
func (i *Instance) Identifier() string { return i.entry.Identifier }

func (i *Instance) String() string { return i.entry.Identifier }

// Task returns the task implementation.
func (i *Instance) Task() Task { return i.task }

// Mode returns the dispatch mode.
func (i *Instance) Mode() Mode { return i.mode }

// Info returns the data the help renderer needs.
func (i *Instance) Info() Info {
	return Info{
		Identifier: i.entry.Identifier,
		Doc:        i.entry.Doc,
		Defaults:   i.task.Defaults(),
	}
}

// Options returns a copy of the merged options.
func (i *Instance) Options() args.Options {
	return i.options.Clone()
}

// AcceptedOptions returns the accepted option names, sorted.
func (i *Instance) AcceptedOptions() []string {
	out := make([]string, 0, len(i.accepted))
	for k := range i.accepted {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetOptions overlays opts on the current options. Supplied values win.
// The accepted set does not change.
func (i *Instance) SetOptions(opts args.Options) *Instance {
	before := len(i.accepted)
	for k, v := range opts {
		i.options[k] = v
	}
	invariant.Invariant(len(i.accepted) == before, "accepted options of %q must not grow", i.entry.Identifier)
	return i
}

// ValidOption is the rule installed for every supplied option: the option
// name must be one the task accepts.
func (i *Instance) ValidOption(v *validation.Validation, field string, _ args.Value) bool {
	if _, ok := i.accepted[field]; !ok {
		v.Error(field, validation.TagOption)
		return false
	}
	return true
}

// BuildValidation installs the accepted-option rule for every option under
// validation, then any rules the task adds itself.
func (i *Instance) BuildValidation(v *validation.Validation) *validation.Validation {
	for field := range v.Data() {
		v.Rule(field, validation.TagOption, i.ValidOption)
	}
	if rb, ok := i.task.(RuleBuilder); ok {
		rb.BuildValidation(v)
	}
	return v
}

// Messages returns the validation messages of the task.
func (i *Instance) Messages() validation.Messages {
	if mp, ok := i.task.(MessageProvider); ok {
		return mp.Messages()
	}
	return nil
}
