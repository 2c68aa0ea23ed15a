// Package task defines the task contract, the task registry and the
// resolver that turns parsed command-line options into a task instance.
//
// Tasks register a constructor under a colon-joined identifier, following
// the database/sql driver registration pattern:
//
//	func init() {
//	    task.Register("db:migrate", func() task.Task { return &Migrate{} }, migrateDoc)
//	}
//
// A task declares the options it accepts by returning their defaults from
// Defaults. Any other supplied option is rejected before Execute runs.
package task

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/docblock"
	"github.com/opal-lang/chore/core/validation"
	"github.com/opal-lang/chore/internal/config"
	"github.com/opal-lang/chore/internal/terminal"
	"github.com/opal-lang/chore/runtime/render"
)

// Task is the capability set every task implements. Embed Base to inherit
// an empty option contract and the standard help page.
type Task interface {
	// Defaults returns the accepted options and their default values.
	Defaults() args.Options
	// Execute runs the task with the merged, validated options.
	Execute(ctx context.Context, env *Env, opts args.Options) error
	// Help renders the help page for the task.
	Help(ctx context.Context, env *Env, info Info) error
}

// RuleBuilder is implemented by tasks that add their own validation rules
// on top of the accepted-option check.
type RuleBuilder interface {
	BuildValidation(v *validation.Validation)
}

// MessageProvider is implemented by tasks that override validation
// messages. Tags not present fall back to validation.DefaultMessages.
type MessageProvider interface {
	Messages() validation.Messages
}

// Renderer produces a named view.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

// Env is what a task may touch while running.
type Env struct {
	Stdout    io.Writer
	Stdin     io.Reader
	Renderer  Renderer
	Registry  *Registry
	Separator string
	Config    *config.Config
	Site      config.Site
	Term      *terminal.Terminal
	Logger    *zap.Logger
}

// Info describes a resolved task for help output.
type Info struct {
	Identifier string
	Doc        string
	Defaults   args.Options
}

// Base supplies the parts of Task most tasks share.
type Base struct{}

// Defaults returns no options.
func (Base) Defaults() args.Options {
	return args.Options{}
}

// Help renders the task documentation through the "help/task" view.
func (Base) Help(_ context.Context, env *Env, info Info) error {
	return env.Renderer.Render(env.Stdout, render.ViewTaskHelp, NewHelpView(info))
}

// NewHelpView parses the task documentation into view data.
func NewHelpView(info Info) render.HelpView {
	block := docblock.FromSource(info.Doc)

	view := render.HelpView{
		Task:        info.Identifier,
		Description: block.Description,
		Tags:        block.Tags,
	}
	for _, name := range info.Defaults.Keys() {
		v := info.Defaults[name]
		view.Options = append(view.Options, render.OptionHelp{Name: name, Default: v.String, HasDefault: v.Valid})
	}
	return view
}
