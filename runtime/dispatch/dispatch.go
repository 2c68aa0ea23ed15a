// Package dispatch runs a resolved task instance and turns whatever goes
// wrong into an exit code.
//
// A Dispatcher takes one of two paths, fixed by the instance mode: render
// the task help, or validate the options and execute the task. Every
// failure leaves the dispatcher as an *Error, which Handler logs, prints and
// maps to a non-zero exit code.
package dispatch

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/opal-lang/chore/core/invariant"
	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/core/validation"
	"github.com/opal-lang/chore/runtime/render"
)

// Dispatcher runs task instances against one environment.
type Dispatcher struct {
	env    *task.Env
	logger *zap.Logger
}

// New returns a dispatcher over env. A nil env.Logger logs nothing.
func New(env *task.Env) *Dispatcher {
	invariant.NotNil(env, "task environment")
	invariant.NotNil(env.Stdout, "stdout")
	invariant.NotNil(env.Renderer, "renderer")

	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{env: env, logger: logger}
}

// Dispatch runs inst in its mode. In ModeExecute the task body only runs
// when every supplied option passes validation; otherwise the validation
// view is printed and the returned *Error is marked as reported.
func (d *Dispatcher) Dispatch(ctx context.Context, inst *task.Instance) error {
	invariant.NotNil(inst, "task instance")

	id := inst.Identifier()
	d.logger.Debug("dispatching task",
		zap.String("task", id),
		zap.Stringer("mode", inst.Mode()),
		zap.Strings("options", inst.Options().Keys()))

	switch inst.Mode() {
	case task.ModeShowHelp:
		if err := inst.Task().Help(ctx, d.env, inst.Info()); err != nil {
			return Wrap(id, err)
		}
		return nil

	case task.ModeExecute:
		if err := d.validate(inst); err != nil {
			return err
		}
		if err := inst.Task().Execute(ctx, d.env, inst.Options()); err != nil {
			return Wrap(id, err)
		}
		return nil

	default:
		invariant.Invariant(false, "unknown dispatch mode %d", int(inst.Mode()))
		return nil
	}
}

func (d *Dispatcher) validate(inst *task.Instance) error {
	v := inst.BuildValidation(validation.New(inst.Options()))
	if v.Check() {
		return nil
	}

	rejected := &validation.OptionRejectedError{
		Task:   inst.Identifier(),
		Errors: v.Errors(inst.Messages()),
	}

	view := render.ValidationView{Task: rejected.Task, Errors: rejected.Errors}
	if err := d.env.Renderer.Render(d.env.Stdout, render.ViewValidation, view); err != nil {
		return Wrap(rejected.Task, errors.Join(rejected, err))
	}

	e := Wrap(rejected.Task, rejected)
	e.Reported = true
	return e
}
