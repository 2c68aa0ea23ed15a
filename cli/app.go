// Package cli wires configuration, logging, the task registry and the
// dispatcher into one invocation of chore.
package cli

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/internal/config"
	"github.com/opal-lang/chore/internal/logging"
	"github.com/opal-lang/chore/internal/terminal"
	"github.com/opal-lang/chore/runtime/dispatch"
	"github.com/opal-lang/chore/runtime/render"
)

// App is one chore process.
type App struct {
	Program string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string

	// Registry holds the runnable tasks. Nil uses task.Default().
	Registry *task.Registry

	// ColorOf is checked for a terminal in colour mode auto. Nil
	// disables auto colour.
	ColorOf *os.File
}

// NewApp returns an App bound to the process streams and environment.
func NewApp(program string) *App {
	return &App{
		Program: program,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		ColorOf: os.Stdout,
	}
}

// Run executes argv (argv[0] is the program name) and returns the process
// exit code.
func (a *App) Run(ctx context.Context, argv []string) int {
	cfg, err := config.Load(config.Path(a.Getenv), a.Getenv)
	if err != nil {
		FormatError(a.Stderr, &CLIError{
			Type:    "config",
			Message: err.Error(),
			Hint:    "Fix the file named by " + config.EnvConfigPath + " or remove it to use the defaults.",
		}, false)
		return 1
	}

	useColor := terminal.ColorEnabled(cfg.Color, a.ColorOf)

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		FormatError(a.Stderr, err, useColor)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	formatter := Formatter{Program: a.Program, UseColor: useColor}
	handler := dispatch.NewHandler(a.Stderr, logger, formatter.Format)

	renderer, err := render.New(a.Program, useColor)
	if err != nil {
		return handler.Handle(err)
	}

	registry := a.Registry
	if registry == nil {
		registry = task.Default()
	}

	resolver := task.NewResolver(registry, task.Config{
		Separator:   cfg.Separator,
		DefaultTask: cfg.DefaultTask,
	})

	inst, err := resolver.Resolve(args.Parse(argv).Options())
	if err != nil {
		return handler.Handle(dispatch.Wrap("", err))
	}

	env := &task.Env{
		Stdout:    a.Stdout,
		Stdin:     a.Stdin,
		Renderer:  renderer,
		Registry:  registry,
		Separator: cfg.Separator,
		Config:    cfg,
		Site:      cfg.Site(""),
		Term:      terminal.New(a.Stdin, a.Stdout, useColor),
		Logger:    logger.With(zap.String("task", inst.Identifier())),
	}

	return handler.Handle(dispatch.New(env).Dispatch(ctx, inst))
}
