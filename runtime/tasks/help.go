package tasks

import (
	"context"
	"strings"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/core/taskindex"
	"github.com/opal-lang/chore/runtime/render"
)

const helpDoc = `/**
 * Lists every registered task.
 *
 * This is the task chore runs when no task is named.
 * @usage chore help
 */`

// Help lists the registered tasks.
type Help struct {
	task.Base
}

// Execute renders the task list of env.Registry.
func (Help) Execute(_ context.Context, env *task.Env, _ args.Options) error {
	return env.Renderer.Render(env.Stdout, render.ViewTaskList, render.ListView{
		Tasks:     List(env.Registry, env.Separator),
		Separator: env.Separator,
	})
}

// List compiles the task index of l and joins segments with sep.
func List(l taskindex.Lister, sep string) []string {
	ids := taskindex.Compile(l.Tree(), "", task.Separator)
	if sep != task.Separator {
		for i, id := range ids {
			ids[i] = strings.ReplaceAll(id, task.Separator, sep)
		}
	}
	return ids
}

func init() {
	task.Register("help", func() task.Task { return Help{} }, helpDoc)
}
