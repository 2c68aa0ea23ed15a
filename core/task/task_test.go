package task

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/validation"
	"github.com/opal-lang/chore/runtime/render"
)

// stubTask accepts the options in defaults and records Execute calls.
type stubTask struct {
	Base
	defaults args.Options
	ran      args.Options
	err      error
}

func (s *stubTask) Defaults() args.Options {
	if s.defaults == nil {
		return args.Options{}
	}
	return s.defaults.Clone()
}

func (s *stubTask) Execute(_ context.Context, _ *Env, opts args.Options) error {
	s.ran = opts
	return s.err
}

// ruledTask requires --name and supplies its own messages.
type ruledTask struct {
	stubTask
}

func (r *ruledTask) BuildValidation(v *validation.Validation) {
	v.Rule("name", validation.TagRequired, validation.Required)
}

func (r *ruledTask) Messages() validation.Messages {
	return validation.Messages{validation.TagOption: "--:field is unknown"}
}

// recordingRenderer captures the last rendered view.
type recordingRenderer struct {
	view string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, view string, data any) error {
	r.view, r.data = view, data
	_, err := fmt.Fprintf(w, "<%s>", view)
	return err
}

func TestBaseDefaultsAreEmpty(t *testing.T) {
	assert.Empty(t, Base{}.Defaults())
}

func TestBaseHelpRendersTaskView(t *testing.T) {
	rr := &recordingRenderer{}
	var out bytes.Buffer
	env := &Env{Stdout: &out, Renderer: rr}

	info := Info{
		Identifier: "db:migrate",
		Doc:        "/**\n * Does X.\n * @author Jane\n */",
		Defaults:   args.Options{"step": args.Str("1")},
	}
	require.NoError(t, Base{}.Help(context.Background(), env, info))

	assert.Equal(t, render.ViewTaskHelp, rr.view)
	assert.Equal(t, "<help/task>", out.String())
	assert.Equal(t, render.HelpView{
		Task:        "db:migrate",
		Description: "Does X.",
		Tags:        map[string]string{"author": "Jane"},
		Options:     []render.OptionHelp{{Name: "step", Default: "1", HasDefault: true}},
	}, rr.data)
}

func TestNewHelpViewOptions(t *testing.T) {
	view := NewHelpView(Info{
		Identifier: "deploy",
		Doc:        "Ships the build.",
		Defaults: args.Options{
			"target":  args.Str("staging"),
			"dry-run": args.Null(),
		},
	})

	assert.Equal(t, "Ships the build.", view.Description)
	assert.Equal(t, []render.OptionHelp{
		{Name: "dry-run"},
		{Name: "target", Default: "staging", HasDefault: true},
	}, view.Options)
}

func TestBaseHelpPropagatesRenderError(t *testing.T) {
	env := &Env{Stdout: failingWriter{}, Renderer: &recordingRenderer{}}
	err := Base{}.Help(context.Background(), env, Info{Identifier: "x"})
	assert.ErrorIs(t, err, errWrite)
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }
