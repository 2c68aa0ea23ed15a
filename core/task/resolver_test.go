package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/chore/core/args"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register("help", newStub, "Lists tasks.")
	r.Register("db:migrate", func() Task {
		return &stubTask{defaults: args.Options{"step": args.Str("1")}}
	}, "Runs migrations.")
	r.Register("db:seed", newStub, "")
	return r
}

func resolve(t *testing.T, cfg Config, argv ...string) (*Instance, error) {
	t.Helper()
	res := NewResolver(testRegistry(), cfg)
	return res.Resolve(args.Parse(append([]string{"chore"}, argv...)).Options())
}

func TestResolveNoIdentifierUsesDefaultTask(t *testing.T) {
	inst, err := resolve(t, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "help", inst.Identifier())
	assert.Equal(t, ModeExecute, inst.Mode())
}

func TestResolvePositionalIdentifier(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), "db:migrate", "--step=3")
	require.NoError(t, err)
	assert.Equal(t, "db:migrate", inst.String())
	assert.Equal(t, args.Options{"step": args.Str("3")}, inst.Options())
}

func TestResolveTaskOptionWins(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), "db:seed", "--task=db:migrate")
	require.NoError(t, err)
	assert.Equal(t, "db:migrate", inst.Identifier())

	// The positional that lost stays in the options and is rejected later.
	assert.Equal(t, args.Str("db:seed"), inst.Options()["0"])
}

func TestResolveNullTaskOptionIsNotConsumed(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), "db:seed", "--task")
	require.NoError(t, err)
	assert.Equal(t, "db:seed", inst.Identifier())
	assert.True(t, inst.Options().Has(TaskOption))
}

func TestResolveDefaultsMerge(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), "db:migrate")
	require.NoError(t, err)
	assert.Equal(t, args.Options{"step": args.Str("1")}, inst.Options())
	assert.Equal(t, []string{"step"}, inst.AcceptedOptions())
}

func TestResolveHelpMode(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), "db:migrate", "--help", "--bogus")
	require.NoError(t, err)
	assert.Equal(t, ModeShowHelp, inst.Mode())
	assert.Equal(t, []string{"step"}, inst.AcceptedOptions())
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	inst, err := resolve(t, DefaultConfig(), " DB:Migrate ")
	require.NoError(t, err)
	assert.Equal(t, "db:migrate", inst.Identifier())
}

func TestResolveCustomSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Separator = "."

	inst, err := resolve(t, cfg, "db.migrate")
	require.NoError(t, err)
	assert.Equal(t, "db:migrate", inst.Identifier())

	res := NewResolver(testRegistry(), cfg)
	assert.Equal(t, "db.migrate", res.Display("db:migrate"))
}

func TestResolveCustomNamer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Namer = func(id string) string { return "db:" + id }

	inst, err := resolve(t, cfg, "seed")
	require.NoError(t, err)
	assert.Equal(t, "db:seed", inst.Identifier())
}

func TestResolveUnknownTask(t *testing.T) {
	_, err := resolve(t, DefaultConfig(), "db:migrat")
	require.Error(t, err)

	var unknown *UnknownTaskError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "db:migrat", unknown.Identifier)
	assert.Contains(t, err.Error(), "db:migrat")
	assert.Equal(t, "db:migrate", unknown.Suggestions[0])
}

func TestResolveUnknownDefaultTask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTask = "list"

	_, err := resolve(t, cfg)
	var unknown *UnknownTaskError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, `task "list" is not a valid task`, err.Error())
}

func TestResolveNilTask(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", func() Task { return nil }, "")

	_, err := NewResolver(r, DefaultConfig()).Resolve(args.Options{"0": args.Str("broken")})
	assert.EqualError(t, err, `task "broken" is not a valid task: constructor returned no task`)
}

func TestNewResolverPreconditions(t *testing.T) {
	assert.Panics(t, func() { NewResolver(nil, DefaultConfig()) })
	assert.Panics(t, func() { NewResolver(NewRegistry(), Config{DefaultTask: "help"}) })
	assert.Panics(t, func() { NewResolver(NewRegistry(), Config{Separator: ":"}) })
}

func TestSeparatorNamer(t *testing.T) {
	tests := []struct {
		sep, in, want string
	}{
		{":", "DB:Migrate", "db:migrate"},
		{".", "db.migrate", "db:migrate"},
		{"/", " cache/clear ", "cache:clear"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SeparatorNamer(tt.sep)(tt.in))
		})
	}
}
