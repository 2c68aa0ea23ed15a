package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/core/validation"
)

// Version is the chore release, set at build time with
// -ldflags "-X github.com/opal-lang/chore/runtime/tasks.Version=v1.2.3".
var Version = "dev"

const versionDoc = `/**
 * Prints the chore version.
 *
 * @usage chore version [--format=json]
 */`

var formatSchema = validation.JSONSchema{
	"type": "string",
	"enum": []any{"text", "json"},
}

// VersionTask prints build information.
type VersionTask struct {
	task.Base
}

// Defaults accepts --format, text by default.
func (VersionTask) Defaults() args.Options {
	return args.Options{"format": args.Str("text")}
}

// BuildValidation restricts --format to the known encodings.
func (VersionTask) BuildValidation(v *validation.Validation) {
	v.Rule("format", validation.TagSchema, validation.Schema(formatSchema))
}

// Messages names the accepted formats in the error.
func (VersionTask) Messages() validation.Messages {
	return validation.Messages{
		validation.TagSchema: ":field must be text or json, got \":value\"",
	}
}

type versionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Execute prints the version in the requested format.
func (VersionTask) Execute(_ context.Context, env *task.Env, opts args.Options) error {
	info := versionInfo{
		Version: Version,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if opts.String("format") == "json" {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	env.Term.Write(fmt.Sprintf("chore %s (%s %s/%s)", info.Version, info.Go, info.OS, info.Arch))
	return nil
}

func init() {
	task.Register("version", func() task.Task { return VersionTask{} }, versionDoc)
}
