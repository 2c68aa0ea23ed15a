package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/core/validation"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "config", "task", "options", "execution"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Formatter prints errors for one program.
type Formatter struct {
	Program  string
	UseColor bool
}

// Format implements dispatch.FormatFunc.
func (f Formatter) Format(w io.Writer, err error) {
	FormatError(w, f.describe(err), f.UseColor)
}

// describe turns the known error kinds into a CLIError.
func (f Formatter) describe(err error) error {
	var (
		unknown  *task.UnknownTaskError
		rejected *validation.OptionRejectedError
		cliErr   *CLIError
	)
	switch {
	case errors.As(err, &cliErr):
		return cliErr
	case errors.As(err, &unknown):
		return &CLIError{
			Type:    "task",
			Message: unknown.Error(),
			Hint:    f.unknownTaskHint(unknown),
		}
	case errors.As(err, &rejected):
		return &CLIError{
			Type:    "options",
			Message: rejected.Error(),
			Details: optionDetails(rejected.Errors),
			Hint:    fmt.Sprintf("Run '%s %s --help' for the options it accepts.", f.Program, rejected.Task),
		}
	default:
		return err
	}
}

func (f Formatter) unknownTaskHint(e *task.UnknownTaskError) string {
	list := fmt.Sprintf("Run '%s help' to list the available tasks.", f.Program)
	switch len(e.Suggestions) {
	case 0:
		return list
	case 1:
		return fmt.Sprintf("Did you mean %q? %s", e.Suggestions[0], list)
	default:
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("Did you mean one of %s? %s", strings.Join(quoted, ", "), list)
	}
}

func optionDetails(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("  --%s: %s", f, errs[f])
	}
	return strings.Join(lines, "\n")
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *CLIError:
		formatCLIError(w, e, useColor)
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
	}
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}
