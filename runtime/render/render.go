// Package render produces the text views chore prints: task help, the task
// listing and validation errors.
package render

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/opal-lang/chore/internal/terminal"
)

// View names.
const (
	ViewTaskHelp   = "help/task"
	ViewTaskList   = "help/list"
	ViewValidation = "error/validation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// HelpView is the data of ViewTaskHelp.
type HelpView struct {
	Task        string
	Description string
	Tags        map[string]string
	Options     []OptionHelp
}

// OptionHelp is one accepted option on a help page.
type OptionHelp struct {
	Name       string
	Default    string
	HasDefault bool
}

// ListView is the data of ViewTaskList.
type ListView struct {
	Tasks     []string
	Separator string
}

// ValidationView is the data of ViewValidation.
type ValidationView struct {
	Task   string
	Errors map[string]string
}

// Renderer executes the embedded view templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the views. program is the command name shown in usage lines.
func New(program string, color bool) (*Renderer, error) {
	funcs := template.FuncMap{
		"program": func() string { return program },
		"color": func(fg, text string) string {
			return terminal.Colorize(text, fg, color)
		},
		"ucfirst": ucfirst,
		"indent":  indent,
	}

	tmpl, err := template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes view with data to w.
func (r *Renderer) Render(w io.Writer, view string, data any) error {
	if r.tmpl.Lookup(view) == nil {
		return fmt.Errorf("render: unknown view %q", view)
	}
	if err := r.tmpl.ExecuteTemplate(w, view, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	return nil
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// indent pads every non-blank line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
