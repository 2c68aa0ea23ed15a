package task

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// UnknownTaskError reports an identifier that does not resolve to a task.
type UnknownTaskError struct {
	Identifier  string
	Reason      string
	Suggestions []string
}

func (e *UnknownTaskError) Error() string {
	msg := fmt.Sprintf("task %q is not a valid task", e.Identifier)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ExitError attaches a process exit code to a task failure.
type ExitError struct {
	Code int
	Err  error
}

// Exit wraps err with an exit code.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the attached code.
func (e *ExitError) ExitCode() int { return e.Code }

const maxSuggestions = 3

// suggest returns registered identifiers close to id: fuzzy subsequence
// matches first, then small edit-distance typos.
func suggest(id string, candidates []string) []string {
	if id == "" {
		return nil
	}

	seen := map[string]bool{}
	var out []string

	ranks := fuzzy.RankFindFold(id, candidates)
	sort.Sort(ranks)
	for _, r := range ranks {
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
	}

	type near struct {
		target string
		dist   int
	}
	var typos []near
	limit := max(2, len(id)/3)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(id, c); d <= limit {
			typos = append(typos, near{c, d})
		}
	}
	sort.SliceStable(typos, func(i, j int) bool { return typos[i].dist < typos[j].dist })
	for _, t := range typos {
		out = append(out, t.target)
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
