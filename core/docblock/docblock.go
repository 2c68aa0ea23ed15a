// Package docblock turns free-text task documentation into a description and
// a set of tags for help output.
//
// Documentation is written either as a comment block
//
//	/**
//	 * Migrates the database.
//	 *
//	 * @usage chore db:migrate --step=1
//	 */
//
// or as bare text with the same tag lines. Tag lines start with "@name" and
// are removed from the description; everything else is kept in order.
package docblock

import (
	"regexp"
	"strings"
)

// Block is parsed documentation.
type Block struct {
	Description string
	// Tags maps a tag name to its text. A repeated tag keeps the last text;
	// a tag with no text maps to "".
	Tags map[string]string
}

var (
	linePrefix = regexp.MustCompile(`^\s*\*? ?`)
	tagLine    = regexp.MustCompile(`^@(\S+)(?:\s*(.+))?$`)
)

// Extract parses a comment block. The first and last lines are the
// block delimiters and are discarded.
func Extract(raw string) Block {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return parseLines(nil)
	}
	return parseLines(lines[1 : len(lines)-1])
}

// Parse parses bare documentation text without delimiter lines.
func Parse(text string) Block {
	return parseLines(splitLines(text))
}

// FromSource picks Extract for text that opens a comment block and Parse
// for everything else.
func FromSource(doc string) Block {
	if trimmed := strings.TrimSpace(doc); strings.HasPrefix(trimmed, "/*") {
		return Extract(trimmed)
	}
	return Parse(doc)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func parseLines(lines []string) Block {
	b := Block{Tags: map[string]string{}}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = linePrefix.ReplaceAllString(line, "")

		if m := tagLine.FindStringSubmatch(line); m != nil {
			b.Tags[m[1]] = m[2]
			continue
		}
		kept = append(kept, line)
	}

	b.Description = strings.TrimSpace(strings.Join(kept, "\n"))
	return b
}
