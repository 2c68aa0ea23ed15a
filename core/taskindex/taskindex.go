// Package taskindex compiles a tree of task implementations into the flat
// list of task identifiers shown by the help listing.
package taskindex

import (
	"path"
	"sort"
	"strings"

	"github.com/opal-lang/chore/core/invariant"
)

// Node is one entry of a task tree. A node with children is a namespace;
// a node without children is a task. Names may carry a file-type suffix
// and a leading directory path, both of which are dropped on compile.
type Node struct {
	Name     string
	Children []Node
}

// IsBranch reports whether n is a non-empty namespace.
func (n Node) IsBranch() bool {
	return len(n.Children) > 0
}

// Lister produces the task tree to compile.
type Lister interface {
	Tree() []Node
}

// Compile flattens tree into lower-cased identifiers joined by sep,
// prefixed with prefix. Output follows the order of tree; callers that need
// a stable order should sort their tree (FromIdentifiers does).
func Compile(tree []Node, prefix, sep string) []string {
	invariant.NotEmpty(sep, "separator")

	var out []string
	for _, n := range tree {
		name := baseName(n.Name)

		if n.IsBranch() {
			out = append(out, Compile(n.Children, prefix+name+sep, sep)...)
			continue
		}

		out = append(out, strings.ToLower(prefix+strings.TrimSuffix(name, path.Ext(name))))
	}
	return out
}

func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// FromIdentifiers builds a sorted tree from separator-joined identifiers.
// An identifier that is also a namespace of another one ("db" and
// "db:migrate") yields a leaf node followed by a branch node of the same
// name so both survive Compile.
func FromIdentifiers(ids []string, sep string) []Node {
	invariant.NotEmpty(sep, "separator")

	type group struct {
		leaf bool
		rest []string
	}

	groups := map[string]*group{}
	var order []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		head, rest, nested := strings.Cut(id, sep)

		g, ok := groups[head]
		if !ok {
			g = &group{}
			groups[head] = g
			order = append(order, head)
		}
		if nested {
			g.rest = append(g.rest, rest)
		} else {
			g.leaf = true
		}
	}
	sort.Strings(order)

	var tree []Node
	for _, head := range order {
		g := groups[head]
		if g.leaf {
			tree = append(tree, Node{Name: head})
		}
		if len(g.rest) > 0 {
			if children := FromIdentifiers(g.rest, sep); len(children) > 0 {
				tree = append(tree, Node{Name: head, Children: children})
			}
		}
	}
	return tree
}
