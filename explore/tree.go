package explore

import (
	"strings"

	"github.com/c360studio/ontodiff/ontology"
)

// SelectedMarker is appended to the selected class in a rendered tree.
const SelectedMarker = " *"

// Tree renders the subclass tree under root using box-drawing branches.
// Each line shows the local name; the selected class is marked. A class
// reached a second time is printed but not expanded again.
func Tree(g *ontology.Graph, root, selected string) string {
	type frame struct {
		uri    string
		prefix string
		last   bool
	}

	var b strings.Builder
	visited := make(map[string]bool)
	stack := []frame{{uri: root, last: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch := "├─ "
		if f.last {
			branch = "└─ "
		}
		b.WriteString(f.prefix + branch + ontology.LocalName(f.uri))
		if f.uri == selected {
			b.WriteString(SelectedMarker)
		}
		b.WriteByte('\n')

		if visited[f.uri] {
			continue
		}
		visited[f.uri] = true

		childPrefix := f.prefix + "│  "
		if f.last {
			childPrefix = f.prefix + "   "
		}
		children := Subclasses(g, f.uri)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{uri: children[i], prefix: childPrefix, last: i == len(children)-1})
		}
	}
	return b.String()
}

// HierarchyTree renders the ancestor chain of class from its topmost
// ancestor, followed by the subtree below class.
func HierarchyTree(g *ontology.Graph, class string) string {
	path := AncestorPath(g, class)

	var b strings.Builder
	prefix := ""
	for _, uri := range path[:len(path)-1] {
		b.WriteString(prefix + "└─ " + ontology.LocalName(uri) + "\n")
		prefix += "   "
	}

	for _, line := range strings.SplitAfter(Tree(g, class, class), "\n") {
		if line != "" {
			b.WriteString(prefix + line)
		}
	}
	return b.String()
}
