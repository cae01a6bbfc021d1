// Package explore answers questions about a single ontology snapshot: class
// hierarchy, restrictions, neighbourhoods and human-readable descriptions.
//
// Walks over rdfs:subClassOf are iterative and keep a visited set, so
// ontologies asserting mutual subclassing terminate.
package explore

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
)

// Superclasses returns the direct IRI superclasses of class, sorted.
func Superclasses(g *ontology.Graph, class string) []string {
	return iris(g.Objects(quad.IRI(class), ontology.RDFSSubClassOf))
}

// Subclasses returns the direct IRI subclasses of class, sorted.
func Subclasses(g *ontology.Graph, class string) []string {
	return iris(g.Subjects(ontology.RDFSSubClassOf, quad.IRI(class)))
}

// TransitiveSuperclasses returns every ancestor of class in depth-first
// discovery order. class itself is only listed when a cycle leads back to it.
func TransitiveSuperclasses(g *ontology.Graph, class string) []string {
	return walk(class, func(uri string) []string { return Superclasses(g, uri) })
}

// TransitiveSubclasses returns every descendant of class in depth-first
// discovery order.
func TransitiveSubclasses(g *ontology.Graph, class string) []string {
	return walk(class, func(uri string) []string { return Subclasses(g, uri) })
}

// walk is a pre-order depth-first traversal with an explicit stack.
func walk(start string, next func(string) []string) []string {
	visited := make(map[string]bool)
	var out []string

	stack := reversed(next(start))
	for len(stack) > 0 {
		uri := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[uri] {
			continue
		}
		visited[uri] = true
		out = append(out, uri)
		for _, n := range reversed(next(uri)) {
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return out
}

// AncestorPath follows the first sorted superclass upward and returns the
// chain from the topmost ancestor down to class. It stops at a root or when
// a class repeats.
func AncestorPath(g *ontology.Graph, class string) []string {
	path := []string{class}
	visited := map[string]bool{class: true}
	current := class
	for {
		supers := Superclasses(g, current)
		if len(supers) == 0 || visited[supers[0]] {
			break
		}
		current = supers[0]
		visited[current] = true
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsDescendant reports whether class is target or reaches it through
// rdfs:subClassOf.
func IsDescendant(g *ontology.Graph, class, target string) bool {
	if class == target {
		return true
	}
	for _, sup := range TransitiveSuperclasses(g, class) {
		if sup == target {
			return true
		}
	}
	return false
}

func iris(values []quad.Value) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if iri, ok := ontology.AsIRI(v); ok && !seen[iri] {
			seen[iri] = true
			out = append(out, iri)
		}
	}
	sort.Strings(out)
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
