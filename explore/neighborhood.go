package explore

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
)

// Link is an IRI-to-IRI statement inside a neighbourhood.
type Link struct {
	Source    string `json:"source"`
	Predicate string `json:"predicate"`
	Target    string `json:"target"`
}

// Subgraph is the result of a neighbourhood query.
type Subgraph struct {
	Nodes []string `json:"nodes"`
	Links []Link   `json:"links"`
}

// Neighborhood collects every IRI reachable from start within hops steps,
// following statements in both directions, and the non rdf:type statements
// between the collected nodes. Blank nodes and literals are never entered.
func Neighborhood(g *ontology.Graph, start string, hops int) Subgraph {
	type queueItem struct {
		uri   string
		depth int
	}

	nodes := map[string]bool{start: true}
	queue := []queueItem{{start, 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= hops {
			continue
		}

		node := quad.IRI(current.uri)
		var next []quad.Value
		for _, t := range g.Outgoing(node) {
			next = append(next, t.Object)
		}
		for _, t := range g.Incoming(node) {
			next = append(next, t.Subject)
		}
		for _, v := range next {
			iri, ok := ontology.AsIRI(v)
			if !ok || nodes[iri] {
				continue
			}
			nodes[iri] = true
			queue = append(queue, queueItem{iri, current.depth + 1})
		}
	}

	var links []Link
	for uri := range nodes {
		for _, t := range g.Outgoing(quad.IRI(uri)) {
			if t.Predicate == ontology.RDFType {
				continue
			}
			target, ok := ontology.AsIRI(t.Object)
			if !ok || !nodes[target] {
				continue
			}
			pred, _ := ontology.AsIRI(t.Predicate)
			links = append(links, Link{Source: uri, Predicate: pred, Target: target})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		return a.Target < b.Target
	})

	return Subgraph{Nodes: sortedKeys(nodes), Links: links}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
