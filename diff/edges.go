package diff

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// SubclassRelation is the sentinel relation of subclass edges. It is a bare
// local name, never a namespaced predicate IRI.
const SubclassRelation = "subClassOf"

// Edge is a normalized (source, relation, target) statement between classes.
type Edge struct {
	Source   string `json:"source"`
	Relation string `json:"relation"`
	Target   string `json:"target"`
}

// IsSubclass reports whether e is a subclass edge.
func (e Edge) IsSubclass() bool {
	return e.Relation == SubclassRelation
}

// Touches reports whether uri is either endpoint of e.
func (e Edge) Touches(uri string) bool {
	return e.Source == uri || e.Target == uri
}

// EdgeSet is a set of edges. Duplicate derivations collapse.
type EdgeSet map[Edge]struct{}

// Add inserts e.
func (s EdgeSet) Add(e Edge) {
	s[e] = struct{}{}
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// Len returns the set size.
func (s EdgeSet) Len() int {
	return len(s)
}

// Minus returns the edges of s absent from other.
func (s EdgeSet) Minus(other EdgeSet) EdgeSet {
	out := make(EdgeSet)
	for e := range s {
		if !other.Has(e) {
			out.Add(e)
		}
	}
	return out
}

// Filter returns the edges for which keep reports true.
func (s EdgeSet) Filter(keep func(Edge) bool) EdgeSet {
	out := make(EdgeSet)
	for e := range s {
		if keep(e) {
			out.Add(e)
		}
	}
	return out
}

// Sorted returns the edges ordered by source, relation, target.
func (s EdgeSet) Sorted() []Edge {
	edges := make([]Edge, 0, len(s))
	for e := range s {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Relation != b.Relation {
			return a.Relation < b.Relation
		}
		return a.Target < b.Target
	})
	return edges
}

// ExtractEdges derives the relation edges of g among classes. The caller
// passes the class set that matches g. Properties that are blank nodes, such
// as an owl:onProperty [ owl:inverseOf ... ], yield no edges.
func ExtractEdges(g *ontology.Graph, classes map[string]struct{}) EdgeSet {
	edges := make(EdgeSet)
	in := func(v quad.Value) (string, bool) {
		iri, ok := ontology.AsIRI(v)
		if !ok {
			return "", false
		}
		_, known := classes[iri]
		return iri, known
	}

	for _, prop := range g.ObjectProperties() {
		relation, ok := ontology.AsIRI(prop)
		if !ok {
			continue
		}
		ranges := g.Objects(prop, ontology.RDFSRange)
		for _, d := range g.Objects(prop, ontology.RDFSDomain) {
			source, ok := in(d)
			if !ok {
				continue
			}
			for _, r := range ranges {
				if target, ok := in(r); ok {
					edges.Add(Edge{Source: source, Relation: relation, Target: target})
				}
			}
		}
	}

	for _, t := range g.Triples(ontology.Triple{Predicate: ontology.RDFSSubClassOf}) {
		sub, ok := in(t.Subject)
		if !ok {
			continue
		}
		if sup, ok := in(t.Object); ok {
			edges.Add(Edge{Source: sub, Relation: SubclassRelation, Target: sup})
		}
	}

	for uri := range classes {
		for _, rest := range g.Restrictions(quad.IRI(uri)) {
			p, ok := g.FirstObject(rest, ontology.OWLOnProperty)
			if !ok {
				continue
			}
			relation, ok := ontology.AsIRI(p)
			if !ok {
				continue
			}
			for _, c := range owl.ValueConstraints {
				for _, tgt := range g.Objects(rest, quad.IRI(c)) {
					if target, ok := in(tgt); ok {
						edges.Add(Edge{Source: uri, Relation: relation, Target: target})
					}
				}
			}
		}
	}

	return edges
}
