package diff

import (
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
)

// ClassRelationChange lists the non-subclass edges added or removed around
// one class.
type ClassRelationChange struct {
	URI     string `json:"uri"`
	Label   string `json:"label"`
	Added   []Edge `json:"added,omitempty"`
	Removed []Edge `json:"removed,omitempty"`
}

// RelationChanges groups the object-property edge deltas by every class they
// touch. Subclass edges are excluded. Classes are ordered by lower-cased
// label; labels missing from the map fall back to the local name.
func RelationChanges(r *Result, labels map[string]string) []ClassRelationChange {
	notSubclass := func(e Edge) bool { return !e.IsSubclass() }
	added := r.AddedEdges.Filter(notSubclass).Sorted()
	removed := r.RemovedEdges.Filter(notSubclass).Sorted()

	byClass := make(map[string]*ClassRelationChange)
	get := func(uri string) *ClassRelationChange {
		c, ok := byClass[uri]
		if !ok {
			label, found := labels[uri]
			if !found {
				label = ontology.LocalName(uri)
			}
			c = &ClassRelationChange{URI: uri, Label: label}
			byClass[uri] = c
		}
		return c
	}

	for _, e := range added {
		get(e.Source).Added = append(get(e.Source).Added, e)
		if e.Target != e.Source {
			get(e.Target).Added = append(get(e.Target).Added, e)
		}
	}
	for _, e := range removed {
		get(e.Source).Removed = append(get(e.Source).Removed, e)
		if e.Target != e.Source {
			get(e.Target).Removed = append(get(e.Target).Removed, e)
		}
	}

	out := make([]ClassRelationChange, 0, len(byClass))
	for _, c := range byClass {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if li != lj {
			return li < lj
		}
		return out[i].URI < out[j].URI
	})
	return out
}

// NewClassInfo describes a class that only exists in the new snapshot.
type NewClassInfo struct {
	URI          string   `json:"uri"`
	Label        string   `json:"label"`
	Superclasses []string `json:"superclasses"`
	Subclasses   []string `json:"subclasses"`

	// Orphan is set when the class has no IRI superclass.
	Orphan bool `json:"orphan"`
}

// NewClassOverview summarizes the hierarchy position of every New class in
// newGraph. Superclasses are IRI objects of rdfs:subClassOf; subclasses must
// be typed owl:Class.
func NewClassOverview(r *Result, newGraph *ontology.Graph) []NewClassInfo {
	var out []NewClassInfo
	for _, c := range r.ByStatus(StatusNew) {
		node := quad.IRI(c.URI)
		info := NewClassInfo{URI: c.URI, Label: c.Label(), Superclasses: []string{}, Subclasses: []string{}}

		for _, sup := range newGraph.Objects(node, ontology.RDFSSubClassOf) {
			if iri, ok := ontology.AsIRI(sup); ok {
				info.Superclasses = append(info.Superclasses, iri)
			}
		}
		for _, sub := range newGraph.Subjects(ontology.RDFSSubClassOf, node) {
			iri, ok := ontology.AsIRI(sub)
			if ok && newGraph.Has(sub, ontology.RDFType, ontology.OWLClass) {
				info.Subclasses = append(info.Subclasses, iri)
			}
		}
		sort.Strings(info.Superclasses)
		sort.Strings(info.Subclasses)
		info.Orphan = len(info.Superclasses) == 0
		out = append(out, info)
	}
	return out
}
