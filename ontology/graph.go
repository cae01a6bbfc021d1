// Package ontology provides the in-memory triple store that the diff engine
// queries, along with decoders for the common RDF serializations.
//
// A Graph is a snapshot: once loaded it is only read. Identity of every term
// is its exact textual form; no IRI normalization is performed.
package ontology

import (
	"slices"

	"github.com/cayleygraph/quad"
)

// Triple is a single RDF statement.
type Triple struct {
	Subject   quad.Value
	Predicate quad.Value
	Object    quad.Value
}

// Graph is an indexed set of triples. Objects and subjects are returned in
// insertion order so "first value" lookups are deterministic.
type Graph struct {
	triples     []Triple
	set         map[Triple]struct{}
	bySubject   map[quad.Value][]Triple
	byPredicate map[quad.Value][]Triple
	byObject    map[quad.Value][]Triple
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		set:         make(map[Triple]struct{}),
		bySubject:   make(map[quad.Value][]Triple),
		byPredicate: make(map[quad.Value][]Triple),
		byObject:    make(map[quad.Value][]Triple),
	}
}

// Add inserts a triple. It reports false when the triple is already present
// or any term is nil.
func (g *Graph) Add(s, p, o quad.Value) bool {
	if s == nil || p == nil || o == nil {
		return false
	}
	t := Triple{Subject: s, Predicate: p, Object: o}
	if _, ok := g.set[t]; ok {
		return false
	}
	g.set[t] = struct{}{}
	g.triples = append(g.triples, t)
	g.bySubject[s] = append(g.bySubject[s], t)
	g.byPredicate[p] = append(g.byPredicate[p], t)
	g.byObject[o] = append(g.byObject[o], t)
	return true
}

// AddIRIs is a convenience for statements whose three terms are IRIs.
func (g *Graph) AddIRIs(s, p, o string) bool {
	return g.Add(quad.IRI(s), quad.IRI(p), quad.IRI(o))
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(s, p, o quad.Value) bool {
	_, ok := g.set[Triple{Subject: s, Predicate: p, Object: o}]
	return ok
}

// Objects returns the objects of every (s, p, ?) triple.
func (g *Graph) Objects(s, p quad.Value) []quad.Value {
	var out []quad.Value
	for _, t := range g.bySubject[s] {
		if t.Predicate == p {
			out = append(out, t.Object)
		}
	}
	return out
}

// FirstObject returns the first object of (s, p, ?) in insertion order.
func (g *Graph) FirstObject(s, p quad.Value) (quad.Value, bool) {
	for _, t := range g.bySubject[s] {
		if t.Predicate == p {
			return t.Object, true
		}
	}
	return nil, false
}

// Subjects returns the subjects of every (?, p, o) triple.
func (g *Graph) Subjects(p, o quad.Value) []quad.Value {
	var out []quad.Value
	for _, t := range g.byObject[o] {
		if t.Predicate == p {
			out = append(out, t.Subject)
		}
	}
	return out
}

// Triples returns every triple matching the pattern. Nil fields of the
// pattern are wildcards.
func (g *Graph) Triples(pattern Triple) []Triple {
	candidates := g.triples
	switch {
	case pattern.Subject != nil:
		candidates = g.bySubject[pattern.Subject]
	case pattern.Object != nil:
		candidates = g.byObject[pattern.Object]
	case pattern.Predicate != nil:
		candidates = g.byPredicate[pattern.Predicate]
	}

	var out []Triple
	for _, t := range candidates {
		if pattern.Subject != nil && t.Subject != pattern.Subject {
			continue
		}
		if pattern.Predicate != nil && t.Predicate != pattern.Predicate {
			continue
		}
		if pattern.Object != nil && t.Object != pattern.Object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Outgoing returns every triple with s as subject.
func (g *Graph) Outgoing(s quad.Value) []Triple {
	return slices.Clone(g.bySubject[s])
}

// Incoming returns every triple with o as object.
func (g *Graph) Incoming(o quad.Value) []Triple {
	return slices.Clone(g.byObject[o])
}

// All returns every triple in insertion order.
func (g *Graph) All() []Triple {
	return slices.Clone(g.triples)
}
