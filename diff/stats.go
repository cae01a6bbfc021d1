// Package diff computes structural differences between two snapshots of an
// ontology: per-class fingerprints, normalized relation edges, class
// classification and relation deltas.
//
// Every function in this package is a pure computation over an immutable
// graph. Nothing here returns an error; missing data falls back to empty
// results.
package diff

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// LabelLanguage is the language tag preferred for class labels.
const LabelLanguage = "en"

// Fingerprint is the structural summary of one class in one snapshot.
type Fingerprint struct {
	Label            string `json:"label"`
	URI              string `json:"uri"`
	Subclasses       int    `json:"subclasses"`
	ObjectProperties int    `json:"object_properties"`
	TotalRelations   int    `json:"total_relations"`
}

// Table maps class URI to its fingerprint.
type Table map[string]Fingerprint

// Rows returns the fingerprints sorted by URI.
func (t Table) Rows() []Fingerprint {
	rows := make([]Fingerprint, 0, len(t))
	for _, fp := range t {
		rows = append(rows, fp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].URI < rows[j].URI })
	return rows
}

// ClassSet returns the URIs of every class in the table.
func (t Table) ClassSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t))
	for uri := range t {
		set[uri] = struct{}{}
	}
	return set
}

// Labels returns URI to label for every class in the table.
func (t Table) Labels() map[string]string {
	labels := make(map[string]string, len(t))
	for uri, fp := range t {
		labels[uri] = fp.Label
	}
	return labels
}

// BuildClassStats fingerprints every IRI class of g.
func BuildClassStats(g *ontology.Graph) Table {
	return BuildClassStatsLang(g, LabelLanguage)
}

// BuildClassStatsLang is BuildClassStats with an explicit label language.
func BuildClassStatsLang(g *ontology.Graph, lang string) Table {
	info := make(map[string]*Fingerprint)
	for uri := range g.Classes() {
		info[uri] = &Fingerprint{Label: g.Label(uri, lang), URI: uri}
	}

	lookup := func(v quad.Value) *Fingerprint {
		iri, ok := ontology.AsIRI(v)
		if !ok {
			return nil
		}
		return info[iri]
	}

	// A subclass edge counts toward both endpoints' totals.
	for _, t := range g.Triples(ontology.Triple{Predicate: ontology.RDFSSubClassOf}) {
		sub, sup := lookup(t.Subject), lookup(t.Object)
		if sub == nil || sup == nil {
			continue
		}
		sup.Subclasses++
		sup.TotalRelations++
		sub.TotalRelations++
	}

	// Domain and range are counted independently, once per occurrence.
	for _, prop := range g.ObjectProperties() {
		for _, d := range g.Objects(prop, ontology.RDFSDomain) {
			if fp := lookup(d); fp != nil {
				fp.ObjectProperties++
				fp.TotalRelations++
			}
		}
		for _, r := range g.Objects(prop, ontology.RDFSRange) {
			if fp := lookup(r); fp != nil {
				fp.ObjectProperties++
				fp.TotalRelations++
			}
		}
	}

	for uri, owner := range info {
		for _, rest := range g.Restrictions(quad.IRI(uri)) {
			for _, c := range owl.ValueConstraints {
				for _, tgt := range g.Objects(rest, quad.IRI(c)) {
					if target := lookup(tgt); target != nil {
						owner.TotalRelations++
						target.TotalRelations++
					}
				}
			}
		}
	}

	table := make(Table, len(info))
	for uri, fp := range info {
		table[uri] = *fp
	}
	return table
}
