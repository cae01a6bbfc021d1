package diff

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
)

// ObjectPropertiesOf returns every object property IRI declaring classURI as
// its domain or range. Blank-node properties are skipped.
func ObjectPropertiesOf(g *ontology.Graph, classURI string) map[string]struct{} {
	props := make(map[string]struct{})
	if g == nil {
		return props
	}
	c := quad.IRI(classURI)
	for _, p := range g.ObjectProperties() {
		iri, ok := ontology.AsIRI(p)
		if !ok {
			continue
		}
		if g.Has(p, ontology.RDFSDomain, c) || g.Has(p, ontology.RDFSRange, c) {
			props[iri] = struct{}{}
		}
	}
	return props
}

// CompareObjectProperties reports which object properties gained or lost
// classURI in their domain or range between oldGraph and newGraph. Both
// results are sorted. A URI that matches nothing yields empty results.
func CompareObjectProperties(newGraph, oldGraph *ontology.Graph, classURI string) (added, removed []string) {
	newProps := ObjectPropertiesOf(newGraph, classURI)
	oldProps := ObjectPropertiesOf(oldGraph, classURI)
	return setMinus(newProps, oldProps), setMinus(oldProps, newProps)
}

func setMinus(a, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
