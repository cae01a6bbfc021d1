package explore

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// DescriptionLanguage is the language tag read for labels and descriptions.
const DescriptionLanguage = "en"

// Description summarizes one class for display.
type Description struct {
	URI          string   `json:"uri"`
	Label        string   `json:"label,omitempty"`
	Description  string   `json:"description,omitempty"`
	Superclasses []string `json:"superclasses"`
	Subclasses   []string `json:"subclasses"`
	Broader      []string `json:"broader,omitempty"`
	Narrower     []string `json:"narrower,omitempty"`

	// Concept is set when the class is declared a subclass of skos:Concept.
	Concept bool `json:"concept,omitempty"`
}

// Describe collects the English labels and dcterms:description values of
// class, joined with "; ", plus its direct hierarchy and SKOS links.
func Describe(g *ontology.Graph, class string) Description {
	node := quad.IRI(class)
	return Description{
		URI:          class,
		Label:        strings.Join(langLiterals(g, node, ontology.RDFSLabel, DescriptionLanguage), "; "),
		Description:  strings.Join(langLiterals(g, node, quad.IRI(owl.DCTermsDescription), DescriptionLanguage), "; "),
		Superclasses: Superclasses(g, class),
		Subclasses:   Subclasses(g, class),
		Broader:      iris(g.Objects(node, quad.IRI(owl.SKOSBroader))),
		Narrower:     iris(g.Objects(node, quad.IRI(owl.SKOSNarrower))),
		Concept:      g.Has(node, ontology.RDFSSubClassOf, quad.IRI(owl.SKOSConcept)),
	}
}

// Truncate cuts s to max runes, appending "..." when anything was dropped.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func langLiterals(g *ontology.Graph, s, p quad.Value, lang string) []string {
	var out []string
	for _, o := range g.Objects(s, p) {
		if text, l, ok := ontology.Literal(o); ok && l == lang {
			out = append(out, text)
		}
	}
	return out
}

// DisplayLabel renders iri as "label (prefix:local)". The label is the
// English rdfs:label, else the first label of any language. Without a label
// only the compact name is returned. IRIs outside every known namespace use
// their local name.
func DisplayLabel(g *ontology.Graph, iri string, prefixes map[string]string) string {
	name, ok := owl.Compact(iri, prefixes)
	if !ok {
		name = ontology.LocalName(iri)
	}

	node := quad.IRI(iri)
	label, found := g.LangLiteral(node, ontology.RDFSLabel, DescriptionLanguage)
	if !found {
		for _, o := range g.Objects(node, ontology.RDFSLabel) {
			if text, _, ok := ontology.Literal(o); ok {
				label, found = text, true
				break
			}
		}
	}
	if !found {
		return name
	}
	return label + " (" + name + ")"
}

// FindClass resolves a user query to a class URI: an exact URI first, then a
// local name, then a case-insensitive English label. Ties are broken by URI.
func FindClass(g *ontology.Graph, query string) (string, bool) {
	set := g.Classes()
	if _, ok := set[query]; ok {
		return query, true
	}
	classes := sortedKeys(set)
	for _, uri := range classes {
		if ontology.LocalName(uri) == query {
			return uri, true
		}
	}
	for _, uri := range classes {
		for _, label := range langLiterals(g, quad.IRI(uri), ontology.RDFSLabel, DescriptionLanguage) {
			if strings.EqualFold(label, query) {
				return uri, true
			}
		}
	}
	return "", false
}
