package ontology

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// Frequently used predicate and class terms.
var (
	RDFType        = quad.IRI(owl.Type)
	RDFSLabel      = quad.IRI(owl.Label)
	RDFSSubClassOf = quad.IRI(owl.SubClassOf)
	RDFSDomain     = quad.IRI(owl.Domain)
	RDFSRange      = quad.IRI(owl.Range)
	OWLClass       = quad.IRI(owl.Class)
	OWLObjectProp  = quad.IRI(owl.ObjectProperty)
	OWLRestriction = quad.IRI(owl.Restriction)
	OWLOnProperty  = quad.IRI(owl.OnProperty)
	OWLOnClass     = quad.IRI(owl.OnClass)
)

// AsIRI reports whether v is an IRI and returns its text.
// Literals and blank nodes are never IRIs.
func AsIRI(v quad.Value) (string, bool) {
	iri, ok := v.(quad.IRI)
	if !ok {
		return "", false
	}
	return string(iri), true
}

// Literal returns the lexical form and language tag of a literal term.
func Literal(v quad.Value) (text, lang string, ok bool) {
	switch l := v.(type) {
	case quad.String:
		return string(l), "", true
	case quad.LangString:
		return string(l.Value), l.Lang, true
	case quad.TypedString:
		return string(l.Value), "", true
	}
	return "", "", false
}

// LocalName returns the fragment after '#', or else the last segment after '/'.
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// Pretty renders any term for humans: IRIs as their local name, literals as
// their lexical form.
func Pretty(v quad.Value) string {
	if iri, ok := AsIRI(v); ok {
		return LocalName(iri)
	}
	if text, _, ok := Literal(v); ok {
		return text
	}
	if v == nil {
		return ""
	}
	return v.String()
}

// LangLiteral returns the first (s, p, literal) object tagged with lang.
func (g *Graph) LangLiteral(s quad.Value, p quad.Value, lang string) (string, bool) {
	for _, o := range g.Objects(s, p) {
		if text, l, ok := Literal(o); ok && l == lang {
			return text, true
		}
	}
	return "", false
}

// Label returns the preferred label for a class: the first rdfs:label tagged
// lang, falling back to the IRI's local name.
func (g *Graph) Label(iri string, lang string) string {
	if label, ok := g.LangLiteral(quad.IRI(iri), RDFSLabel, lang); ok {
		return label
	}
	return LocalName(iri)
}

// Classes returns every IRI subject typed owl:Class. Blank-node classes are
// excluded.
func (g *Graph) Classes() map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range g.Subjects(RDFType, OWLClass) {
		if iri, ok := AsIRI(s); ok {
			out[iri] = struct{}{}
		}
	}
	return out
}

// ObjectProperties returns every subject typed owl:ObjectProperty, IRI or not.
func (g *Graph) ObjectProperties() []quad.Value {
	return g.Subjects(RDFType, OWLObjectProp)
}

// IsRestriction reports whether v is typed owl:Restriction.
func (g *Graph) IsRestriction(v quad.Value) bool {
	return g.Has(v, RDFType, OWLRestriction)
}

// Restrictions returns the restriction nodes attached to class through
// rdfs:subClassOf.
func (g *Graph) Restrictions(class quad.Value) []quad.Value {
	var out []quad.Value
	for _, sup := range g.Objects(class, RDFSSubClassOf) {
		if g.IsRestriction(sup) {
			out = append(out, sup)
		}
	}
	return out
}
