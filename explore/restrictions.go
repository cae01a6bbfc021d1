package explore

import (
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// RestrictionKind names how a restriction constrains its property.
type RestrictionKind string

const (
	KindAllValuesFrom        RestrictionKind = "owl:allValuesFrom"
	KindSomeValuesFrom       RestrictionKind = "owl:someValuesFrom"
	KindHasValue             RestrictionKind = "owl:hasValue"
	KindQualifiedCardinality RestrictionKind = "qualified_cardinality"
	KindOnClass              RestrictionKind = "owl:onClass"

	// KindUnconstrained marks a restriction with a property but no recognised
	// constraint.
	KindUnconstrained RestrictionKind = ""
)

// Cardinality holds the qualified cardinality bounds of a restriction.
// Absent bounds are empty strings.
type Cardinality struct {
	Exact   string `json:"exact,omitempty"`
	Min     string `json:"min,omitempty"`
	Max     string `json:"max,omitempty"`
	OnClass string `json:"on_class,omitempty"`
}

// Restriction is one owl:Restriction attached to a class.
type Restriction struct {
	Property string          `json:"property"`
	Kind     RestrictionKind `json:"kind"`

	// Value is the constraint target for value restrictions. It may be a
	// literal for owl:hasValue.
	Value quad.Value `json:"-"`

	Cardinality *Cardinality `json:"cardinality,omitempty"`
}

// Target returns the class the restriction points at, if it is an IRI.
func (r Restriction) Target() (string, bool) {
	if r.Cardinality != nil {
		return r.Cardinality.OnClass, r.Cardinality.OnClass != ""
	}
	return ontology.AsIRI(r.Value)
}

// Restrictions lists the restrictions attached to class through
// rdfs:subClassOf. Restrictions without owl:onProperty are skipped. When a
// restriction carries several constraints the first of allValuesFrom,
// someValuesFrom, hasValue, qualified cardinality wins.
func Restrictions(g *ontology.Graph, class string) []Restriction {
	var out []Restriction
	for _, node := range g.Restrictions(quad.IRI(class)) {
		p, ok := g.FirstObject(node, ontology.OWLOnProperty)
		if !ok {
			continue
		}
		r := Restriction{Property: termText(p), Kind: KindUnconstrained}

		first := func(pred string) (quad.Value, bool) {
			return g.FirstObject(node, quad.IRI(pred))
		}
		if v, ok := first(owl.AllValuesFrom); ok {
			r.Kind, r.Value = KindAllValuesFrom, v
		} else if v, ok := first(owl.SomeValuesFrom); ok {
			r.Kind, r.Value = KindSomeValuesFrom, v
		} else if v, ok := first(owl.HasValue); ok {
			r.Kind, r.Value = KindHasValue, v
		} else if c := cardinality(g, node); c != nil {
			r.Kind, r.Cardinality = KindQualifiedCardinality, c
		}
		out = append(out, r)
	}
	return out
}

func cardinality(g *ontology.Graph, node quad.Value) *Cardinality {
	text := func(pred string) string {
		v, ok := g.FirstObject(node, quad.IRI(pred))
		if !ok {
			return ""
		}
		return termText(v)
	}
	c := Cardinality{
		Exact: text(owl.QualifiedCardinality),
		Min:   text(owl.MinQualifiedCardinality),
		Max:   text(owl.MaxQualifiedCardinality),
	}
	if c.Exact == "" && c.Min == "" && c.Max == "" {
		return nil
	}
	if v, ok := g.FirstObject(node, ontology.OWLOnClass); ok {
		c.OnClass, _ = ontology.AsIRI(v)
	}
	return &c
}

// ReverseLink is a restriction on another class that points at a target.
type ReverseLink struct {
	Class    string          `json:"class"`
	Property string          `json:"property"`
	Kind     RestrictionKind `json:"kind"`
}

// ReverseRestrictions finds every owl:Class whose restrictions point at
// target by value constraint or owl:onClass. Results are ordered by class
// then property.
func ReverseRestrictions(g *ontology.Graph, target string) []ReverseLink {
	t := quad.IRI(target)
	checks := []struct {
		pred quad.Value
		kind RestrictionKind
	}{
		{quad.IRI(owl.AllValuesFrom), KindAllValuesFrom},
		{quad.IRI(owl.SomeValuesFrom), KindSomeValuesFrom},
		{quad.IRI(owl.HasValue), KindHasValue},
		{ontology.OWLOnClass, KindOnClass},
	}

	var out []ReverseLink
	for class := range g.Classes() {
		for _, node := range g.Restrictions(quad.IRI(class)) {
			var prop string
			if p, ok := g.FirstObject(node, ontology.OWLOnProperty); ok {
				prop = termText(p)
			}
			for _, c := range checks {
				if g.Has(node, c.pred, t) {
					out = append(out, ReverseLink{Class: class, Property: prop, Kind: c.kind})
					break
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Property < out[j].Property
	})
	return out
}

// termText returns the raw text of an IRI or literal.
func termText(v quad.Value) string {
	if iri, ok := ontology.AsIRI(v); ok {
		return iri
	}
	if text, _, ok := ontology.Literal(v); ok {
		return text
	}
	return ontology.Pretty(v)
}
