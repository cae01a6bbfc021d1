package ontology

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontodiff/vocabulary/owl"
)

const ex = "http://example.org/onto#"

func TestGraphAddIsSetSemantics(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddIRIs(ex+"A", owl.Type, owl.Class))
	assert.False(t, g.AddIRIs(ex+"A", owl.Type, owl.Class), "duplicate triple must collapse")
	assert.False(t, g.Add(nil, RDFType, OWLClass))
	assert.Equal(t, 1, g.Len())
}

func TestGraphQueries(t *testing.T) {
	g := NewGraph()
	g.AddIRIs(ex+"B", owl.SubClassOf, ex+"A")
	g.AddIRIs(ex+"C", owl.SubClassOf, ex+"A")
	g.AddIRIs(ex+"B", owl.SubClassOf, ex+"Z")
	g.Add(quad.IRI(ex+"B"), RDFSLabel, quad.LangString{Value: "Bee", Lang: "en"})

	a := quad.IRI(ex + "A")
	b := quad.IRI(ex + "B")

	assert.Equal(t, []quad.Value{quad.IRI(ex + "A"), quad.IRI(ex + "Z")}, g.Objects(b, RDFSSubClassOf))
	assert.Equal(t, []quad.Value{b, quad.IRI(ex + "C")}, g.Subjects(RDFSSubClassOf, a))
	assert.True(t, g.Has(b, RDFSSubClassOf, a))
	assert.False(t, g.Has(a, RDFSSubClassOf, b))

	first, ok := g.FirstObject(b, RDFSSubClassOf)
	require.True(t, ok)
	assert.Equal(t, a, first)

	assert.Len(t, g.Triples(Triple{Predicate: RDFSSubClassOf}), 3)
	assert.Len(t, g.Triples(Triple{Subject: b}), 3)
	assert.Len(t, g.Triples(Triple{Object: a}), 2)
	assert.Len(t, g.Triples(Triple{}), 4)
	assert.Len(t, g.Incoming(a), 2)
	assert.Len(t, g.Outgoing(b), 3)
}

func TestLabelFallsBackToLocalName(t *testing.T) {
	g := NewGraph()
	g.Add(quad.IRI(ex+"A"), RDFSLabel, quad.LangString{Value: "Ding", Lang: "de"})
	g.Add(quad.IRI(ex+"A"), RDFSLabel, quad.LangString{Value: "Thing", Lang: "en"})
	g.Add(quad.IRI(ex+"B"), RDFSLabel, quad.String("untagged"))

	assert.Equal(t, "Thing", g.Label(ex+"A", "en"))
	assert.Equal(t, "B", g.Label(ex+"B", "en"))
	assert.Equal(t, "Missing", g.Label("http://example.org/path/Missing", "en"))
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"http://example.org/onto#Asset", "Asset"},
		{"http://example.org/onto/Asset", "Asset"},
		{"http://example.org/a#b/c", "b/c"},
		{"urn:plain", "urn:plain"},
		{"subClassOf", "subClassOf"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.uri))
		})
	}
}

func TestClassesExcludesBlankNodes(t *testing.T) {
	g := NewGraph()
	g.AddIRIs(ex+"A", owl.Type, owl.Class)
	g.Add(quad.BNode("anon"), RDFType, OWLClass)

	classes := g.Classes()
	assert.Len(t, classes, 1)
	assert.Contains(t, classes, ex+"A")
}

func TestRestrictions(t *testing.T) {
	g := NewGraph()
	r := quad.BNode("r1")
	g.Add(quad.IRI(ex+"A"), RDFSSubClassOf, r)
	g.Add(r, RDFType, OWLRestriction)
	g.Add(quad.IRI(ex+"A"), RDFSSubClassOf, quad.BNode("notRestriction"))

	assert.Equal(t, []quad.Value{r}, g.Restrictions(quad.IRI(ex+"A")))
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "Asset", Pretty(quad.IRI(ex+"Asset")))
	assert.Equal(t, "hello", Pretty(quad.LangString{Value: "hello", Lang: "en"}))
	assert.Equal(t, "", Pretty(nil))
}
