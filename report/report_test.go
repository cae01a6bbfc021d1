package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontodiff/diff"
	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

const ex = "http://example.org/onto#"

func class(g *ontology.Graph, name, label string) {
	g.AddIRIs(ex+name, owl.Type, owl.Class)
	if label != "" {
		g.Add(quad.IRI(ex+name), ontology.RDFSLabel, quad.LangString{Value: quad.String(label), Lang: "en"})
	}
}

func prop(g *ontology.Graph, name, domain, rng string) {
	g.AddIRIs(ex+name, owl.Type, owl.ObjectProperty)
	g.AddIRIs(ex+name, owl.Domain, ex+domain)
	g.AddIRIs(ex+name, owl.Range, ex+rng)
}

// graphs returns an old snapshot with a Place class and a new one where
// Place became Event and Org gained an employs relation.
func graphs() (oldGraph, newGraph *ontology.Graph) {
	oldGraph = ontology.NewGraph()
	for _, c := range [][2]string{{"Thing", "Thing"}, {"Agent", "Agent"}, {"Org", "Organisation"}, {"Place", "Place"}} {
		class(oldGraph, c[0], c[1])
	}
	oldGraph.AddIRIs(ex+"Agent", owl.SubClassOf, ex+"Thing")
	oldGraph.AddIRIs(ex+"Place", owl.SubClassOf, ex+"Thing")
	oldGraph.AddIRIs(ex+"Org", owl.SubClassOf, ex+"Agent")
	prop(oldGraph, "locatedIn", "Agent", "Place")

	newGraph = ontology.NewGraph()
	for _, c := range [][2]string{{"Thing", "Thing"}, {"Agent", "Agent"}, {"Org", "Organisation"}, {"Event", "Event"}, {"Floating", ""}} {
		class(newGraph, c[0], c[1])
	}
	newGraph.AddIRIs(ex+"Agent", owl.SubClassOf, ex+"Thing")
	newGraph.AddIRIs(ex+"Event", owl.SubClassOf, ex+"Thing")
	newGraph.AddIRIs(ex+"Org", owl.SubClassOf, ex+"Agent")
	newGraph.Add(quad.IRI(ex+"Event"), quad.IRI(owl.DCTermsDescription),
		quad.LangString{Value: "Something that happens at a given place and time", Lang: "en"})
	prop(newGraph, "attends", "Agent", "Event")
	prop(newGraph, "employs", "Org", "Agent")
	return oldGraph, newGraph
}

func buildReport(t *testing.T) *Report {
	t.Helper()
	oldGraph, newGraph := graphs()
	result := diff.Run(oldGraph, newGraph)
	return Build(result, oldGraph, newGraph,
		Inputs{Old: []string{"v1.ttl"}, New: []string{"v2.ttl"}},
		Options{
			Domains:           map[string]string{ex + "Agent": "Actors", ex + "Org": "Actors"},
			Prefixes:          map[string]string{"ex": ex},
			DescriptionLength: 20,
			Now:               func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		})
}

func TestBuildSummary(t *testing.T) {
	rep := buildReport(t)

	_, err := uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), rep.GeneratedAt)
	assert.Equal(t, Summary{
		NewClasses:       2,
		RemovedClasses:   1,
		ModifiedClasses:  2,
		UnchangedClasses: 1,
		AddedRelations:   3,
		RemovedRelations: 2,
	}, rep.Summary)
	assert.Equal(t, []string{ex + "Thing"}, rep.EdgeOnly)
}

func TestBuildModified(t *testing.T) {
	rep := buildReport(t)
	require.Len(t, rep.Modified, 2)

	agent := rep.Modified[0]
	assert.Equal(t, ex+"Agent", agent.URI)
	assert.Equal(t, "Actors", agent.Domain)
	assert.Equal(t, 3, agent.Old.TotalRelations)
	assert.Equal(t, 4, agent.New.TotalRelations)
	assert.Equal(t, []string{ex + "attends", ex + "employs"}, agent.AddedProperties)
	assert.Equal(t, []string{ex + "locatedIn"}, agent.RemovedProperties)

	org := rep.Modified[1]
	assert.Equal(t, "Organisation", org.Label)
	assert.Equal(t, []string{ex + "employs"}, org.AddedProperties)
	assert.Empty(t, org.RemovedProperties)
}

func TestBuildClassViews(t *testing.T) {
	rep := buildReport(t)

	require.Len(t, rep.New, 2)
	event := rep.New[0]
	assert.Equal(t, "Event", event.Label)
	assert.Equal(t, OtherDomain, event.Domain)
	assert.Equal(t, "Something that happe...", event.Description)
	assert.Equal(t, []string{"ex:Thing"}, event.Superclasses)

	require.Len(t, rep.Removed, 1)
	assert.Equal(t, ex+"Place", rep.Removed[0].URI)
	assert.Equal(t, []string{"ex:Thing"}, rep.Removed[0].Superclasses, "removed classes are described from the old snapshot")
}

func TestBuildRelations(t *testing.T) {
	rep := buildReport(t)

	var labels []string
	for _, g := range rep.Relations {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Agent", "Event", "Organisation", "Place"}, labels)

	agent := rep.Relations[0]
	require.Len(t, agent.Added, 2)
	assert.Equal(t, "Agent --attends→ Event", agent.Added[0].String())
	assert.Equal(t, "Org --employs→ Agent", agent.Added[1].String())
	require.Len(t, agent.Removed, 1)
	assert.Equal(t, "Agent --locatedIn→ Place", agent.Removed[0].String())
}

func TestBuildNewClassesAndRelations(t *testing.T) {
	rep := buildReport(t)

	require.Len(t, rep.NewClasses, 2)
	assert.Equal(t, []string{"Thing"}, rep.NewClasses[0].Superclasses)
	assert.False(t, rep.NewClasses[0].Orphan)
	assert.Equal(t, ex+"Floating", rep.NewClasses[1].URI)
	assert.True(t, rep.NewClasses[1].Orphan)

	require.Len(t, rep.NewRelations, 3)
	assert.Equal(t, "Actors", rep.NewRelations[0].SubjectDomain)
	assert.Equal(t, OtherDomain, rep.NewRelations[0].ObjectDomain)
	assert.Equal(t, "subClassOf", rep.NewRelations[1].Predicate)

	assert.Equal(t, []DomainCount{{Domain: "Actors", Count: 2}, {Domain: OtherDomain, Count: 1}}, rep.NewRelationsByDomain)
}

func TestBuildEmpty(t *testing.T) {
	rep := Build(diff.Run(nil, nil), nil, nil, Inputs{}, Options{})

	assert.Equal(t, Summary{}, rep.Summary)
	assert.NotNil(t, rep.Modified)
	assert.NotNil(t, rep.NewRelations)
	assert.NotNil(t, rep.EdgeOnly)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, rep))
	assert.Contains(t, buf.String(), `"modified": []`)
}

func TestRenderFormats(t *testing.T) {
	rep := buildReport(t)

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"SUMMARY", "Modified classes", "Organisation", "+ Agent --attends→ Event", "Actors"}},
		{"", []string{"SUMMARY"}},
		{"markdown", []string{"# Ontology Diff Report", "| New classes | 2 |", "### Event", "- **Superclasses:** ex:Thing", "_orphan_", "- ➖ Agent --locatedIn→ Place"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, rep, tt.format))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, "json"))
	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Equal(t, rep.Summary, decoded.Summary)
	assert.Equal(t, rep.NewRelations, decoded.NewRelations)

	err := Render(&buf, rep, "html")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMarkdownNoChanges(t *testing.T) {
	_, newGraph := graphs()
	rep := Build(diff.Run(newGraph, newGraph), newGraph, newGraph, Inputs{}, Options{})

	md := NewMarkdownRenderer().Transform(rep)
	assert.Equal(t, 4, strings.Count(md, "_None._"), "modified, new, removed and relation sections are empty")
	assert.NotContains(t, md, "## New Relations")
}
