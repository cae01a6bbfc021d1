// Package report turns a diff result into a presentation model and renders
// it as text, markdown or JSON.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"

	"github.com/c360studio/ontodiff/diff"
	"github.com/c360studio/ontodiff/explore"
	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// OtherDomain collects classes that no configured domain claims.
const OtherDomain = "Other"

// Inputs names the files each snapshot was loaded from.
type Inputs struct {
	Old []string `json:"old"`
	New []string `json:"new"`
}

// Options tune report construction.
type Options struct {
	// Domains maps class URI to a human-facing domain.
	Domains map[string]string

	// Prefixes compact IRIs for display. Standard prefixes are always known.
	Prefixes map[string]string

	// DescriptionLength truncates class descriptions; 0 keeps them whole.
	DescriptionLength int

	// Now stamps the report; time.Now when nil.
	Now func() time.Time
}

// Summary holds the headline counts.
type Summary struct {
	NewClasses       int `json:"new_classes"`
	RemovedClasses   int `json:"removed_classes"`
	ModifiedClasses  int `json:"modified_classes"`
	UnchangedClasses int `json:"unchanged_classes"`
	AddedRelations   int `json:"added_relations"`
	RemovedRelations int `json:"removed_relations"`
}

// ModifiedClass details one class whose counts changed.
type ModifiedClass struct {
	URI               string           `json:"uri"`
	Label             string           `json:"label"`
	Domain            string           `json:"domain"`
	Old               diff.Fingerprint `json:"old"`
	New               diff.Fingerprint `json:"new"`
	AddedProperties   []string         `json:"added_properties"`
	RemovedProperties []string         `json:"removed_properties"`
}

// ClassView describes a new or removed class in the snapshot it lives in.
type ClassView struct {
	URI          string   `json:"uri"`
	Label        string   `json:"label"`
	Domain       string   `json:"domain"`
	Description  string   `json:"description,omitempty"`
	Superclasses []string `json:"superclasses"`
}

// RelationLine is a human-readable relation edge.
type RelationLine struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// String renders the line as "subject --predicate→ object".
func (l RelationLine) String() string {
	return l.Subject + " --" + l.Predicate + "→ " + l.Object
}

// RelationGroup lists the relation changes around one class.
type RelationGroup struct {
	URI     string         `json:"uri"`
	Label   string         `json:"label"`
	Added   []RelationLine `json:"added"`
	Removed []RelationLine `json:"removed"`
}

// NewClassEntry places a new class in the hierarchy.
type NewClassEntry struct {
	URI          string   `json:"uri"`
	Label        string   `json:"label"`
	Domain       string   `json:"domain"`
	Superclasses []string `json:"superclasses"`
	Subclasses   []string `json:"subclasses"`
	Orphan       bool     `json:"orphan"`
}

// NewRelation is one added edge with the domains of both endpoints.
type NewRelation struct {
	SubjectDomain string `json:"subject_domain"`
	RelationLine
	ObjectDomain string `json:"object_domain"`
	SubjectURI   string `json:"subject_uri"`
	ObjectURI    string `json:"object_uri"`
}

// DomainCount counts new relations per subject domain.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Report is the presentation model of one diff run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Inputs      Inputs    `json:"inputs"`
	Summary     Summary   `json:"summary"`

	Modified  []ModifiedClass `json:"modified"`
	New       []ClassView     `json:"new"`
	Removed   []ClassView     `json:"removed"`
	Relations []RelationGroup `json:"relations"`

	NewClasses           []NewClassEntry `json:"new_classes"`
	NewRelations         []NewRelation   `json:"new_relations"`
	NewRelationsByDomain []DomainCount   `json:"new_relations_by_domain"`

	// EdgeOnly lists classes classified Unchanged whose edges differ.
	EdgeOnly []string `json:"edge_only"`
}

// Build assembles a report from a diff of oldGraph against newGraph.
func Build(r *diff.Result, oldGraph, newGraph *ontology.Graph, in Inputs, opts Options) *Report {
	if oldGraph == nil {
		oldGraph = ontology.NewGraph()
	}
	if newGraph == nil {
		newGraph = ontology.NewGraph()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	prefixes := owl.DefaultPrefixes()
	for k, v := range opts.Prefixes {
		prefixes[k] = v
	}
	domainOf := func(uri string) string {
		if d, ok := opts.Domains[uri]; ok {
			return d
		}
		return OtherDomain
	}

	counts := r.Counts()
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now().UTC(),
		Inputs:      in,
		Summary: Summary{
			NewClasses:       counts[diff.StatusNew],
			RemovedClasses:   counts[diff.StatusRemoved],
			ModifiedClasses:  counts[diff.StatusModified],
			UnchangedClasses: counts[diff.StatusUnchanged],
			AddedRelations:   r.AddedEdges.Len(),
			RemovedRelations: r.RemovedEdges.Len(),
		},
		Modified:             []ModifiedClass{},
		New:                  []ClassView{},
		Removed:              []ClassView{},
		Relations:            []RelationGroup{},
		NewClasses:           []NewClassEntry{},
		NewRelations:         []NewRelation{},
		NewRelationsByDomain: []DomainCount{},
		EdgeOnly:             []string{},
	}

	for _, c := range r.ByStatus(diff.StatusModified) {
		added, removed := diff.CompareObjectProperties(newGraph, oldGraph, c.URI)
		rep.Modified = append(rep.Modified, ModifiedClass{
			URI:               c.URI,
			Label:             c.Label(),
			Domain:            domainOf(c.URI),
			Old:               *c.Old,
			New:               *c.New,
			AddedProperties:   added,
			RemovedProperties: removed,
		})
	}

	view := func(g *ontology.Graph, c diff.ClassDiff) ClassView {
		d := explore.Describe(g, c.URI)
		supers := make([]string, 0, len(d.Superclasses))
		for _, s := range d.Superclasses {
			supers = append(supers, prefixed(s, prefixes))
		}
		return ClassView{
			URI:          c.URI,
			Label:        c.Label(),
			Domain:       domainOf(c.URI),
			Description:  explore.Truncate(d.Description, opts.DescriptionLength),
			Superclasses: supers,
		}
	}
	for _, c := range r.ByStatus(diff.StatusNew) {
		rep.New = append(rep.New, view(newGraph, c))
	}
	for _, c := range r.ByStatus(diff.StatusRemoved) {
		rep.Removed = append(rep.Removed, view(oldGraph, c))
	}

	for _, change := range diff.RelationChanges(r, r.Labels()) {
		rep.Relations = append(rep.Relations, RelationGroup{
			URI:     change.URI,
			Label:   change.Label,
			Added:   lines(change.Added),
			Removed: lines(change.Removed),
		})
	}

	for _, info := range diff.NewClassOverview(r, newGraph) {
		rep.NewClasses = append(rep.NewClasses, NewClassEntry{
			URI:          info.URI,
			Label:        info.Label,
			Domain:       domainOf(info.URI),
			Superclasses: pretties(info.Superclasses),
			Subclasses:   pretties(info.Subclasses),
			Orphan:       info.Orphan,
		})
	}

	perDomain := make(map[string]int)
	for _, e := range r.AddedEdges.Sorted() {
		rel := NewRelation{
			SubjectDomain: domainOf(e.Source),
			RelationLine:  line(e),
			ObjectDomain:  domainOf(e.Target),
			SubjectURI:    e.Source,
			ObjectURI:     e.Target,
		}
		rep.NewRelations = append(rep.NewRelations, rel)
		perDomain[rel.SubjectDomain]++
	}
	for dom, n := range perDomain {
		rep.NewRelationsByDomain = append(rep.NewRelationsByDomain, DomainCount{Domain: dom, Count: n})
	}
	sort.Slice(rep.NewRelationsByDomain, func(i, j int) bool {
		a, b := rep.NewRelationsByDomain[i], rep.NewRelationsByDomain[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Domain < b.Domain
	})

	for _, c := range r.EdgeOnlyChanges() {
		rep.EdgeOnly = append(rep.EdgeOnly, c.URI)
	}

	return rep
}

func line(e diff.Edge) RelationLine {
	return RelationLine{
		Subject:   ontology.Pretty(quad.IRI(e.Source)),
		Predicate: ontology.Pretty(quad.IRI(e.Relation)),
		Object:    ontology.Pretty(quad.IRI(e.Target)),
	}
}

func lines(edges []diff.Edge) []RelationLine {
	out := make([]RelationLine, 0, len(edges))
	for _, e := range edges {
		out = append(out, line(e))
	}
	return out
}

func pretties(uris []string) []string {
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		out = append(out, ontology.LocalName(u))
	}
	return out
}

// prefixed compacts uri, or wraps it in angle brackets when no prefix fits.
func prefixed(uri string, prefixes map[string]string) string {
	if name, ok := owl.Compact(uri, prefixes); ok && !strings.HasSuffix(name, ":") {
		return name
	}
	return "<" + uri + ">"
}
