package diff

import (
	"sort"

	"github.com/c360studio/ontodiff/ontology"
)

// Status classifies a class across two snapshots.
type Status string

const (
	StatusNew       Status = "New"
	StatusRemoved   Status = "Removed"
	StatusModified  Status = "Modified"
	StatusUnchanged Status = "Unchanged"
)

// Statuses lists every status in reporting order.
var Statuses = []Status{StatusModified, StatusNew, StatusRemoved, StatusUnchanged}

// ClassDiff is one row of the outer join of the old and new tables.
// Old or New is nil when the class is absent from that snapshot.
type ClassDiff struct {
	URI    string       `json:"uri"`
	Status Status       `json:"status"`
	Old    *Fingerprint `json:"old,omitempty"`
	New    *Fingerprint `json:"new,omitempty"`
}

// Label returns the new label when present, else the old one.
func (c ClassDiff) Label() string {
	if c.New != nil {
		return c.New.Label
	}
	if c.Old != nil {
		return c.Old.Label
	}
	return ontology.LocalName(c.URI)
}

// Result is the outcome of comparing two snapshots.
type Result struct {
	// Classes is sorted by URI; every class of either table appears once.
	Classes []ClassDiff `json:"classes"`

	OldTable Table `json:"-"`
	NewTable Table `json:"-"`

	OldEdges EdgeSet `json:"-"`
	NewEdges EdgeSet `json:"-"`

	// AddedEdges is new_edges − old_edges.
	AddedEdges EdgeSet `json:"-"`

	// RemovedEdges is old_edges − new_edges.
	RemovedEdges EdgeSet `json:"-"`
}

// Classify applies the classification rule to one joined row.
// Only subclass and total relation counts decide Modified.
func Classify(oldFP, newFP *Fingerprint) Status {
	switch {
	case oldFP == nil:
		return StatusNew
	case newFP == nil:
		return StatusRemoved
	case oldFP.Subclasses != newFP.Subclasses || oldFP.TotalRelations != newFP.TotalRelations:
		return StatusModified
	default:
		return StatusUnchanged
	}
}

// Compare joins the two fingerprint tables on URI, classifies every class and
// computes the edge deltas.
func Compare(oldTable, newTable Table, oldEdges, newEdges EdgeSet) *Result {
	uris := make(map[string]struct{}, len(oldTable)+len(newTable))
	for uri := range oldTable {
		uris[uri] = struct{}{}
	}
	for uri := range newTable {
		uris[uri] = struct{}{}
	}

	classes := make([]ClassDiff, 0, len(uris))
	for uri := range uris {
		row := ClassDiff{URI: uri}
		if fp, ok := oldTable[uri]; ok {
			row.Old = &fp
		}
		if fp, ok := newTable[uri]; ok {
			row.New = &fp
		}
		row.Status = Classify(row.Old, row.New)
		classes = append(classes, row)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].URI < classes[j].URI })

	if oldEdges == nil {
		oldEdges = EdgeSet{}
	}
	if newEdges == nil {
		newEdges = EdgeSet{}
	}

	return &Result{
		Classes:      classes,
		OldTable:     oldTable,
		NewTable:     newTable,
		OldEdges:     oldEdges,
		NewEdges:     newEdges,
		AddedEdges:   newEdges.Minus(oldEdges),
		RemovedEdges: oldEdges.Minus(newEdges),
	}
}

// Run fingerprints and extracts edges from both graphs, then compares them.
// A nil graph is treated as empty.
func Run(oldGraph, newGraph *ontology.Graph) *Result {
	return RunLang(oldGraph, newGraph, LabelLanguage)
}

// RunLang is Run with an explicit label language.
func RunLang(oldGraph, newGraph *ontology.Graph, lang string) *Result {
	if oldGraph == nil {
		oldGraph = ontology.NewGraph()
	}
	if newGraph == nil {
		newGraph = ontology.NewGraph()
	}

	oldTable := BuildClassStatsLang(oldGraph, lang)
	newTable := BuildClassStatsLang(newGraph, lang)

	return Compare(
		oldTable, newTable,
		ExtractEdges(oldGraph, oldTable.ClassSet()),
		ExtractEdges(newGraph, newTable.ClassSet()),
	)
}

// ByStatus returns the rows with the given status, in URI order.
func (r *Result) ByStatus(status Status) []ClassDiff {
	var out []ClassDiff
	for _, c := range r.Classes {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the number of classes per status.
func (r *Result) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, c := range r.Classes {
		counts[c.Status]++
	}
	return counts
}

// Class returns the row for uri.
func (r *Result) Class(uri string) (ClassDiff, bool) {
	i := sort.Search(len(r.Classes), func(i int) bool { return r.Classes[i].URI >= uri })
	if i < len(r.Classes) && r.Classes[i].URI == uri {
		return r.Classes[i], true
	}
	return ClassDiff{}, false
}

// Labels returns URI to label over both snapshots, new labels winning.
func (r *Result) Labels() map[string]string {
	labels := r.OldTable.Labels()
	for uri, label := range r.NewTable.Labels() {
		labels[uri] = label
	}
	return labels
}

// EdgeOnlyChanges returns the Unchanged classes that nevertheless gained or
// lost an edge. Classification is left as is; count-based comparison cannot
// see an added relation offset by a removed one.
func (r *Result) EdgeOnlyChanges() []ClassDiff {
	touched := make(map[string]struct{})
	for _, set := range []EdgeSet{r.AddedEdges, r.RemovedEdges} {
		for e := range set {
			touched[e.Source] = struct{}{}
			touched[e.Target] = struct{}{}
		}
	}

	var out []ClassDiff
	for _, c := range r.Classes {
		if c.Status != StatusUnchanged {
			continue
		}
		if _, ok := touched[c.URI]; ok {
			out = append(out, c)
		}
	}
	return out
}
