// Package export serializes relation edges back to RDF so added or removed
// relations can be loaded into other tools.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/ontodiff/diff"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat maps a user-supplied name to a Format. Registered file
// extensions are accepted as well.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, info := range FormatRegistry {
		if n == string(f) || n == info.Extension || "."+n == info.Extension {
			return f, nil
		}
	}
	switch n {
	case "n-triples":
		return FormatNTriples, nil
	case "json-ld":
		return FormatJSONLD, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", name)
}

// Triple is a statement to export. Object is an IRI unless Literal is set;
// Lang tags a literal object.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Literal   bool
	Lang      string
}

// object returns the RDF term for the object of t.
func (t Triple) object() quad.Value {
	switch {
	case !t.Literal:
		return iriRef(t.Object)
	case t.Lang != "":
		return quad.LangString{Value: quad.String(t.Object), Lang: t.Lang}
	default:
		return quad.String(t.Object)
	}
}

// Exporter collects triples and serializes them.
type Exporter struct {
	prefixes map[string]string
	triples  []Triple
	seen     map[Triple]bool
}

// NewExporter creates an exporter with the standard prefixes plus extra.
func NewExporter(extra map[string]string) *Exporter {
	prefixes := owl.DefaultPrefixes()
	for k, v := range extra {
		prefixes[k] = v
	}
	return &Exporter{
		prefixes: prefixes,
		seen:     make(map[Triple]bool),
	}
}

// Add appends a triple; duplicates are dropped.
func (e *Exporter) Add(t Triple) {
	if e.seen[t] {
		return
	}
	e.seen[t] = true
	e.triples = append(e.triples, t)
}

// AddEdges adds one triple per edge. Subclass edges become rdfs:subClassOf.
func (e *Exporter) AddEdges(edges diff.EdgeSet) {
	for _, edge := range edges.Sorted() {
		e.Add(EdgeTriple(edge))
	}
}

// AddLabels adds an rdfs:label tagged lang for every edge endpoint found in
// labels. An empty lang writes plain literals.
func (e *Exporter) AddLabels(edges diff.EdgeSet, labels map[string]string, lang string) {
	uris := make(map[string]bool)
	for edge := range edges {
		uris[edge.Source] = true
		uris[edge.Target] = true
	}
	keys := make([]string, 0, len(uris))
	for uri := range uris {
		keys = append(keys, uri)
	}
	sort.Strings(keys)
	for _, uri := range keys {
		if label, ok := labels[uri]; ok && label != "" {
			e.Add(Triple{Subject: uri, Predicate: owl.Label, Object: label, Literal: true, Lang: lang})
		}
	}
}

// Len returns the number of collected triples.
func (e *Exporter) Len() int {
	return len(e.triples)
}

// EdgeTriple converts a diff edge into an RDF statement.
func EdgeTriple(edge diff.Edge) Triple {
	pred := edge.Relation
	if edge.IsSubclass() {
		pred = owl.SubClassOf
	}
	return Triple{Subject: edge.Source, Predicate: pred, Object: edge.Target}
}

// Export serializes all triples to the specified format.
func (e *Exporter) Export(format Format) (string, error) {
	var sb strings.Builder
	if err := e.Write(&sb, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write serializes to w.
func (e *Exporter) Write(w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatTurtle:
		_, err = io.WriteString(w, e.toTurtle())
	case FormatNTriples:
		err = e.writeNTriples(w)
	case FormatJSONLD:
		_, err = io.WriteString(w, e.toJSONLD())
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("write %s export: %w", format, err)
	}
	return nil
}

// bySubject groups triples by subject, subjects sorted, triples in
// insertion order.
func (e *Exporter) bySubject() ([]string, map[string][]Triple) {
	groups := make(map[string][]Triple)
	for _, t := range e.triples {
		groups[t.Subject] = append(groups[t.Subject], t)
	}
	subjects := make([]string, 0, len(groups))
	for s := range groups {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects, groups
}

// toTurtle serializes to Turtle format.
func (e *Exporter) toTurtle() string {
	w := NewTurtleWriter(e.prefixes)
	w.WritePrefixes()

	subjects, groups := e.bySubject()
	for _, s := range subjects {
		w.WriteSubject(s)
		ts := groups[s]
		for i, t := range ts {
			w.WritePredicate(t, i == len(ts)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

// writeNTriples streams N-Triples to out.
func (e *Exporter) writeNTriples(out io.Writer) error {
	w := NewNTriplesWriter(out)
	subjects, groups := e.bySubject()
	for _, s := range subjects {
		for _, t := range groups[s] {
			if err := w.WriteTriple(t); err != nil {
				return err
			}
		}
	}
	return w.Close()
}

// toJSONLD serializes to JSON-LD format.
func (e *Exporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	subjects, groups := e.bySubject()
	for _, s := range subjects {
		props := make(map[string]any)
		for _, t := range groups[s] {
			key := compactOrFull(t.Predicate, e.prefixes)
			var value any
			if t.Literal {
				v := map[string]any{"@value": t.Object}
				if t.Lang != "" {
					v["@language"] = t.Lang
				}
				value = v
			} else {
				value = map[string]any{"@id": compactOrFull(t.Object, e.prefixes)}
			}
			if existing, ok := props[key].([]any); ok {
				props[key] = append(existing, value)
			} else {
				props[key] = []any{value}
			}
		}
		w.AddNode(compactOrFull(s, e.prefixes), nil, props)
	}
	return w.String()
}

func compactOrFull(iri string, prefixes map[string]string) string {
	if name, ok := compactName(iri, prefixes); ok {
		return name
	}
	return iri
}

// compactName returns prefix:local when the local part is a safe Turtle
// prefixed-name local.
func compactName(iri string, prefixes map[string]string) (string, bool) {
	name, ok := owl.Compact(iri, prefixes)
	if !ok {
		return "", false
	}
	local := name[strings.IndexByte(name, ':')+1:]
	if local == "" || strings.HasSuffix(local, ".") || strings.HasPrefix(local, ".") || strings.HasPrefix(local, "-") {
		return "", false
	}
	for _, r := range local {
		if !(r == '_' || r == '-' || r == '.' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "", false
		}
	}
	return name, true
}
