package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// FormatForPath picks the format registered for the file extension of path.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, info := range FormatRegistry {
		if info.Extension == ext {
			return f, true
		}
	}
	return "", false
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer that compacts IRIs with prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	if prefixes == nil {
		prefixes = owl.DefaultPrefixes()
	}
	return &TurtleWriter{prefixes: prefixes}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	for _, prefix := range owl.SortedPrefixes(w.prefixes) {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: %s .\n", prefix, iriRef(w.prefixes[prefix])))
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	w.sb.WriteString(w.iri(iri))
	w.sb.WriteString("\n")
}

// WritePredicate writes the predicate-object pair of t.
func (w *TurtleWriter) WritePredicate(t Triple, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	objectStr := w.iri(t.Object)
	if t.Literal {
		objectStr = t.object().String()
	}
	pred := w.iri(t.Predicate)
	if t.Predicate == owl.Type {
		pred = "a"
	}
	w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", pred, objectStr, terminator))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) iri(iri string) string {
	if name, ok := compactName(iri, w.prefixes); ok {
		return name
	}
	return iriRef(iri).String()
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	enc *nquads.Writer
}

// NewNTriplesWriter creates an N-Triples writer on w. Close flushes it.
func NewNTriplesWriter(w io.Writer) *NTriplesWriter {
	return &NTriplesWriter{enc: nquads.NewWriter(w)}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(t Triple) error {
	return w.enc.WriteQuad(quad.Quad{
		Subject:   iriRef(t.Subject),
		Predicate: iriRef(t.Predicate),
		Object:    t.object(),
	})
}

// Close flushes buffered output.
func (w *NTriplesWriter) Close() error {
	return w.enc.Close()
}

// iriRef returns iri with every character the IRIREF production forbids
// written as a \uXXXX escape.
func iriRef(iri string) quad.IRI {
	if !strings.ContainsFunc(iri, forbiddenInIRI) {
		return quad.IRI(iri)
	}
	var b strings.Builder
	for _, r := range iri {
		if forbiddenInIRI(r) {
			fmt.Fprintf(&b, "\\u%04X", r)
			continue
		}
		b.WriteRune(r)
	}
	return quad.IRI(b.String())
}

func forbiddenInIRI(r rune) bool {
	if r <= 0x20 {
		return true
	}
	return strings.ContainsRune("<>\"{}|^`\\", r)
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(id string, types []string, properties map[string]any) {
	w.doc.Graph = append(w.doc.Graph, JSONLDNode{
		ID:         id,
		Type:       types,
		Properties: properties,
	})
}

// String returns the JSON-LD output.
func (w *JSONLDWriter) String() string {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
