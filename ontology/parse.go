package ontology

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/knakk/rdf"

	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// Format names an RDF serialization.
type Format string

const (
	// FormatAuto selects the decoder from the file extension.
	FormatAuto Format = ""

	// FormatTurtle is Turtle (.ttl).
	FormatTurtle Format = "turtle"

	// FormatNTriples is N-Triples (.nt).
	FormatNTriples Format = "ntriples"

	// FormatNQuads is N-Quads (.nq). Graph labels are dropped.
	FormatNQuads Format = "nquads"

	// FormatRDFXML is RDF/XML (.rdf, .owl, .xml).
	FormatRDFXML Format = "rdfxml"
)

var extensionFormats = map[string]Format{
	".ttl":    FormatTurtle,
	".turtle": FormatTurtle,
	".nt":     FormatNTriples,
	".nq":     FormatNQuads,
	".rdf":    FormatRDFXML,
	".owl":    FormatRDFXML,
	".xml":    FormatRDFXML,
}

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "nquads", "nq", "n-quads":
		return FormatNQuads, nil
	case "rdfxml", "rdf/xml", "xml", "owl":
		return FormatRDFXML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// DetectFormat picks a Format from the file extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnsupportedFormat, path)
}

// Parse decodes r into a new graph.
func Parse(r io.Reader, format Format) (*Graph, error) {
	g := NewGraph()
	if _, err := g.Decode(r, format); err != nil {
		return nil, err
	}
	return g, nil
}

// Decode adds every triple in r to g and returns the number of new triples.
func (g *Graph) Decode(r io.Reader, format Format) (int, error) {
	return g.decode(r, format, "")
}

// decode prefixes blank node labels with scope so that blank nodes from
// different documents merged into one graph never collide.
func (g *Graph) decode(r io.Reader, format Format, scope string) (int, error) {
	switch format {
	case FormatTurtle:
		return g.decodeKnakk(r, rdf.Turtle, scope)
	case FormatRDFXML:
		return g.decodeKnakk(r, rdf.RDFXML, scope)
	case FormatNTriples, FormatNQuads:
		return g.decodeNQuads(r, scope)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func (g *Graph) decodeKnakk(r io.Reader, format rdf.Format, scope string) (int, error) {
	dec := rdf.NewTripleDecoder(r, format)
	added := 0
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return added, nil
		}
		if err != nil {
			return added, fmt.Errorf("decode triple %d: %w", added+1, err)
		}
		if g.Add(fromKnakk(tr.Subj, scope), fromKnakk(tr.Pred, scope), fromKnakk(tr.Obj, scope)) {
			added++
		}
	}
}

func (g *Graph) decodeNQuads(r io.Reader, scope string) (int, error) {
	rd := nquads.NewReader(r, true)
	added := 0
	for {
		q, err := rd.ReadQuad()
		if errors.Is(err, io.EOF) {
			return added, nil
		}
		if err != nil {
			return added, fmt.Errorf("decode quad %d: %w", added+1, err)
		}
		if g.Add(scoped(q.Subject, scope), q.Predicate, scoped(q.Object, scope)) {
			added++
		}
	}
}

func scoped(v quad.Value, scope string) quad.Value {
	if b, ok := v.(quad.BNode); ok && scope != "" {
		return quad.BNode(scope + string(b))
	}
	return v
}

// fromKnakk converts a knakk term into the quad value model.
func fromKnakk(t rdf.Term, scope string) quad.Value {
	switch v := t.(type) {
	case rdf.IRI:
		return quad.IRI(v.String())
	case rdf.Blank:
		return quad.BNode(scope + strings.TrimPrefix(v.String(), "_:"))
	case rdf.Literal:
		if lang := v.Lang(); lang != "" {
			return quad.LangString{Value: quad.String(v.String()), Lang: lang}
		}
		dt := v.DataType.String()
		if dt == "" || dt == xsdString {
			return quad.String(v.String())
		}
		return quad.TypedString{Value: quad.String(v.String()), Type: quad.IRI(dt)}
	}
	return nil
}

const xsdString = owl.XSDNamespace + "string"
