// Package owl provides IRI constants for the RDF, RDFS, OWL, SKOS and Dublin
// Core terms that give an ontology its structure.
//
// The diff engine only ever compares full IRIs, so every constant here is
// expanded; prefixed forms are produced on output through Prefixes.
package owl

import (
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Namespace roots.
const (
	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = rdf.NS

	// RDFSNamespace is the RDF Schema namespace.
	RDFSNamespace = rdfs.NS

	// Namespace is the OWL namespace.
	Namespace = "http://www.w3.org/2002/07/owl#"

	// SKOSNamespace is the SKOS core namespace.
	SKOSNamespace = "http://www.w3.org/2004/02/skos/core#"

	// DCTermsNamespace is the Dublin Core terms namespace.
	DCTermsNamespace = "http://purl.org/dc/terms/"

	// DCElementsNamespace is the Dublin Core elements namespace.
	DCElementsNamespace = "http://purl.org/dc/elements/1.1/"

	// XSDNamespace is the XML Schema datatypes namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// RDF and RDFS terms.
const (
	// Type links a resource to its class.
	Type = RDFNamespace + "type"

	// Label is the human-readable name of a resource.
	Label = RDFSNamespace + "label"

	// Comment is a human-readable description of a resource.
	Comment = RDFSNamespace + "comment"

	// SubClassOf states that every instance of the subject is an instance of the object.
	SubClassOf = RDFSNamespace + "subClassOf"

	// Domain declares the class of a property's subjects.
	Domain = RDFSNamespace + "domain"

	// Range declares the class of a property's objects.
	Range = RDFSNamespace + "range"
)

// OWL class and property declarations.
const (
	// Class types a node as an OWL class.
	Class = Namespace + "Class"

	// ObjectProperty types a node as a relation between two classes.
	ObjectProperty = Namespace + "ObjectProperty"

	// DatatypeProperty types a node as a relation from a class to a literal.
	DatatypeProperty = Namespace + "DatatypeProperty"

	// Restriction types an anonymous class constraining a property's values.
	Restriction = Namespace + "Restriction"
)

// OWL restriction terms.
const (
	// OnProperty names the property a restriction constrains.
	OnProperty = Namespace + "onProperty"

	// SomeValuesFrom is an existential value constraint.
	SomeValuesFrom = Namespace + "someValuesFrom"

	// AllValuesFrom is a universal value constraint.
	AllValuesFrom = Namespace + "allValuesFrom"

	// HasValue constrains the property to a single value.
	HasValue = Namespace + "hasValue"

	// OnClass names the class of a qualified cardinality restriction.
	OnClass = Namespace + "onClass"

	// QualifiedCardinality is an exact qualified cardinality.
	QualifiedCardinality = Namespace + "qualifiedCardinality"

	// MinQualifiedCardinality is a lower qualified cardinality bound.
	MinQualifiedCardinality = Namespace + "minQualifiedCardinality"

	// MaxQualifiedCardinality is an upper qualified cardinality bound.
	MaxQualifiedCardinality = Namespace + "maxQualifiedCardinality"
)

// ValueConstraints are the restriction predicates whose object is the
// restriction's target class. Order matters for callers that report the
// first matching kind.
var ValueConstraints = []string{SomeValuesFrom, AllValuesFrom, HasValue}

// Annotation terms.
const (
	// DCTermsDescription is the Dublin Core description property.
	DCTermsDescription = DCTermsNamespace + "description"

	// SKOSConcept is the SKOS concept class.
	SKOSConcept = SKOSNamespace + "Concept"

	// SKOSBroader links a concept to a broader concept.
	SKOSBroader = SKOSNamespace + "broader"

	// SKOSNarrower links a concept to a narrower concept.
	SKOSNarrower = SKOSNamespace + "narrower"
)
