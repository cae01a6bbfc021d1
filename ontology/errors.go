package ontology

import "errors"

// Loading errors.
var (
	// ErrUnsupportedFormat is returned when a serialization cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")

	// ErrNoInput is returned when a snapshot is requested without any source.
	ErrNoInput = errors.New("no input files")

	// ErrNoMatches is returned when a glob pattern matches no files.
	ErrNoMatches = errors.New("pattern matched no files")
)
