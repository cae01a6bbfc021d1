package owl

import (
	"sort"
	"strings"
)

// DefaultPrefixes returns the standard namespace prefixes used when
// compacting IRIs for display and export.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     RDFNamespace,
		"rdfs":    RDFSNamespace,
		"owl":     Namespace,
		"xsd":     XSDNamespace,
		"dc":      DCElementsNamespace,
		"dcterms": DCTermsNamespace,
		"skos":    SKOSNamespace,
	}
}

// Compact rewrites iri as prefix:local using the longest matching namespace
// in prefixes. It reports false when no namespace matches.
func Compact(iri string, prefixes map[string]string) (string, bool) {
	best, bestNS := "", ""
	for prefix, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < best) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return iri, false
	}
	return best + ":" + iri[len(bestNS):], true
}

// SortedPrefixes returns the prefix names in lexical order.
func SortedPrefixes(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
