package owl

import "testing"

func TestCompact(t *testing.T) {
	prefixes := DefaultPrefixes()
	prefixes["ec"] = "http://www.ebu.ch/metadata/ontologies/ebucoreplus#"

	tests := []struct {
		name   string
		iri    string
		want   string
		wantOK bool
	}{
		{name: "owl class", iri: Class, want: "owl:Class", wantOK: true},
		{name: "rdfs subclass", iri: SubClassOf, want: "rdfs:subClassOf", wantOK: true},
		{name: "custom namespace", iri: "http://www.ebu.ch/metadata/ontologies/ebucoreplus#Asset", want: "ec:Asset", wantOK: true},
		{name: "unknown namespace", iri: "http://example.org/x", want: "http://example.org/x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compact(tt.iri, prefixes)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Compact(%q) = %q, %v; want %q, %v", tt.iri, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompactPrefersLongestNamespace(t *testing.T) {
	prefixes := map[string]string{
		"ex":  "http://example.org/",
		"exv": "http://example.org/vocab#",
	}
	got, ok := Compact("http://example.org/vocab#Thing", prefixes)
	if !ok || got != "exv:Thing" {
		t.Errorf("expected exv:Thing, got %q (ok=%v)", got, ok)
	}
}

func TestSortedPrefixes(t *testing.T) {
	keys := SortedPrefixes(map[string]string{"skos": "", "owl": "", "rdf": ""})
	want := []string{"owl", "rdf", "skos"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("SortedPrefixes = %v, want %v", keys, want)
		}
	}
}
