// Package uniprot provides the built-in translation profile for UniProt
// protein XML exports.
package uniprot

import "github.com/weavebio/xmlgraph/internal/extract"

// Config returns the UniProt translation profile: authors are people
// grouped under an authorList collection, the protein element folds into
// its entry, and organism/gene links get domain labels. Each call builds
// a fresh value, so callers may extend the tables without affecting
// other runs.
func Config() *extract.Config {
	return &extract.Config{
		NodeLabels: map[string]string{
			"person": "Author",
		},
		RelationshipLabels: map[string]string{
			"organism": "IN_ORGANISM",
			"gene":     "FROM_GENE",
		},
		CollectionElements: map[string]string{
			"authorList": "HAS_AUTHOR",
		},
		MergeWithParent: map[string]bool{
			"protein": true,
		},
	}
}
