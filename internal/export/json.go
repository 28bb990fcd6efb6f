package export

import (
	"encoding/json"
	"fmt"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// Document is the top-level JSON export structure.
type Document struct {
	Source        string               `json:"source,omitempty"`
	Nodes         []NodeExport         `json:"nodes"`
	Relationships []RelationshipExport `json:"relationships"`
}

// NodeExport describes one extracted node. ID is the node's position in
// the subgraph arena.
type NodeExport struct {
	ID         int            `json:"id"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
}

// RelationshipExport describes one edge between arena positions.
type RelationshipExport struct {
	Source int    `json:"source"`
	Label  string `json:"label"`
	Target int    `json:"target"`
}

// BuildDocument converts a subgraph into its export form. Source labels
// the document (usually the input path) and may be empty.
func BuildDocument(sg *graph.Subgraph, source string) *Document {
	doc := &Document{
		Source:        source,
		Nodes:         make([]NodeExport, 0, len(sg.Nodes)),
		Relationships: make([]RelationshipExport, 0, len(sg.Relationships)),
	}
	for i, n := range sg.Nodes {
		doc.Nodes = append(doc.Nodes, NodeExport{
			ID:         i,
			Label:      n.Label,
			Properties: n.Properties,
		})
	}
	for _, r := range sg.Relationships {
		doc.Relationships = append(doc.Relationships, RelationshipExport{
			Source: r.Source,
			Label:  r.Label,
			Target: r.Target,
		})
	}
	return doc
}

// GenerateJSON renders a subgraph as an indented JSON document.
func GenerateJSON(sg *graph.Subgraph, source string) (string, error) {
	out, err := json.MarshalIndent(BuildDocument(sg, source), "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal JSON: %w", err)
	}
	return string(out) + "\n", nil
}
