package export

import (
	"fmt"
	"strings"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a subgraph.
// Node boxes show the label (plus the element text when present);
// relationship labels annotate the arrows.
func GenerateMermaid(sg *graph.Subgraph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for i, n := range sg.Nodes {
		sb.WriteString(fmt.Sprintf("  N%d[\"%s\"]\n", i, nodeText(n)))
	}
	for _, r := range sg.Relationships {
		sb.WriteString(fmt.Sprintf("  N%d -->|%s| N%d\n", r.Source, r.Label, r.Target))
	}
	return sb.String()
}

func nodeText(n graph.Node) string {
	text := n.Label
	if v, ok := n.Properties["value"].(string); ok && v != "" {
		text = fmt.Sprintf("%s: %.40s", text, v)
	}
	return strings.ReplaceAll(text, `"`, "#quot;")
}
