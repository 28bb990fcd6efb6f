package graph

// --- Models ---

// Node is a single property-graph node: one label plus a map of typed
// property values. The reserved property "value" carries an XML element's
// trimmed text content when present.
type Node struct {
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Relationship is a directed, labeled edge between two nodes, addressed
// by their indices in the owning Subgraph arena.
type Relationship struct {
	Source int    `json:"source"`
	Label  string `json:"label"`
	Target int    `json:"target"`
}

// Subgraph accumulates nodes and relationships in insertion order.
// Relationships reference nodes by arena index, which makes a Subgraph a
// self-contained value that can be serialized or loaded as a unit without
// identity-based hashing. The accumulator performs no deduplication:
// every node and relationship is created exactly once upstream.
type Subgraph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// NewSubgraph returns an empty accumulator.
func NewSubgraph() *Subgraph {
	return &Subgraph{}
}

// AddNode appends a node and returns its arena index.
func (s *Subgraph) AddNode(label string, properties map[string]any) int {
	s.Nodes = append(s.Nodes, Node{Label: label, Properties: properties})
	return len(s.Nodes) - 1
}

// AddRelationship appends a directed edge between two nodes already in
// the arena.
func (s *Subgraph) AddRelationship(source int, label string, target int) {
	s.Relationships = append(s.Relationships, Relationship{
		Source: source,
		Label:  label,
		Target: target,
	})
}

// Node returns a mutable pointer to the node at index i. Merge handling
// uses this to rewrite the label and extend the properties of an already
// created node.
func (s *Subgraph) Node(i int) *Node {
	return &s.Nodes[i]
}

// LabelCounts returns the number of nodes per label.
func (s *Subgraph) LabelCounts() map[string]int {
	counts := make(map[string]int, len(s.Nodes))
	for _, n := range s.Nodes {
		counts[n.Label]++
	}
	return counts
}

// StoredNode is a node read back from a Store, carrying the storage id
// assigned at write time.
type StoredNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
}

// StoredRelationship is a relationship read back from a Store, with
// endpoints resolved to storage ids.
type StoredRelationship struct {
	SourceID string `json:"sourceId"`
	Label    string `json:"label"`
	TargetID string `json:"targetId"`
}

// GraphStats summarizes the contents of a Store.
type GraphStats struct {
	Nodes              int            `json:"nodes"`
	Relationships      int            `json:"relationships"`
	NodeLabels         map[string]int `json:"nodeLabels,omitempty"`
	RelationshipLabels map[string]int `json:"relationshipLabels,omitempty"`
}
