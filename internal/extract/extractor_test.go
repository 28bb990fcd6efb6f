package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// nodeShape is a comparable rendering of a node for order-insensitive
// assertions.
type nodeShape struct {
	Label string
	Props map[string]any
}

// nodeShapes flattens a subgraph's nodes.
func nodeShapes(sg *graph.Subgraph) []nodeShape {
	out := make([]nodeShape, 0, len(sg.Nodes))
	for _, n := range sg.Nodes {
		out = append(out, nodeShape{Label: n.Label, Props: n.Properties})
	}
	return out
}

// relTriples renders relationships as (source label, label, target label).
func relTriples(sg *graph.Subgraph) [][3]string {
	out := make([][3]string, 0, len(sg.Relationships))
	for _, r := range sg.Relationships {
		out = append(out, [3]string{
			sg.Nodes[r.Source].Label,
			r.Label,
			sg.Nodes[r.Target].Label,
		})
	}
	return out
}

func TestExtractor_SingleElement(t *testing.T) {
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("entry", nil))
	ex.EndElement("entry")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 1)
	assert.Equal(t, "Entry", sg.Nodes[0].Label)
	assert.Empty(t, sg.Nodes[0].Properties)
	assert.Empty(t, sg.Relationships)
}

func TestExtractor_ParentChildRelationship(t *testing.T) {
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("entry", []Attr{{Name: "created", Value: "2000-05-30"}}))
	require.NoError(t, ex.StartElement("accession", nil))
	ex.Text("Q9Y261")
	ex.EndElement("accession")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	assert.ElementsMatch(t, []nodeShape{
		{Label: "Entry", Props: map[string]any{"created": "2000-05-30"}},
		{Label: "Accession", Props: map[string]any{"value": "Q9Y261"}},
	}, nodeShapes(sg))
	assert.Equal(t, [][3]string{{"Entry", "HAS_ACCESSION", "Accession"}}, relTriples(sg))
}

func TestExtractor_TextAccumulatesInnermostOnly(t *testing.T) {
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("entry", nil))
	ex.Text("outer ")
	require.NoError(t, ex.StartElement("name", nil))
	ex.Text("FOXA2")
	ex.EndElement("name")
	ex.Text(" more")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 2)
	assert.Equal(t, "FOXA2", sg.Nodes[1].Properties["value"])
	assert.Equal(t, "outer  more", sg.Nodes[0].Properties["value"])
}

func TestExtractor_TextSplitAcrossEvents(t *testing.T) {
	// Tokenizers may deliver one text run as several events.
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("accession", nil))
	ex.Text("Q9")
	ex.Text("Y261")
	ex.EndElement("accession")

	assert.Equal(t, "Q9Y261", ex.Subgraph().Nodes[0].Properties["value"])
}

func TestExtractor_TextWithNoOpenElementIsDropped(t *testing.T) {
	ex := NewExtractor(nil)

	ex.Text("stray")
	require.NoError(t, ex.StartElement("entry", nil))
	ex.EndElement("entry")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 1)
	assert.Empty(t, sg.Nodes[0].Properties)
}

func TestExtractor_TextOverwritesAttributeValueProperty(t *testing.T) {
	// An attribute literally named "value" and the element's text share
	// one property slot; text is applied at close time and wins.
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("entry", []Attr{{Name: "value", Value: "from-attr"}}))
	ex.Text("from-text")
	ex.EndElement("entry")

	assert.Equal(t, "from-text", ex.Subgraph().Nodes[0].Properties["value"])
}

func TestExtractor_MetaAttributesFiltered(t *testing.T) {
	ex := NewExtractor(nil)

	require.NoError(t, ex.StartElement("uniprot", []Attr{
		{Name: "xmlns", Value: "http://uniprot.org/uniprot"},
		{Name: "xmlns:xsi", Value: "http://www.w3.org/2001/XMLSchema-instance"},
		{Name: "xsi:schemaLocation", Value: "http://uniprot.org/uniprot"},
		{Name: "version", Value: "3"},
	}))
	ex.EndElement("uniprot")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 1)
	assert.Equal(t, map[string]any{"version": "3"}, sg.Nodes[0].Properties)
}

func TestExtractor_MergeWithParent(t *testing.T) {
	cfg := &Config{MergeWithParent: map[string]bool{"protein": true}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", []Attr{{Name: "dataset", Value: "Swiss-Prot"}}))
	require.NoError(t, ex.StartElement("protein", []Attr{{Name: "_id", Value: "Q9Y261"}}))
	ex.EndElement("protein")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 1)
	assert.Empty(t, sg.Relationships)
	// The merge element's label replaces the parent's; its attributes
	// extend the parent's properties.
	assert.Equal(t, "Protein", sg.Nodes[0].Label)
	assert.Equal(t, map[string]any{"dataset": "Swiss-Prot", "_id": "Q9Y261"}, sg.Nodes[0].Properties)
}

func TestExtractor_MergeKeepsParentTextBuffer(t *testing.T) {
	// A merge element pushes no text buffer, so surrounding text still
	// lands on the merged parent node.
	cfg := &Config{MergeWithParent: map[string]bool{"protein": true}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", nil))
	ex.Text("before")
	require.NoError(t, ex.StartElement("protein", nil))
	ex.EndElement("protein")
	ex.Text(" after")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	require.Len(t, sg.Nodes, 1)
	assert.Equal(t, "Protein", sg.Nodes[0].Label)
	assert.Equal(t, "before after", sg.Nodes[0].Properties["value"])
}

func TestExtractor_MergeAtRootIsSilentNoOp(t *testing.T) {
	// With no open parent there is nothing to fold into: the element and
	// its attributes are dropped rather than promoted to a node.
	cfg := &Config{MergeWithParent: map[string]bool{"protein": true}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("protein", []Attr{{Name: "_id", Value: "Q9Y261"}}))
	ex.EndElement("protein")

	sg := ex.Subgraph()
	assert.Empty(t, sg.Nodes)
	assert.Empty(t, sg.Relationships)
}

func TestExtractor_CollectionElement(t *testing.T) {
	cfg := &Config{CollectionElements: map[string]string{"authorList": "HAS_AUTHOR"}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", nil))
	require.NoError(t, ex.StartElement("authorList", nil))
	require.NoError(t, ex.StartElement("person", []Attr{{Name: "name", Value: "A"}}))
	ex.EndElement("person")
	require.NoError(t, ex.StartElement("person", []Attr{{Name: "name", Value: "B"}}))
	ex.EndElement("person")
	ex.EndElement("authorList")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	assert.ElementsMatch(t, []nodeShape{
		{Label: "Entry", Props: map[string]any{}},
		{Label: "Person", Props: map[string]any{"name": "A"}},
		{Label: "Person", Props: map[string]any{"name": "B"}},
	}, nodeShapes(sg))
	// Both relationships come from the collection's parent, under the
	// collection's label; the collection itself contributed no node.
	assert.ElementsMatch(t, [][3]string{
		{"Entry", "HAS_AUTHOR", "Person"},
		{"Entry", "HAS_AUTHOR", "Person"},
	}, relTriples(sg))
}

func TestExtractor_CollectionCloseAlsoPopsEnclosingElement(t *testing.T) {
	// Known edge of the single-slot collection design: the collection
	// element pushed nothing at open, but its close tag is not a merge
	// name, so the close pops the element beneath it. A sibling opened
	// after the collection closes therefore has no parent on the stack
	// and gets no relationship.
	cfg := &Config{CollectionElements: map[string]string{"authorList": "HAS_AUTHOR"}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", nil))
	require.NoError(t, ex.StartElement("authorList", nil))
	require.NoError(t, ex.StartElement("person", []Attr{{Name: "name", Value: "A"}}))
	ex.EndElement("person")
	ex.EndElement("authorList") // pops Entry
	require.NoError(t, ex.StartElement("gene", nil))
	ex.EndElement("gene")
	ex.EndElement("entry")

	sg := ex.Subgraph()
	assert.ElementsMatch(t, []nodeShape{
		{Label: "Entry", Props: map[string]any{}},
		{Label: "Person", Props: map[string]any{"name": "A"}},
		{Label: "Gene", Props: map[string]any{}},
	}, nodeShapes(sg))
	assert.Equal(t, [][3]string{{"Entry", "HAS_AUTHOR", "Person"}}, relTriples(sg))
}

func TestExtractor_LastOpenedCollectionWins(t *testing.T) {
	// Only one collection slot exists. Opening a second collection while
	// the first is active overwrites the slot, and any matching close
	// clears it.
	cfg := &Config{CollectionElements: map[string]string{
		"authorList": "HAS_AUTHOR",
		"geneList":   "HAS_GENE",
	}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", nil))
	require.NoError(t, ex.StartElement("authorList", nil))
	require.NoError(t, ex.StartElement("geneList", nil))
	require.NoError(t, ex.StartElement("gene", nil))
	ex.EndElement("gene")

	sg := ex.Subgraph()
	require.Len(t, sg.Relationships, 1)
	assert.Equal(t, "HAS_GENE", sg.Relationships[0].Label)
}

func TestExtractor_CollectionSlotClearedOnMatchingClose(t *testing.T) {
	cfg := &Config{CollectionElements: map[string]string{"authorList": "HAS_AUTHOR"}}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("uniprot", nil))
	require.NoError(t, ex.StartElement("entry", nil))
	require.NoError(t, ex.StartElement("authorList", nil))
	require.NoError(t, ex.StartElement("person", nil))
	ex.EndElement("person")
	ex.EndElement("authorList") // clears the slot, pops Entry
	require.NoError(t, ex.StartElement("accession", nil))
	ex.EndElement("accession")

	sg := ex.Subgraph()
	// The accession opened with Uniprot on top of the stack and reverts
	// to default relationship labeling once the collection is closed.
	triples := relTriples(sg)
	assert.Contains(t, triples, [3]string{"Uniprot", "HAS_ACCESSION", "Accession"})
	assert.Contains(t, triples, [3]string{"Entry", "HAS_AUTHOR", "Person"})
}

func TestExtractor_CoercionFailureAborts(t *testing.T) {
	cfg := &Config{PropertyTypes: map[string]map[string]Coercer{
		"entry": {"created": CoerceDate},
	}}
	ex := NewExtractor(cfg)

	err := ex.StartElement("entry", []Attr{{Name: "created", Value: "garbage"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "coerce entry.created")
}

func TestExtractor_CoercionRunsBeforeCollectionCheck(t *testing.T) {
	// Attribute coercion happens before the collection branch, so a bad
	// attribute is fatal even on an element that never becomes a node.
	cfg := &Config{
		CollectionElements: map[string]string{"authorList": "HAS_AUTHOR"},
		PropertyTypes: map[string]map[string]Coercer{
			"authorList": {"count": CoerceInt},
		},
	}
	ex := NewExtractor(cfg)

	require.NoError(t, ex.StartElement("entry", nil))
	err := ex.StartElement("authorList", []Attr{{Name: "count", Value: "three"}})
	require.Error(t, err)
}

func TestExtractor_SharedConfigIndependentInstances(t *testing.T) {
	// One immutable Config may drive many extractors; each owns private
	// stacks and a private result.
	cfg := &Config{NodeLabels: map[string]string{"entry": "Record"}}

	run := func() *graph.Subgraph {
		ex := NewExtractor(cfg)
		require.NoError(t, ex.StartElement("entry", nil))
		require.NoError(t, ex.StartElement("accession", nil))
		ex.Text("Q9Y261")
		ex.EndElement("accession")
		ex.EndElement("entry")
		return ex.Subgraph()
	}

	first, second := run(), run()
	assert.Equal(t, nodeShapes(first), nodeShapes(second))
	assert.Equal(t, relTriples(first), relTriples(second))
}
