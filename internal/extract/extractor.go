package extract

import (
	"strings"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// metaAttrPrefixes are attribute-name prefixes dropped before property
// extraction: namespace declarations and schema-instance attributes are
// never interpreted, only filtered.
var metaAttrPrefixes = []string{"xmlns", "xsi"}

// Attr is a decoded XML attribute. Values arrive as raw strings; typing
// them is the Config's job, not the document source's.
type Attr struct {
	Name  string
	Value string
}

// Extractor is the tree-to-graph state machine. It consumes element-open,
// text, and element-close events in document order and accumulates nodes
// and relationships into a Subgraph arena.
//
// State: a stack of open node indices (the ancestor chain), a parallel
// stack of text buffers (one per open, non-merged element), and at most
// one active collection element name. A single extraction is strictly
// sequential and single-threaded; to process documents in parallel, give
// each its own Extractor and share the Config read-only.
type Extractor struct {
	cfg              *Config
	sg               *graph.Subgraph
	stack            []int
	textStack        []*strings.Builder
	activeCollection string
}

// NewExtractor returns an Extractor accumulating into a fresh Subgraph.
// A nil cfg gets a fresh zero-value Config, so defaults apply; the
// default is never a shared instance.
func NewExtractor(cfg *Config) *Extractor {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Extractor{cfg: cfg, sg: graph.NewSubgraph()}
}

// StartElement handles an element-open event. The property map is built
// and coercers run before the collection and merge checks, so a bad
// attribute value is fatal even on elements that never become nodes.
func (e *Extractor) StartElement(name string, attrs []Attr) error {
	label := e.cfg.NodeLabel(name)
	properties := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if isMetaAttr(attr.Name) {
			continue
		}
		value, err := e.cfg.PropertyValue(name, attr.Name, attr.Value)
		if err != nil {
			return err
		}
		properties[e.cfg.PropertyName(name, attr.Name)] = value
	}

	if _, ok := e.cfg.CollectionElements[name]; ok {
		// A collection element groups its children under its own parent.
		// It is never pushed and never becomes a node. Only one slot
		// exists: the collection opened last wins.
		e.activeCollection = name
		return nil
	}

	if e.cfg.MergeWithParent[name] {
		if len(e.stack) == 0 {
			// Merge with no open parent: nothing to fold into. The
			// element and its attributes are silently dropped.
			return nil
		}
		// Fold into the open parent: the label replaces, the
		// properties extend.
		parent := e.sg.Node(e.stack[len(e.stack)-1])
		parent.Label = label
		for k, v := range properties {
			parent.Properties[k] = v
		}
		return nil
	}

	node := e.sg.AddNode(label, properties)
	if len(e.stack) > 0 {
		relLabel := e.cfg.RelationshipLabel(name, e.activeCollection)
		e.sg.AddRelationship(e.stack[len(e.stack)-1], relLabel, node)
	}
	e.stack = append(e.stack, node)
	e.textStack = append(e.textStack, &strings.Builder{})
	return nil
}

// Text handles a character-data event. Content accumulates into the
// innermost open element's buffer; with no buffer open (before the first
// element, or when only collection markers are open at the root) the
// content is dropped.
func (e *Extractor) Text(content string) {
	if len(e.textStack) > 0 {
		e.textStack[len(e.textStack)-1].WriteString(content)
	}
}

// EndElement handles an element-close event. If name is not a merge
// element and the stack is non-empty, the top node is popped and the
// trimmed buffered text, when non-empty, becomes its "value" property,
// overwriting any attribute-derived property of that name. A close tag
// equal to the active collection name then clears the collection slot.
//
// The pop does not match name against the popped node: a collection
// element's close (which pushed nothing at open) pops the node beneath
// it. Pair collection scopes with the single-slot tracking in mind.
func (e *Extractor) EndElement(name string) {
	if len(e.stack) > 0 && !e.cfg.MergeWithParent[name] {
		top := len(e.stack) - 1
		node := e.sg.Node(e.stack[top])
		e.stack = e.stack[:top]

		text := strings.TrimSpace(e.textStack[top].String())
		e.textStack = e.textStack[:top]
		if text != "" {
			node.Properties["value"] = text
		}
	}
	if e.activeCollection == name {
		e.activeCollection = ""
	}
}

// Subgraph returns the accumulated result. Call it after the document
// ends; the Extractor and its stacks should be discarded afterwards.
func (e *Extractor) Subgraph() *graph.Subgraph {
	return e.sg
}

// isMetaAttr reports whether an attribute name carries namespace or
// schema-instance metadata rather than document data.
func isMetaAttr(name string) bool {
	for _, prefix := range metaAttrPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
