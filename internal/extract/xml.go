package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// xmlNamespace is the namespace URI the "xml" prefix is bound to without
// ever being declared.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var errJunkAfterRoot = errors.New("extract: parse: junk after document element")

// Extract tokenizes an XML document and drives the state machine over it
// synchronously, returning the accumulated Subgraph. The document source
// owns no graph semantics: it only turns tokens into element-open, text,
// and element-close events with raw string attribute values.
//
// Malformed input aborts with the decoder's error (line position
// included) and no partial result. The decoder itself keeps reading
// tokens past the root element, so elements or non-whitespace text after
// the root closes are rejected here. A nil cfg uses a fresh default
// Config.
func Extract(r io.Reader, cfg *Config) (*graph.Subgraph, error) {
	ex := NewExtractor(cfg)
	dec := xml.NewDecoder(r)
	scope := newNSScope()
	depth := 0
	rootClosed := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("extract: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, errJunkAfterRoot
			}
			scope.push(t.Attr)
			depth++
			if err := ex.StartElement(t.Name.Local, scope.decodeAttrs(t.Attr)); err != nil {
				return nil, err
			}
		case xml.CharData:
			if rootClosed {
				if strings.Trim(string(t), " \t\r\n") != "" {
					return nil, errJunkAfterRoot
				}
			} else {
				ex.Text(string(t))
			}
		case xml.EndElement:
			ex.EndElement(t.Name.Local)
			scope.pop()
			depth--
			if depth == 0 {
				rootClosed = true
			}
		}
	}
	return ex.Subgraph(), nil
}

// ExtractFile extracts the document at path.
func ExtractFile(path string, cfg *Config) (*graph.Subgraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open: %w", err)
	}
	defer f.Close()

	sg, err := Extract(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sg, nil
}

// ---------- Namespace scope ----------

// nsScope tracks in-scope prefix declarations so attribute namespaces the
// decoder resolved to URIs can be folded back to the prefix the document
// wrote. frames records how many bindings each open element pushed.
type nsScope struct {
	bindings []nsBinding
	frames   []int
}

type nsBinding struct {
	prefix string
	uri    string
}

func newNSScope() *nsScope {
	return &nsScope{bindings: []nsBinding{{prefix: "xml", uri: xmlNamespace}}}
}

// push records the xmlns: declarations of one opening element. They are
// in scope for the element's own attributes.
func (s *nsScope) push(attrs []xml.Attr) {
	n := 0
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			s.bindings = append(s.bindings, nsBinding{prefix: a.Name.Local, uri: a.Value})
			n++
		}
	}
	s.frames = append(s.frames, n)
}

// pop drops the declarations of the element being closed.
func (s *nsScope) pop() {
	if len(s.frames) == 0 {
		return
	}
	n := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.bindings = s.bindings[:len(s.bindings)-n]
}

// prefixOf returns the innermost prefix bound to uri.
func (s *nsScope) prefixOf(uri string) (string, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].uri == uri {
			return s.bindings[i].prefix, true
		}
	}
	return "", false
}

// decodeAttrs converts decoder attributes into raw string Attrs with
// prefix-style qualified names.
func (s *nsScope) decodeAttrs(attrs []xml.Attr) []Attr {
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: s.attrName(a.Name), Value: a.Value})
	}
	return out
}

// attrName rebuilds the qualified attribute name as written. The decoder
// reports a bare xmlns declaration as Local "xmlns", a prefixed
// declaration with Space "xmlns", an undeclared prefix verbatim in Space,
// and a declared prefix as the resolved namespace URI, which prefixOf
// maps back to the prefix that declared it.
func (s *nsScope) attrName(n xml.Name) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == "xmlns":
		return "xmlns:" + n.Local
	default:
		if prefix, ok := s.prefixOf(n.Space); ok {
			return prefix + ":" + n.Local
		}
		return n.Space + ":" + n.Local
	}
}
