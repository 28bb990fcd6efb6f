package extract

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Coercer converts a raw attribute string into a typed property value.
// A non-nil error aborts the whole extraction: partial graphs are not
// useful, so coercion failures are never swallowed.
type Coercer func(raw string) (any, error)

// Config describes how XML vocabulary maps onto graph vocabulary. All
// tables are optional; missing entries fall back to the defaults
// documented on each resolver. A Config is immutable once handed to an
// Extractor and safe to share read-only across concurrent extractions.
type Config struct {
	// NodeLabels maps element names to node labels.
	NodeLabels map[string]string

	// PropertyNames maps element name -> attribute name -> property name.
	PropertyNames map[string]map[string]string

	// PropertyTypes maps element name -> attribute name -> Coercer.
	PropertyTypes map[string]map[string]Coercer

	// RelationshipLabels maps element names to the label of the
	// relationship linking the parent node to this element's node.
	RelationshipLabels map[string]string

	// MergeWithParent lists elements that never become their own node.
	// Their label replaces the open parent's label and their attributes
	// extend the parent's properties.
	MergeWithParent map[string]bool

	// CollectionElements maps grouping elements to a relationship label.
	// A collection element never becomes a node; while it is open, its
	// children hang off the collection's parent under the given label.
	CollectionElements map[string]string
}

// NodeLabel resolves the label for an element's node.
// Default: the element name with its first letter upper-cased.
func (c *Config) NodeLabel(element string) string {
	if label, ok := c.NodeLabels[element]; ok {
		return label
	}
	return upperFirst(element)
}

// RelationshipLabel resolves the label of the relationship from the
// parent node to an element's node. A non-empty activeCollection wins
// unconditionally, even over an element-specific entry; callers pass
// only names whose membership in CollectionElements was confirmed at
// element open, so a missing entry is an invariant violation.
// Default: "HAS_" + upper snake_case of the element name.
func (c *Config) RelationshipLabel(element, activeCollection string) string {
	if activeCollection != "" {
		label, ok := c.CollectionElements[activeCollection]
		if !ok {
			panic("extract: active collection " + activeCollection + " not in CollectionElements")
		}
		return label
	}
	if label, ok := c.RelationshipLabels[element]; ok {
		return label
	}
	return "HAS_" + strings.ToUpper(inflect.Underscore(element))
}

// PropertyName resolves the property name for an attribute.
// Default: the attribute name unchanged.
func (c *Config) PropertyName(element, attr string) string {
	if byAttr, ok := c.PropertyNames[element]; ok {
		if name, ok := byAttr[attr]; ok {
			return name
		}
	}
	return attr
}

// PropertyValue resolves the typed value for an attribute. Without a
// configured Coercer the raw string passes through unchanged. A coercer
// failure comes back as a *CoercionError.
func (c *Config) PropertyValue(element, attr, raw string) (any, error) {
	if byAttr, ok := c.PropertyTypes[element]; ok {
		if coerce, ok := byAttr[attr]; ok {
			v, err := coerce(raw)
			if err != nil {
				return nil, &CoercionError{Element: element, Attr: attr, Err: err}
			}
			return v, nil
		}
	}
	return raw, nil
}

// CoercionError reports a configured Coercer rejecting a raw attribute
// value. It is fatal to the extraction of the document that produced it.
type CoercionError struct {
	Element string
	Attr    string
	Err     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("extract: coerce %s.%s: %v", e.Element, e.Attr, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// upperFirst upper-cases the first rune of s.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
