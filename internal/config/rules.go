package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weavebio/xmlgraph/internal/extract"
	"github.com/weavebio/xmlgraph/internal/uniprot"
)

// RuleFile is the YAML form of a translation config. Coercions are
// referenced by name rather than carried as functions; Compile resolves
// them against the built-in registry.
type RuleFile struct {
	NodeLabels         map[string]string            `yaml:"nodeLabels,omitempty"`
	PropertyNames      map[string]map[string]string `yaml:"propertyNames,omitempty"`
	PropertyTypes      map[string]map[string]string `yaml:"propertyTypes,omitempty"`
	RelationshipLabels map[string]string            `yaml:"relationshipLabels,omitempty"`
	MergeWithParent    []string                     `yaml:"mergeWithParent,omitempty"`
	CollectionElements map[string]string            `yaml:"collectionElements,omitempty"`
}

// LoadRules reads a YAML rule file and compiles it into a translation
// config.
func LoadRules(path string) (*extract.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read: %w", err)
	}
	cfg, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseRules compiles YAML rule bytes into a translation config.
func ParseRules(data []byte) (*extract.Config, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("rules: parse: %w", err)
	}
	return rf.Compile()
}

// Compile resolves named coercers and builds the immutable config value.
// Unknown coercer names are errors at load time, not extraction time.
func (rf *RuleFile) Compile() (*extract.Config, error) {
	cfg := &extract.Config{
		NodeLabels:         rf.NodeLabels,
		PropertyNames:      rf.PropertyNames,
		RelationshipLabels: rf.RelationshipLabels,
		CollectionElements: rf.CollectionElements,
	}

	if len(rf.MergeWithParent) > 0 {
		cfg.MergeWithParent = make(map[string]bool, len(rf.MergeWithParent))
		for _, name := range rf.MergeWithParent {
			cfg.MergeWithParent[name] = true
		}
	}

	if len(rf.PropertyTypes) > 0 {
		cfg.PropertyTypes = make(map[string]map[string]extract.Coercer, len(rf.PropertyTypes))
		for element, byAttr := range rf.PropertyTypes {
			compiled := make(map[string]extract.Coercer, len(byAttr))
			for attr, typeName := range byAttr {
				coerce, ok := extract.CoercerByName(typeName)
				if !ok {
					return nil, fmt.Errorf("rules: %s.%s: unknown type %q (valid: %s)",
						element, attr, typeName, strings.Join(extract.CoercerNames(), ", "))
				}
				compiled[attr] = coerce
			}
			cfg.PropertyTypes[element] = compiled
		}
	}

	return cfg, nil
}

// ResolveRules selects the translation config for a run: by built-in
// profile name, by rule-file path, or a fresh default config when neither
// is given. Profile and rule file are mutually exclusive.
func ResolveRules(profile, rulesFile string) (*extract.Config, error) {
	if profile != "" && rulesFile != "" {
		return nil, fmt.Errorf("rules: profile and rules file are mutually exclusive")
	}
	if rulesFile != "" {
		return LoadRules(rulesFile)
	}
	switch profile {
	case "":
		return &extract.Config{}, nil
	case "uniprot":
		return uniprot.Config(), nil
	default:
		return nil, fmt.Errorf("rules: unknown profile %q", profile)
	}
}
