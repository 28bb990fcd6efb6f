package mcptools

import (
	"github.com/weavebio/xmlgraph/internal/export"
	"github.com/weavebio/xmlgraph/internal/graph"
	"github.com/weavebio/xmlgraph/internal/ingest"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ExtractFileInput is the input for the extract_file MCP tool.
type ExtractFileInput struct {
	Path      string `json:"path" jsonschema:"path of the XML document to extract"`
	Profile   string `json:"profile,omitempty" jsonschema:"built-in rule profile name (e.g. uniprot)"`
	RulesFile string `json:"rulesFile,omitempty" jsonschema:"path to a YAML rule file; mutually exclusive with profile"`
}

// ExtractFileOutput is the result of the extract_file MCP tool.
type ExtractFileOutput struct {
	Nodes         int             `json:"nodes"`
	Relationships int             `json:"relationships"`
	Components    int             `json:"components"`
	Graph         export.Document `json:"graph"`
}

// IngestDirectoryInput is the input for the ingest_directory MCP tool.
type IngestDirectoryInput struct {
	Dir             string `json:"dir" jsonschema:"directory containing XML documents"`
	Pattern         string `json:"pattern,omitempty" jsonschema:"glob pattern selecting files within dir (default: *.xml)"`
	Profile         string `json:"profile,omitempty" jsonschema:"built-in rule profile name (e.g. uniprot)"`
	RulesFile       string `json:"rulesFile,omitempty" jsonschema:"path to a YAML rule file; mutually exclusive with profile"`
	Workers         int    `json:"workers,omitempty" jsonschema:"concurrent extraction workers (default: one per CPU)"`
	ContinueOnError bool   `json:"continueOnError,omitempty" jsonschema:"record per-file failures and keep going instead of aborting"`
}

// IngestDirectoryOutput is the result of the ingest_directory MCP tool.
type IngestDirectoryOutput struct {
	Summary ingest.Summary `json:"summary"`
	Failed  []string       `json:"failed,omitempty"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats graph.GraphStats `json:"stats"`
}

// MatchNodesInput is the input for the match_nodes MCP tool.
type MatchNodesInput struct {
	Label string `json:"label,omitempty" jsonschema:"node label to match; empty matches every label"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// MatchNodesOutput is the result of the match_nodes MCP tool.
type MatchNodesOutput struct {
	Nodes []graph.StoredNode `json:"nodes"`
	Total int                `json:"total"`
}
