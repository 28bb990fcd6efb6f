package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/weavebio/xmlgraph/internal/config"
	"github.com/weavebio/xmlgraph/internal/export"
	"github.com/weavebio/xmlgraph/internal/extract"
	"github.com/weavebio/xmlgraph/internal/graph"
	"github.com/weavebio/xmlgraph/internal/ingest"
)

// GraphService holds the graph store used by MCP tool handlers.
type GraphService struct {
	store graph.Store
}

// NewGraphService creates a GraphService backed by the given store.
func NewGraphService(store graph.Store) *GraphService {
	return &GraphService{store: store}
}

// ExtractFile extracts one XML document and returns the resulting subgraph
// without writing it to the store.
func (s *GraphService) ExtractFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractFileInput,
) (*mcp.CallToolResult, ExtractFileOutput, error) {
	if input.Path == "" {
		return nil, ExtractFileOutput{}, fmt.Errorf("path is required")
	}

	cfg, err := config.ResolveRules(input.Profile, input.RulesFile)
	if err != nil {
		return nil, ExtractFileOutput{}, err
	}

	sg, err := extract.ExtractFile(input.Path, cfg)
	if err != nil {
		return nil, ExtractFileOutput{}, err
	}

	return nil, ExtractFileOutput{
		Nodes:         len(sg.Nodes),
		Relationships: len(sg.Relationships),
		Components:    graph.Components(sg),
		Graph:         *export.BuildDocument(sg, input.Path),
	}, nil
}

// IngestDirectory extracts every matching file under a directory and
// writes the subgraphs to the store.
func (s *GraphService) IngestDirectory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestDirectoryInput,
) (*mcp.CallToolResult, IngestDirectoryOutput, error) {
	if input.Dir == "" {
		return nil, IngestDirectoryOutput{}, fmt.Errorf("dir is required")
	}

	cfg, err := config.ResolveRules(input.Profile, input.RulesFile)
	if err != nil {
		return nil, IngestDirectoryOutput{}, err
	}

	files, err := ingest.Discover(input.Dir, input.Pattern)
	if err != nil {
		return nil, IngestDirectoryOutput{}, err
	}
	if len(files) == 0 {
		return nil, IngestDirectoryOutput{}, fmt.Errorf("no files match in %s", input.Dir)
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, IngestDirectoryOutput{}, fmt.Errorf("init schema: %w", err)
	}

	p := ingest.NewPipeline(cfg, s.store, ingest.Options{
		Workers:         input.Workers,
		ContinueOnError: input.ContinueOnError,
	})
	defer p.Close()

	results, err := p.Run(ctx, files)
	if err != nil {
		return nil, IngestDirectoryOutput{}, fmt.Errorf("ingest %s: %w", input.Dir, err)
	}

	out := IngestDirectoryOutput{Summary: ingest.Summarize(results)}
	for _, r := range results {
		if r.Err != nil {
			out.Failed = append(out.Failed, r.Path)
		}
	}
	return nil, out, nil
}

// GraphStats returns node and relationship totals grouped by label.
func (s *GraphService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, GraphStatsOutput{Stats: *stats}, nil
}

// MatchNodes returns stored nodes, optionally filtered by label.
func (s *GraphService) MatchNodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchNodesInput,
) (*mcp.CallToolResult, MatchNodesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	nodes, err := s.store.MatchNodes(ctx, input.Label, limit)
	if err != nil {
		return nil, MatchNodesOutput{}, fmt.Errorf("match nodes: %w", err)
	}

	return nil, MatchNodesOutput{
		Nodes: nodes,
		Total: len(nodes),
	}, nil
}
