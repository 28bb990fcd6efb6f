package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with all 4 graph tools registered.
func NewServer(svc *GraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "xmlgraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_file",
		Description: "Extract a property graph from a single XML document without persisting it. Returns node and relationship counts, the number of connected components, and the full subgraph.",
	}, svc.ExtractFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_directory",
		Description: "Extract every matching XML file under a directory in parallel and write the subgraphs to the graph database. Returns per-run totals and the list of failed files.",
	}, svc.IngestDirectory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return node and relationship totals in the graph database, grouped by label.",
	}, svc.GraphStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match_nodes",
		Description: "Return stored nodes with their properties, optionally filtered by label and limited in count.",
	}, svc.MatchNodes)

	return server
}

// RunServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunServerHTTP starts an HTTP server exposing the graph MCP tools.
func RunServerHTTP(ctx context.Context, svc *GraphService, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
