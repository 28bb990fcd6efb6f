package graph

import (
	"context"
	"io"
)

// Store is the interface for the property graph backend.
// Implementations: KuzuStore (production), MemStore (testing).
type Store interface {
	io.Closer

	// InitSchema creates the node and relationship tables. Called once
	// before any data is inserted.
	InitSchema(ctx context.Context) error

	// CreateSubgraph persists every node and relationship of sg. Nodes
	// receive store-assigned ids; sg itself is not modified.
	CreateSubgraph(ctx context.Context, sg *Subgraph) error

	// MatchNodes returns stored nodes with the given label. An empty
	// label matches every node; limit <= 0 returns all matches.
	MatchNodes(ctx context.Context, label string, limit int) ([]StoredNode, error)

	// Stats returns node and relationship counts grouped by label.
	Stats(ctx context.Context) (*GraphStats, error)
}
