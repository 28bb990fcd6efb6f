//go:build cgo

package main

import "github.com/weavebio/xmlgraph/internal/graph"

// openStore opens the KuzuDB store at dbPath. An empty path opens an
// in-memory database.
func openStore(dbPath string) (graph.Store, error) {
	if dbPath == "" {
		return graph.NewKuzuStore()
	}
	return graph.NewKuzuFileStore(dbPath)
}
