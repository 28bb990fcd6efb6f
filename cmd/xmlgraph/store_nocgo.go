//go:build !cgo

package main

import (
	"fmt"

	"github.com/weavebio/xmlgraph/internal/graph"
)

// openStore falls back to the in-memory store when built without cgo.
// File-backed databases need the KuzuDB driver.
func openStore(dbPath string) (graph.Store, error) {
	if dbPath == "" {
		return graph.NewMemStore(), nil
	}
	return nil, fmt.Errorf("%s: persistent graph databases require a cgo build", dbPath)
}
