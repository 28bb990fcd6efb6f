package graph

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using in-memory slices. Thread-safe via
// sync.RWMutex, so parallel ingest workers can share one instance.
type MemStore struct {
	mu    sync.RWMutex
	nodes []StoredNode
	rels  []StoredRelationship
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// CreateSubgraph assigns a fresh id to every node and stores nodes and
// relationships in insertion order. Property maps are copied so later
// mutation of sg cannot alias stored data.
func (m *MemStore) CreateSubgraph(_ context.Context, sg *Subgraph) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(sg.Nodes))
	for i, n := range sg.Nodes {
		ids[i] = uuid.NewString()
		m.nodes = append(m.nodes, StoredNode{
			ID:         ids[i],
			Label:      n.Label,
			Properties: maps.Clone(n.Properties),
		})
	}
	for _, r := range sg.Relationships {
		m.rels = append(m.rels, StoredRelationship{
			SourceID: ids[r.Source],
			Label:    r.Label,
			TargetID: ids[r.Target],
		})
	}
	return nil
}

// MatchNodes returns stored nodes with the given label, up to limit.
// An empty label matches all nodes; limit <= 0 returns all matches.
func (m *MemStore) MatchNodes(_ context.Context, label string, limit int) ([]StoredNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []StoredNode
	for _, n := range m.nodes {
		if label != "" && n.Label != label {
			continue
		}
		results = append(results, n)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Stats returns counts of stored nodes and relationships grouped by label.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &GraphStats{
		Nodes:              len(m.nodes),
		Relationships:      len(m.rels),
		NodeLabels:         make(map[string]int),
		RelationshipLabels: make(map[string]int),
	}
	for _, n := range m.nodes {
		stats.NodeLabels[n.Label]++
	}
	for _, r := range m.rels {
		stats.RelationshipLabels[r.Label]++
	}
	return stats, nil
}

// Relationships returns all stored relationships in insertion order.
// Exposed for tests and diagnostics; the Store interface does not need it.
func (m *MemStore) Relationships() []StoredRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StoredRelationship, len(m.rels))
	copy(out, m.rels)
	return out
}
