//go:build cgo

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the embedded
// graph backend. It requires CGO because the go-kuzu driver wraps KuzuDB's
// C library.
//
// Extracted subgraphs carry arbitrary labels and property sets, so the
// schema is generic: one XmlNode table (id, label, properties-as-JSON) and
// one LINKS relationship table with a label column. Property values come
// back JSON-typed on read (numbers as float64, timestamps as strings).
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection

	// Kuzu connections are not safe for concurrent use; parallel ingest
	// workers funnel their writes through this mutex.
	mu sync.Mutex
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases; for existing databases the directory must contain valid KuzuDB
// files. This gives ingested graphs persistence across runs.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// The node table must precede the relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS XmlNode(
		id STRING,
		label STRING,
		properties STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS LINKS(FROM XmlNode TO XmlNode, label STRING)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// CreateSubgraph inserts every node of sg with a freshly minted uuid, then
// every relationship with endpoints resolved to those uuids. Properties are
// stored as a JSON document per node.
func (s *KuzuStore) CreateSubgraph(_ context.Context, sg *Subgraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(sg.Nodes))
	for i, n := range sg.Nodes {
		props, err := json.Marshal(n.Properties)
		if err != nil {
			return fmt.Errorf("kuzu: encode properties: %w", err)
		}
		ids[i] = uuid.NewString()
		err = s.exec(
			"CREATE (n:XmlNode {id: $id, label: $label, properties: $props})",
			map[string]any{
				"id":    ids[i],
				"label": n.Label,
				"props": string(props),
			},
		)
		if err != nil {
			return err
		}
	}

	for _, r := range sg.Relationships {
		err := s.exec(
			`MATCH (a:XmlNode {id: $src}), (b:XmlNode {id: $dst})
			 CREATE (a)-[:LINKS {label: $label}]->(b)`,
			map[string]any{
				"src":   ids[r.Source],
				"dst":   ids[r.Target],
				"label": r.Label,
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ---------- Read operations ----------

// MatchNodes returns stored nodes with the given label, up to limit.
// An empty label matches all nodes; limit <= 0 returns all matches.
func (s *KuzuStore) MatchNodes(_ context.Context, label string, limit int) ([]StoredNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cypher := "MATCH (n:XmlNode) RETURN n.id, n.label, n.properties"
	params := map[string]any{}
	if label != "" {
		cypher = "MATCH (n:XmlNode) WHERE n.label = $label RETURN n.id, n.label, n.properties"
		params["label"] = label
	}
	if limit > 0 {
		cypher += " LIMIT $lim"
		params["lim"] = int64(limit)
	}

	rows, err := s.query(cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]StoredNode, 0, len(rows))
	for _, r := range rows {
		node := StoredNode{
			ID:    toString(r[0]),
			Label: toString(r[1]),
		}
		if raw := toString(r[2]); raw != "" && raw != "{}" && raw != "null" {
			var props map[string]any
			if err := json.Unmarshal([]byte(raw), &props); err != nil {
				return nil, fmt.Errorf("kuzu: decode properties: %w", err)
			}
			node.Properties = props
		}
		out = append(out, node)
	}
	return out, nil
}

// Stats returns node and relationship counts grouped by label.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &GraphStats{
		NodeLabels:         make(map[string]int),
		RelationshipLabels: make(map[string]int),
	}

	rows, err := s.query("MATCH (n:XmlNode) RETURN n.label, count(n)", nil)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		count := toInt(r[1])
		stats.NodeLabels[toString(r[0])] = count
		stats.Nodes += count
	}

	rows, err = s.query("MATCH ()-[r:LINKS]->() RETURN r.label, count(r)", nil)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		count := toInt(r[1])
		stats.RelationshipLabels[toString(r[0])] = count
		stats.Relationships += count
	}
	return stats, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
// Callers must hold s.mu.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order. Callers must hold
// s.mu.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
