package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/weavebio/xmlgraph/internal/config"
)

func runStatus(args []string) error {
	proj, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	dbPath := fs.String("db", orDefault(proj.DBPath, "./xmlgraph.kuzu"), "graph database path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*dbPath); err != nil {
		return fmt.Errorf("no graph database at %s (run \"xmlgraph ingest\" first)", *dbPath)
	}

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("Graph: %s\n\n", *dbPath)
	fmt.Printf("  Nodes:         %d\n", stats.Nodes)
	fmt.Printf("  Relationships: %d\n", stats.Relationships)

	printLabelTable("Node labels", stats.NodeLabels)
	printLabelTable("Relationship labels", stats.RelationshipLabels)
	return nil
}

func printLabelTable(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("\n  %s:\n", title)
	for _, label := range labels {
		fmt.Printf("    %-26s %d\n", label, counts[label])
	}
}
