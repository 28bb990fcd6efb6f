package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/weavebio/xmlgraph/internal/config"
	"github.com/weavebio/xmlgraph/internal/mcptools"
)

func runServe(args []string) error {
	proj, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	dbPath := fs.String("db", proj.DBPath, "graph database path (empty serves an in-memory graph)")
	httpAddr := fs.String("http", "", "serve MCP over HTTP on this address instead of stdio")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	svc := mcptools.NewGraphService(store)

	if *httpAddr != "" {
		fmt.Fprintf(os.Stderr, "serving MCP tools on http://%s\n", *httpAddr)
		return mcptools.RunServerHTTP(ctx, svc, *httpAddr)
	}
	return mcptools.RunServerStdio(ctx, mcptools.NewServer(svc))
}
