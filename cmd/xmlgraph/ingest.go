package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/weavebio/xmlgraph/internal/config"
	"github.com/weavebio/xmlgraph/internal/ingest"
)

func runIngest(args []string) error {
	proj, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	dataDir := fs.String("data-dir", orDefault(proj.DataDir, "./data"), "directory containing XML documents")
	pattern := fs.String("pattern", orDefault(proj.Pattern, "*.xml"), "glob pattern selecting files within data-dir")
	dbPath := fs.String("db", orDefault(proj.DBPath, "./xmlgraph.kuzu"), "graph database path")
	workers := fs.Int("workers", proj.Workers, "concurrent extraction workers (0 = one per CPU)")
	profile := fs.String("profile", proj.Profile, "built-in rule profile name (e.g. uniprot)")
	rules := fs.String("rules", proj.RulesFile, "path to a YAML rule file")
	contOnErr := fs.Bool("continue-on-error", proj.ContinueOnError, "record per-file failures and keep going")
	verbose := fs.Bool("verbose", false, "print every progress event, not just completions and failures")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.ResolveRules(*profile, *rules)
	if err != nil {
		return err
	}

	files, err := ingest.Discover(*dataDir, *pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %q under %s", *pattern, *dataDir)
	}

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	p := ingest.NewPipeline(cfg, store, ingest.Options{
		Workers:         *workers,
		ContinueOnError: *contOnErr,
	})

	done := make(chan struct{})
	go func() {
		for ev := range p.Progress() {
			if *verbose || ev.Status == ingest.ProgressComplete || ev.Status == ingest.ProgressFailed {
				fmt.Println(ingest.FormatProgress(ev))
			}
		}
		close(done)
	}()

	results, runErr := p.Run(ctx, files)
	p.Close()
	<-done

	s := ingest.Summarize(results)
	fmt.Printf("\n%d files, %d failed: %d nodes, %d relationships -> %s\n",
		s.Files, s.Failed, s.Nodes, s.Relationships, *dbPath)

	return runErr
}
