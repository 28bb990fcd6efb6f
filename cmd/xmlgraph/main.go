package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `xmlgraph translates XML documents into property graphs.

Usage:
  xmlgraph <command> [flags]

Commands:
  extract   Extract one document and print the subgraph
  ingest    Extract a directory of documents into the graph database
  status    Show graph database totals by label
  serve     Expose the graph tools over MCP (stdio or HTTP)
  init      Write starter config, rules, and sample data
  version   Print version and exit

Run "xmlgraph <command> -h" for the flags of a command.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "extract":
		return runExtract(args[1:])
	case "ingest":
		return runIngest(args[1:])
	case "status":
		return runStatus(args[1:])
	case "serve":
		return runServe(args[1:])
	case "init":
		return runInit(args[1:])
	case "version", "-version", "--version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run \"xmlgraph help\")", args[0])
	}
}

// orDefault returns value unless it is empty.
func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
