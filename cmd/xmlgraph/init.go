package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/weavebio/xmlgraph/internal/seeddata"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// xmlgraphMCPEntry is the MCP server configuration for the xmlgraph binary.
var xmlgraphMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "xmlgraph",
  "args": ["serve"]
}`)

// runInit writes the starter files and MCP configuration into the target
// project directory.
func runInit(args []string) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := flags.Bool("force", false, "overwrite existing files")

	if err := flags.Parse(args); err != nil {
		return err
	}

	target := "."
	if flags.NArg() > 0 {
		target = flags.Arg(0)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}

	// --- Copy embedded starter files ---

	root := "seed"
	err = fs.WalkDir(seeddata.SeedFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Compute the relative path from the embed root.
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		dest := filepath.Join(abs, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}

		// Check if file already exists.
		if !*force {
			if _, err := os.Stat(dest); err == nil {
				fmt.Printf("  skipped %s (exists, use -force to overwrite)\n", dotRelative(abs, dest))
				return nil
			}
		}

		data, err := seeddata.SeedFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}

		fmt.Printf("  created %s\n", dotRelative(abs, dest))
		return nil
	})
	if err != nil {
		return fmt.Errorf("copying starter files: %w", err)
	}

	// --- Create/merge .mcp.json ---

	if err := mergeMCPConfig(filepath.Join(abs, ".mcp.json"), *force); err != nil {
		return err
	}

	fmt.Println("\nSetup complete. Try: xmlgraph extract data/sample.xml")
	return nil
}

// mergeMCPConfig creates or merges the xmlgraph entry into .mcp.json.
func mergeMCPConfig(mcpPath string, force bool) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["xmlgraph"]; exists && !force {
		fmt.Printf("  skipped .mcp.json xmlgraph entry (exists, use -force to overwrite)\n")
		return nil
	}

	cfg.MCPServers["xmlgraph"] = xmlgraphMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Printf("  %s .mcp.json with xmlgraph MCP server\n", action)
	return nil
}

// dotRelative returns a display path relative to the project root, prefixed
// with "./".
func dotRelative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return "./" + rel
}
