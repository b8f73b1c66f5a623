// shortcut-mcp: Shortcut MCP Server
//
// An MCP server that lets AI tools query and update a Shortcut
// workspace — stories, epics, iterations, objectives, teams, and
// workflows — through structured search filters instead of raw REST
// calls.
//
// Usage:
//
//	shortcut-mcp serve    # Start MCP server (stdio transport)
//
// Requires SHORTCUT_API_TOKEN in the environment or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sc-tools/shortcut-mcp/internal/config"
	scserver "github.com/sc-tools/shortcut-mcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("shortcut-mcp v%s\n", scserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	s := scserver.New(cfg)

	// Stdout belongs to the MCP transport; everything else the process
	// prints must go to stderr.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `shortcut-mcp v%s — Shortcut MCP Server

Usage:
  shortcut-mcp serve      Start the MCP server (stdio transport)
  shortcut-mcp version    Print version
  shortcut-mcp help       Show this help

Environment:
  %s        Shortcut API token (required)
  %s     API base URL (default %s)
  %s     HTTP timeout, e.g. 30s
  %s  Search page size, 1-%d
A .env file in the working directory is read if present.
`,
		scserver.Version,
		config.EnvToken,
		config.EnvBaseURL, config.DefaultBaseURL,
		config.EnvTimeout,
		config.EnvPageSize, config.MaxPageSize,
	)
}
