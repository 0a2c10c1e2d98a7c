package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mdvalidate "github.com/404Wolf/mdvalidate-sub001"
	"github.com/404Wolf/mdvalidate-sub001/cmd/mdvalidate/commands"
	"github.com/404Wolf/mdvalidate-sub001/internal/mcpserver"
	"github.com/404Wolf/mdvalidate-sub001/internal/textdiff"
)

// knownCommands lists the commands suggestCommand picks from.
var knownCommands = []string{"validate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("mdvalidate %s\n", mdvalidate.Version())
		fmt.Printf("commit: %s\n", mdvalidate.Commit())
		fmt.Printf("built: %s\n", mdvalidate.BuildTime())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			if !errors.Is(err, commands.ErrValidationFailed) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within two edits.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := textdiff.Distance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

func printUsage() {
	fmt.Println(`mdvalidate - Markdown Schema Validator

Usage:
  mdvalidate <command> [options]

Commands:
  validate    Validate a markdown document against a markdown schema
  mcp         Serve validation over the Model Context Protocol on stdio
  version     Show version information
  help        Show this help message

Examples:
  mdvalidate validate --schema schema.md README.md
  cat notes.md | mdvalidate validate -s schema.md --stream -
  mdvalidate validate -s schema.md --format json CHANGELOG.md

Run 'mdvalidate <command> --help' for more information on a command.`)
}
