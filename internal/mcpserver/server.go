// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes markdown schema validation as MCP tools over stdio.
package mcpserver

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mdvalidate "github.com/404Wolf/mdvalidate-sub001"
)

const serverInstructions = `mdvalidate MCP server: validates markdown documents against markdown schemas and extracts the values their matchers capture.

A schema is an ordinary markdown document. Inline code spans of the form ` + "`id:/regex/`" + ` are matchers: the input text at that position must match the regex, and the match is captured under id. Quantifiers after a list item matcher (e.g. {1,} or +) repeat it over list items. Everything else must appear in the input verbatim.

Configuration: All defaults are configurable via MDVALIDATE_* environment variables set in your MCP client config.

Key settings:
- MDVALIDATE_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- MDVALIDATE_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- MDVALIDATE_CACHE_ENABLED (default: true): disable document caching entirely
- MDVALIDATE_LIMIT (default: 100): default number of errors or matchers returned
- MDVALIDATE_MAX_DEPTH (default: 0, unlimited): default list nesting cap for validate
- MDVALIDATE_NORMALIZE_UNICODE (default: false): NFC-normalize inputs by default

Caching: Loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		documentCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "mdvalidate", Version: mdvalidate.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a markdown document against a markdown schema. Returns whether the document is valid, the values captured by the schema's matchers, and errors with node paths, line/column locations and diffs for content mismatches. Use kind to filter errors, group_by (kind or severity) for counts, and offset/limit to paginate. Critical errors mean the schema itself is unusable.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_matchers",
		Description: "List the matchers declared in a markdown schema in document order: capture id, regex, quantifiers, nesting cap, and where each appears. Use it to learn which captures a schema produces before validating. Fails if any matcher's regex does not compile.",
	}, handleListMatchers)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.Limit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.Limit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort counts items per key, largest group first and ties by key.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	slices.SortFunc(groups, func(a, b groupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
