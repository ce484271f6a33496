// Symbol search tool over an external search capability.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// searchResultLimit bounds the number of results rendered per query.
const searchResultLimit = 5

// SearchResult is one symbol returned by a search capability.
type SearchResult struct {
	Name     string
	Kind     string
	FilePath string
	Content  string
}

// Searcher is the external search capability (knowledge store and/or
// vector index). Implementations live outside the engine.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// searchTool searches the codebase through a Searcher.
type searchTool struct {
	searcher Searcher
}

func (t *searchTool) Name() string { return "search" }

func (t *searchTool) Description() string {
	return "Search for symbols in the codebase using graph and vector search."
}

func (t *searchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *searchTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, ok := stringArg(args, "query")
	if !ok {
		return "", fmt.Errorf("query is required")
	}

	results, err := t.searcher.Search(ctx, query, searchResultLimit)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}

	results = dedupeResults(results)
	if len(results) == 0 {
		return "No results found.", nil
	}
	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}

	var parts []string
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Symbol: %s (%s)\nFile: %s\nContent:\n%s",
			r.Name, r.Kind, r.FilePath, r.Content))
	}
	return strings.Join(parts, "\n---\n"), nil
}

// dedupeResults sorts by file path and drops duplicate name+path pairs.
func dedupeResults(results []SearchResult) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FilePath < results[j].FilePath
	})

	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		key := r.Name + "\x00" + r.FilePath
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
