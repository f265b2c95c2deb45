package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// SearchTool searches the current page text for a query.
type SearchTool struct {
	manager *SessionManager
}

// NewSearchTool creates a new search tool.
func NewSearchTool(manager *SessionManager) *SearchTool {
	return &SearchTool{manager: manager}
}

func (t *SearchTool) Name() string {
	return "browser_search"
}

func (t *SearchTool) Description() string {
	return "Search the text of the current page for a query and return each match with surrounding context. Faster than extracting the full page when looking for specific information."
}

func (t *SearchTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Text to search for on the page",
			},
			"case_sensitive": map[string]interface{}{
				"type":        "boolean",
				"description": "Match case exactly. Default: false",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of matches to return. Default: 10",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		[]string{"query"},
	)
}

type searchInput struct {
	XMLName       xml.Name `xml:"arguments"`
	Query         string   `xml:"query"`
	CaseSensitive bool     `xml:"case_sensitive"`
	MaxResults    int      `xml:"max_results"`
	Session       string   `xml:"session"`
}

// Execute searches the page text.
func (t *SearchTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input searchInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Query == "" {
		return "", nil, fmt.Errorf("query is required")
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	results, err := session.Search(SearchOptions{
		Query:         input.Query,
		CaseSensitive: input.CaseSensitive,
		MaxResults:    maxResults,
	})
	if err != nil {
		return "", nil, err
	}

	if len(results) == 0 {
		return fmt.Sprintf("No matches found for %q on %s.", input.Query, session.CurrentURL), nil, nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Found %d match(es) for %q:\n", len(results), input.Query)
	for i, r := range results {
		fmt.Fprintf(&builder, "\n%d. ...%s...\n", i+1, strings.TrimSpace(r.Context))
	}

	return builder.String(), map[string]interface{}{"match_count": len(results)}, nil
}

func (t *SearchTool) IsLoopBreaking() bool {
	return false
}
