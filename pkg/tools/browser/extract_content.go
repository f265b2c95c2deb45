package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// ExtractContentTool extracts content from the current page.
type ExtractContentTool struct {
	manager *SessionManager
}

// NewExtractContentTool creates a new extract content tool.
func NewExtractContentTool(manager *SessionManager) *ExtractContentTool {
	return &ExtractContentTool{manager: manager}
}

func (t *ExtractContentTool) Name() string {
	return "browser_extract_content"
}

func (t *ExtractContentTool) Description() string {
	return "Extract content from the current page. Formats: 'markdown' (default, readable text with title), 'text' (plain text), 'html' (cleaned HTML with selector attributes, best for finding elements to click or fill), 'structured' (JSON with title, headings, links, body)."
}

func (t *ExtractContentTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Output format: 'markdown' (default), 'text', 'html', or 'structured'",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "Optional CSS selector to limit extraction to a specific element (e.g., 'article', '.results')",
			},
			"max_length": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum content length in characters. Default: 10000",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		nil,
	)
}

type extractContentInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Format    string   `xml:"format"`
	Selector  string   `xml:"selector"`
	MaxLength *int     `xml:"max_length"`
	Session   string   `xml:"session"`
}

// Execute extracts content from the page.
func (t *ExtractContentTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input extractContentInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	opts := ExtractOptions{
		Format:    FormatMarkdown,
		Selector:  input.Selector,
		MaxLength: DefaultMaxLength,
	}

	if input.Format != "" {
		switch input.Format {
		case "markdown":
			opts.Format = FormatMarkdown
		case "text":
			opts.Format = FormatText
		case "html":
			opts.Format = FormatHTML
		case "structured":
			opts.Format = FormatStructured
		default:
			return "", nil, fmt.Errorf("invalid format: %s (must be 'markdown', 'text', 'html', or 'structured')", input.Format)
		}
	}

	if input.MaxLength != nil {
		if *input.MaxLength < 100 || *input.MaxLength > 100000 {
			return "", nil, fmt.Errorf("max_length must be between 100 and 100000")
		}
		opts.MaxLength = *input.MaxLength
	}

	content, err := session.ExtractContent(opts)
	if err != nil {
		return "", nil, err
	}

	source := "entire page"
	if opts.Selector != "" {
		source = fmt.Sprintf("selector: %s", opts.Selector)
	}

	result := fmt.Sprintf(`Content extracted successfully

Extraction Details:
- URL: %s
- Format: %s
- Source: %s
- Length: %d characters

---

%s`,
		session.CurrentURL,
		opts.Format,
		source,
		len(content),
		content,
	)

	return result, nil, nil
}

func (t *ExtractContentTool) IsLoopBreaking() bool {
	return false
}
