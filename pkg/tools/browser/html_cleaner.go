package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CleanedHTML holds cleaned page HTML along with extracted metadata.
type CleanedHTML struct {
	HTML        string
	Title       string
	Description string
	Truncated   bool
}

// cleanHTML parses raw page HTML and rebuilds it without scripts,
// styles, and other noise. Semantic structure and the attributes useful
// for selector targeting are preserved so an LLM can reason about the
// page and produce working selectors.
func cleanHTML(rawHTML string, maxLength int) (*CleanedHTML, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &CleanedHTML{
		Title:       findTitle(doc),
		Description: findMetaDescription(doc),
	}

	w := &cleanWriter{maxLength: maxLength}
	w.walk(doc, 0)

	result.HTML = w.builder.String()
	result.Truncated = w.truncated
	return result, nil
}

// cleanWriter accumulates cleaned HTML up to a length budget.
type cleanWriter struct {
	builder   strings.Builder
	length    int
	maxLength int
	truncated bool
}

func (w *cleanWriter) walk(n *html.Node, depth int) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		w.writeText(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedElements[tag] {
			return
		}
		w.writeElement(n, tag, depth)
		return
	}

	// Document and fragment nodes just pass through to children.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth)
	}
}

func (w *cleanWriter) writeText(data string) {
	text := strings.TrimSpace(data)
	if text == "" {
		return
	}

	if w.length+len(text) > w.maxLength {
		// Cut on a rune boundary so multi-byte characters survive.
		remaining := floorRune(text, w.maxLength-w.length)
		if remaining > 0 {
			w.builder.WriteString(text[:remaining])
			w.builder.WriteString("...")
		}
		w.length = w.maxLength
		w.truncated = true
		return
	}

	w.builder.WriteString(text)
	w.length += len(text)
}

func (w *cleanWriter) writeElement(n *html.Node, tag string, depth int) {
	if w.length >= w.maxLength {
		w.truncated = true
		return
	}

	if depth > 0 && blockElements[tag] {
		w.builder.WriteString("\n")
		w.builder.WriteString(strings.Repeat("  ", depth))
	}

	w.builder.WriteString("<")
	w.builder.WriteString(tag)
	for _, attr := range n.Attr {
		if preserveAttribute(tag, attr.Key) {
			fmt.Fprintf(&w.builder, ` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
		}
	}
	w.builder.WriteString(">")
	w.length += len(tag) + 2

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth+1)
	}

	if !voidElements[tag] {
		if blockElements[tag] {
			w.builder.WriteString("\n")
			w.builder.WriteString(strings.Repeat("  ", depth))
		}
		w.builder.WriteString("</")
		w.builder.WriteString(tag)
		w.builder.WriteString(">")
		w.length += len(tag) + 3
	}
}

// skippedElements are removed entirely along with their subtrees.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

// blockElements get newline and indentation formatting.
var blockElements = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "main": true,
	"aside": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true, "form": true,
	"fieldset": true, "blockquote": true, "pre": true,
}

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// preserveAttribute reports whether an attribute is useful for element
// targeting or analysis and should survive cleaning.
func preserveAttribute(tag, attr string) bool {
	attr = strings.ToLower(attr)

	switch attr {
	case "id", "class", "role", "aria-label", "aria-describedby":
		return true
	}

	// data-* attributes are often the most stable selector hooks.
	if strings.HasPrefix(attr, "data-") {
		return true
	}

	switch tag {
	case "a":
		return attr == "href" || attr == "target"
	case "img":
		return attr == "src" || attr == "alt"
	case "input", "textarea", "select":
		return attr == "name" || attr == "type" || attr == "placeholder" || attr == "value"
	case "button":
		return attr == "type" || attr == "name"
	case "form":
		return attr == "action" || attr == "method"
	}
	return false
}

// findTitle extracts the page title from the document.
func findTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// findMetaDescription extracts the meta description from the document.
func findMetaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				description = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
