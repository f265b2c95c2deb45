package browser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// ExtractContent extracts page content in the specified format.
func (s *Session) ExtractContent(opts ExtractOptions) (string, error) {
	s.UpdateLastUsed()

	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = DefaultMaxLength
	}

	switch opts.Format {
	case FormatMarkdown:
		return s.extractMarkdown(opts)
	case FormatText:
		return s.extractText(opts)
	case FormatHTML:
		return s.extractHTML(opts)
	case FormatStructured:
		return s.extractStructured(opts)
	default:
		return "", fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// extractText extracts plain text content from the page or selector.
func (s *Session) extractText(opts ExtractOptions) (string, error) {
	selector := opts.Selector
	if selector == "" {
		selector = "body"
	}

	element, err := s.Page.QuerySelector(selector)
	if err != nil {
		return "", fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}

	content, err := element.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}

	if len(content) > opts.MaxLength {
		// Cut on a rune boundary so multi-byte characters survive.
		cut := floorRune(content, opts.MaxLength)
		warning := fmt.Sprintf("\n\n[Content truncated: %d of %d characters shown]", cut, len(content))
		return content[:cut] + warning, nil
	}
	return content, nil
}

// extractMarkdown extracts content with the page title as a heading.
func (s *Session) extractMarkdown(opts ExtractOptions) (string, error) {
	var markdown string

	title, err := s.Page.Title()
	if err == nil && title != "" {
		markdown = fmt.Sprintf("# %s\n\n", title)
	}

	text, err := s.extractText(opts)
	if err != nil {
		return "", err
	}

	return markdown + text, nil
}

// extractHTML extracts cleaned HTML preserving semantic structure and
// the attributes needed to target elements (id, class, data-*, href).
func (s *Session) extractHTML(opts ExtractOptions) (string, error) {
	var rawHTML string
	var err error

	if opts.Selector != "" {
		element, qerr := s.Page.QuerySelector(opts.Selector)
		if qerr != nil {
			return "", fmt.Errorf("selector query failed: %w", qerr)
		}
		if element == nil {
			return "", fmt.Errorf("no element found matching selector: %s", opts.Selector)
		}
		rawHTML, err = element.InnerHTML()
	} else {
		rawHTML, err = s.Page.Content()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}

	cleaned, err := cleanHTML(rawHTML, opts.MaxLength)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	if cleaned.Title != "" {
		fmt.Fprintf(&builder, "Title: %s\n", cleaned.Title)
	}
	if cleaned.Description != "" {
		fmt.Fprintf(&builder, "Description: %s\n", cleaned.Description)
	}
	if builder.Len() > 0 {
		builder.WriteString("\n")
	}
	builder.WriteString(cleaned.HTML)
	if cleaned.Truncated {
		builder.WriteString("\n\n[HTML truncated]")
	}
	return builder.String(), nil
}

// extractStructured extracts title, headings, links, and body text as JSON.
func (s *Session) extractStructured(opts ExtractOptions) (string, error) {
	structured := StructuredContent{}

	if title, err := s.Page.Title(); err == nil {
		structured.Title = title
	}

	headings, err := s.Page.QuerySelectorAll("h1, h2, h3, h4, h5, h6")
	if err == nil {
		for _, heading := range headings {
			text, textErr := heading.TextContent()
			if textErr == nil && strings.TrimSpace(text) != "" {
				structured.Headings = append(structured.Headings, strings.TrimSpace(text))
			}
		}
	}

	links, err := s.Page.QuerySelectorAll("a[href]")
	if err == nil {
		for _, link := range links {
			text, _ := link.TextContent()
			href, _ := link.GetAttribute("href")
			if href != "" {
				structured.Links = append(structured.Links, Link{
					Text: strings.TrimSpace(text),
					Href: href,
				})
			}
		}
	}

	bodyText, err := s.extractText(opts)
	if err == nil {
		structured.Body = bodyText
	}

	data, err := json.MarshalIndent(structured, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal structured content: %w", err)
	}
	return string(data), nil
}

// Click clicks an element matching the selector.
func (s *Session) Click(opts ClickOptions) error {
	s.UpdateLastUsed()

	clickOpts := playwright.PageClickOptions{}
	if opts.Button != "" {
		button := playwright.MouseButton(opts.Button)
		clickOpts.Button = &button
	}
	if opts.ClickCount > 0 {
		clickOpts.ClickCount = &opts.ClickCount
	}
	if opts.Timeout > 0 {
		clickOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(opts.Selector, clickOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Click may have triggered navigation.
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill fills an input element with the specified value, optionally
// pressing a key afterwards (e.g. Enter to submit a search form).
func (s *Session) Fill(opts FillOptions) error {
	s.UpdateLastUsed()

	fillOpts := playwright.PageFillOptions{}
	if opts.Timeout > 0 {
		fillOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(opts.Selector, opts.Value, fillOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	if opts.Press != "" {
		if err := s.Page.Press(opts.Selector, opts.Press); err != nil {
			return fmt.Errorf("key press failed: %w", err)
		}
		s.CurrentURL = s.Page.URL()
	}
	return nil
}

// Wait waits for an element to reach the requested state.
func (s *Session) Wait(opts WaitOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for wait")
	}

	waitOpts := playwright.PageWaitForSelectorOptions{}
	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		waitOpts.State = &state
	}
	if opts.Timeout > 0 {
		waitOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.WaitForSelector(opts.Selector, waitOpts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// Search finds occurrences of a query in the page text, returning each
// match with surrounding context.
func (s *Session) Search(opts SearchOptions) ([]SearchResult, error) {
	s.UpdateLastUsed()

	if opts.Query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	bodyText, err := s.extractText(ExtractOptions{MaxLength: 1 << 20})
	if err != nil {
		return nil, fmt.Errorf("failed to get page text: %w", err)
	}

	return searchText(bodyText, opts.Query, opts.CaseSensitive, opts.MaxResults), nil
}

// searchText scans text for query matches. All offsets are byte offsets
// into text itself, never into a case-folded copy: folding can change
// rune widths (U+023A lowers to the wider U+2C65), so indices from a
// lowered string do not line up with the original.
func searchText(text, query string, caseSensitive bool, maxResults int) []SearchResult {
	if query == "" {
		return nil
	}
	queryRunes := utf8.RuneCountInString(query)

	var results []SearchResult
	offset := 0
	for offset < len(text) {
		start, end := indexFold(text[offset:], query, queryRunes, caseSensitive)
		if start == -1 {
			break
		}
		start += offset
		end += offset

		contextStart := floorRune(text, start-50)
		contextEnd := ceilRune(text, end+50)

		results = append(results, SearchResult{
			Text:    text[start:end],
			Context: text[contextStart:contextEnd],
		})

		offset = end
		if maxResults > 0 && len(results) >= maxResults {
			break
		}
	}
	return results
}

// indexFold returns the byte offsets of the first occurrence of query
// in text, or (-1, -1) when there is none. Case-insensitive matching
// compares rune windows with strings.EqualFold; EqualFold uses simple
// rune-to-rune folding, so a window of queryRunes runes is exact.
func indexFold(text, query string, queryRunes int, caseSensitive bool) (int, int) {
	if caseSensitive {
		pos := strings.Index(text, query)
		if pos == -1 {
			return -1, -1
		}
		return pos, pos + len(query)
	}

	for i := 0; i < len(text); {
		end := i
		for n := 0; n < queryRunes; n++ {
			if end >= len(text) {
				return -1, -1
			}
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		if strings.EqualFold(text[i:end], query) {
			return i, end
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

// floorRune clamps pos into text and moves it back onto a rune boundary.
func floorRune(text string, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(text) {
		return len(text)
	}
	for pos > 0 && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

// ceilRune clamps pos into text and moves it forward onto a rune boundary.
func ceilRune(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	for pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos++
	}
	return pos
}

// GetMetadata returns current page metadata.
func (s *Session) GetMetadata() (map[string]string, error) {
	s.UpdateLastUsed()

	title, err := s.Page.Title()
	if err != nil {
		title = ""
	}

	return map[string]string{
		"title": title,
		"url":   s.Page.URL(),
	}, nil
}
