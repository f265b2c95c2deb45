package parser

import (
	"strings"
	"testing"

	"github.com/webpilot/webpilot/pkg/llm"
)

// feed runs chunks through the parser and returns the accumulated
// thinking and message content.
func feed(p *ThinkingParser, chunks ...string) (thinking, message string) {
	var tb, mb strings.Builder
	collect := func(tc, mc *llm.StreamChunk) {
		if tc != nil {
			tb.WriteString(tc.Content)
		}
		if mc != nil {
			mb.WriteString(mc.Content)
		}
	}
	for _, chunk := range chunks {
		collect(p.Parse(chunk))
	}
	collect(p.Flush())
	return tb.String(), mb.String()
}

func TestThinkingParser(t *testing.T) {
	t.Run("PlainContent", func(t *testing.T) {
		thinking, message := feed(NewThinkingParser(), "hello world")
		if thinking != "" {
			t.Errorf("expected no thinking content, got '%s'", thinking)
		}
		if message != "hello world" {
			t.Errorf("expected 'hello world', got '%s'", message)
		}
	})

	t.Run("ThinkingBlock", func(t *testing.T) {
		thinking, message := feed(NewThinkingParser(), "<thinking>planning the click</thinking>done")
		if thinking != "planning the click" {
			t.Errorf("expected thinking content, got '%s'", thinking)
		}
		if message != "done" {
			t.Errorf("expected 'done', got '%s'", message)
		}
	})

	t.Run("TagSplitAcrossChunks", func(t *testing.T) {
		thinking, message := feed(NewThinkingParser(), "<think", "ing>a", "b</thin", "king>c")
		if thinking != "ab" {
			t.Errorf("expected 'ab', got '%s'", thinking)
		}
		if message != "c" {
			t.Errorf("expected 'c', got '%s'", message)
		}
	})

	t.Run("NonThinkingTagPassedThrough", func(t *testing.T) {
		_, message := feed(NewThinkingParser(), "<b>bold</b>")
		if message != "<b>bold</b>" {
			t.Errorf("expected tags preserved, got '%s'", message)
		}
	})

	t.Run("UnclosedTagFlushed", func(t *testing.T) {
		_, message := feed(NewThinkingParser(), "text <incomplete")
		if message != "text <incomplete" {
			t.Errorf("expected buffered tag flushed, got '%s'", message)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		p := NewThinkingParser()
		tc, mc := p.Parse("")
		if tc != nil || mc != nil {
			t.Error("expected nil chunks for empty input")
		}
	})

	t.Run("IsInThinking", func(t *testing.T) {
		p := NewThinkingParser()
		p.Parse("<thinking>still going")
		if !p.IsInThinking() {
			t.Error("expected parser to be inside thinking block")
		}
		p.Parse("</thinking>")
		if p.IsInThinking() {
			t.Error("expected parser to have left thinking block")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		p := NewThinkingParser()
		p.Parse("<thinking>abc")
		p.Reset()
		if p.IsInThinking() {
			t.Error("expected reset to clear thinking state")
		}
		_, message := feed(p, "fresh")
		if message != "fresh" {
			t.Errorf("expected 'fresh', got '%s'", message)
		}
	})
}
