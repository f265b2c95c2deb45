package core

import (
	"errors"
	"testing"

	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/types"
)

func chunkStream(chunks ...*llm.StreamChunk) <-chan *llm.StreamChunk {
	ch := make(chan *llm.StreamChunk, len(chunks))
	for _, chunk := range chunks {
		ch <- chunk
	}
	close(ch)
	return ch
}

func TestProcessStream(t *testing.T) {
	t.Run("AccumulatesMessage", func(t *testing.T) {
		var events []*types.AgentEvent
		result := ProcessStream(chunkStream(
			&llm.StreamChunk{Role: "assistant", Content: "part one "},
			&llm.StreamChunk{Content: "part two"},
			&llm.StreamChunk{Finished: true},
		), func(e *types.AgentEvent) { events = append(events, e) })

		if result.Message != "part one part two" {
			t.Errorf("unexpected message: '%s'", result.Message)
		}
		if result.Role != "assistant" {
			t.Errorf("unexpected role: '%s'", result.Role)
		}
		if len(events) != 0 {
			t.Errorf("message content should not be emitted as events, got %d", len(events))
		}
	})

	t.Run("EmitsThinkingEvents", func(t *testing.T) {
		var events []*types.AgentEvent
		result := ProcessStream(chunkStream(
			&llm.StreamChunk{Content: "planning", Type: llm.ContentTypeThinking},
			&llm.StreamChunk{Content: " ahead", Type: llm.ContentTypeThinking},
			&llm.StreamChunk{Content: "the answer"},
		), func(e *types.AgentEvent) { events = append(events, e) })

		if result.Thinking != "planning ahead" {
			t.Errorf("unexpected thinking: '%s'", result.Thinking)
		}
		if result.Message != "the answer" {
			t.Errorf("unexpected message: '%s'", result.Message)
		}

		expected := []types.AgentEventType{
			types.EventTypeThinkingStart,
			types.EventTypeThinkingContent,
			types.EventTypeThinkingContent,
			types.EventTypeThinkingEnd,
		}
		if len(events) != len(expected) {
			t.Fatalf("expected %d events, got %d", len(expected), len(events))
		}
		for i, eventType := range expected {
			if events[i].Type != eventType {
				t.Errorf("event %d: expected %s, got %s", i, eventType, events[i].Type)
			}
		}
	})

	t.Run("ClosesThinkingAtStreamEnd", func(t *testing.T) {
		var events []*types.AgentEvent
		ProcessStream(chunkStream(
			&llm.StreamChunk{Content: "unfinished thought", Type: llm.ContentTypeThinking},
		), func(e *types.AgentEvent) { events = append(events, e) })

		last := events[len(events)-1]
		if last.Type != types.EventTypeThinkingEnd {
			t.Errorf("expected thinking_end at stream end, got %s", last.Type)
		}
	})

	t.Run("StopsOnError", func(t *testing.T) {
		streamErr := errors.New("connection reset")
		result := ProcessStream(chunkStream(
			&llm.StreamChunk{Content: "partial"},
			&llm.StreamChunk{Error: streamErr},
			&llm.StreamChunk{Content: "never seen"},
		), func(*types.AgentEvent) {})

		if !errors.Is(result.Err, streamErr) {
			t.Errorf("expected stream error, got %v", result.Err)
		}
		if result.Message != "partial" {
			t.Errorf("expected content before error kept, got '%s'", result.Message)
		}
	})
}
