// Package core provides internal stream processing utilities shared by
// agent implementations.
package core

import (
	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/types"
)

// StreamResult holds the accumulated output of a processed LLM stream.
type StreamResult struct {
	// Thinking is the accumulated <thinking> content.
	Thinking string

	// Message is the accumulated regular content, which may contain a
	// tool call to be parsed by the caller.
	Message string

	// Role is the assistant role reported by the stream, if any.
	Role string

	// Err is the first stream-time error encountered, if any.
	Err error
}

// ProcessStream consumes an LLM chunk stream, emitting thinking events
// as they arrive and accumulating message content for the caller to
// parse. Message content is not emitted as events here because it
// usually carries tool call XML; the agent decides what to surface
// after parsing.
func ProcessStream(stream <-chan *llm.StreamChunk, emit func(*types.AgentEvent)) *StreamResult {
	result := &StreamResult{}
	thinkingOpen := false

	for chunk := range stream {
		if chunk.IsError() {
			result.Err = chunk.Error
			break
		}

		if chunk.Role != "" {
			result.Role = chunk.Role
		}

		if chunk.Content == "" {
			continue
		}

		if chunk.IsThinking() {
			if !thinkingOpen {
				emit(&types.AgentEvent{Type: types.EventTypeThinkingStart})
				thinkingOpen = true
			}
			emit(types.NewThinkingContentEvent(chunk.Content))
			result.Thinking += chunk.Content
			continue
		}

		if thinkingOpen {
			emit(&types.AgentEvent{Type: types.EventTypeThinkingEnd})
			thinkingOpen = false
		}
		result.Message += chunk.Content
	}

	if thinkingOpen {
		emit(&types.AgentEvent{Type: types.EventTypeThinkingEnd})
	}

	return result
}
