// Package llm provides abstractions for LLM provider integration.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := provider.StreamCompletion(ctx, []*types.Message{
//	    types.NewUserMessage("Hello!"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for chunk := range stream {
//	    if chunk.IsError() {
//	        log.Fatal(chunk.Error)
//	    }
//	    fmt.Print(chunk.Content)
//	}
package llm

import (
	"context"

	"github.com/webpilot/webpilot/pkg/types"
)

// ModelCloner is an optional interface that providers can implement to
// support lightweight per-call model overrides without constructing a
// full second provider. The returned provider shares credentials and
// transport with the original but directs calls to the given model.
type ModelCloner interface {
	CloneWithModel(model string) Provider
}

// Provider defines the interface for LLM integrations.
//
// Providers handle API communication and return simple StreamChunk
// instances. Converting chunks to agent events, emitting tool and
// status events, and managing conversation state are agent concerns,
// which keeps providers reusable in non-agent contexts (the planner
// and synthesizer stages of the automation flow call Complete
// directly).
type Provider interface {
	// StreamCompletion sends messages to the LLM and streams back
	// response chunks. The channel is closed when streaming completes
	// or an error occurs; callers should read until closed. An error
	// is returned only if streaming cannot be initiated.
	StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *StreamChunk, error)

	// Complete sends messages to the LLM and returns the full response.
	// This is a convenience wrapper around StreamCompletion that
	// accumulates all chunks into a single message.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModelInfo returns information about the model being used.
	GetModelInfo() *types.ModelInfo

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string
}
