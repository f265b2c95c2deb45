// Package tokenizer provides client-side token counting for prompt
// budgeting, backed by tiktoken.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/webpilot/webpilot/pkg/types"
)

// defaultEncoding is used for all counting. cl100k_base covers the
// GPT-4 family; counts for other models are close enough for budgeting.
const defaultEncoding = "cl100k_base"

// perMessageOverhead approximates the tokens consumed by message
// framing in the chat completions format.
const perMessageOverhead = 4

// Tokenizer counts tokens in text and message lists.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer using the default encoding.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", defaultEncoding, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the number of tokens in the given text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessagesTokens returns the total token count for a message list,
// including per-message overhead.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += t.CountTokens(msg.Content)
		total += t.CountTokens(string(msg.Role))
		total += perMessageOverhead
	}
	return total
}

// EstimateTokens approximates a token count without an encoding, using
// the rough 4-characters-per-token heuristic. Used as a fallback when
// tokenizer initialization fails.
func EstimateTokens(text string) int {
	return len(text) / 4
}
