package tokenizer

import (
	"testing"

	"github.com/webpilot/webpilot/pkg/types"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected int
	}{
		{"Empty", "", 0},
		{"Short", "abcd", 1},
		{"Sentence", "the quick brown fox jumps", 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateTokens(tc.input); got != tc.expected {
				t.Errorf("expected %d tokens, got %d", tc.expected, got)
			}
		})
	}
}

func TestCountTokens(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	if got := tok.CountTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}

	got := tok.CountTokens("hello world")
	if got < 1 || got > 4 {
		t.Errorf("unexpected token count for short text: %d", got)
	}
}

func TestCountMessagesTokens(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	messages := []*types.Message{
		types.NewSystemMessage("you are a browser automation agent"),
		types.NewUserMessage("open example.com"),
	}

	total := tok.CountMessagesTokens(messages)
	content := tok.CountTokens(messages[0].Content) + tok.CountTokens(messages[1].Content)
	if total <= content {
		t.Errorf("expected total %d to include role and framing overhead beyond %d", total, content)
	}
}
