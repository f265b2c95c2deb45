package llm

// ContentType classifies the content carried by a stream chunk.
type ContentType string

const (
	// ContentTypeThinking marks content that is part of the model's
	// <thinking> reasoning block.
	ContentTypeThinking ContentType = "thinking"

	// ContentTypeMessage marks regular response content.
	ContentTypeMessage ContentType = "message"
)

// StreamChunk is a single unit of streamed LLM output.
//
// Chunks are emitted in order: the first chunk typically carries the
// assistant role, subsequent chunks carry content deltas, and the final
// chunk has Finished set. Stream-time failures are delivered as chunks
// with Error set.
type StreamChunk struct {
	// Role is the message role, set on the first chunk of a response.
	Role string

	// Content is the text delta for this chunk.
	Content string

	// Type classifies the content (thinking vs message).
	Type ContentType

	// Finished indicates the stream has completed.
	Finished bool

	// Error holds a stream-time error, if any.
	Error error
}

// IsError returns true if this chunk carries an error.
func (c *StreamChunk) IsError() bool {
	return c.Error != nil
}

// IsThinking returns true if this chunk carries thinking content.
func (c *StreamChunk) IsThinking() bool {
	return c.Type == ContentTypeThinking
}
