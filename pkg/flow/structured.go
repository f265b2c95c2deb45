package flow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeStructured extracts the JSON object from an LLM response and
// unmarshals it into target. Models wrap their output in prose and
// code fences and occasionally emit malformed JSON; extraction and
// repair both happen here so callers only see a typed result.
func decodeStructured(response string, target interface{}) error {
	payload := extractJSON(response)
	if payload == "" {
		return fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(payload), target); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(payload)
	if err != nil {
		return fmt.Errorf("failed to repair JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), target); err != nil {
		return fmt.Errorf("failed to decode structured output: %w", err)
	}
	return nil
}

// extractJSON pulls the JSON payload out of an LLM response. A fenced
// code block wins when present; otherwise the outermost braces are
// used.
func extractJSON(response string) string {
	if fenced := extractFencedBlock(response); fenced != "" {
		return fenced
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(response[start : end+1])
}

// extractFencedBlock returns the contents of the first ```json or
// plain ``` fenced block containing an object.
func extractFencedBlock(response string) string {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(response, marker)
		if start == -1 {
			continue
		}
		rest := response[start+len(marker):]
		end := strings.Index(rest, "```")
		if end == -1 {
			continue
		}
		block := strings.TrimSpace(rest[:end])
		if strings.HasPrefix(block, "{") {
			return block
		}
	}
	return ""
}

// schemaInstructions tells the model to respond with bare JSON in the
// given shape. Appended to every structured-output prompt.
func schemaInstructions(description string, example string) string {
	return fmt.Sprintf(`

Respond with a single JSON object and nothing else. %s

Format:
%s`, description, example)
}
