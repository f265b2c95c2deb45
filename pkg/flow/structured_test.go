package flow

import "testing"

func TestDecodeStructured(t *testing.T) {
	t.Run("BareJSON", func(t *testing.T) {
		var plan AutomationPlan
		err := decodeStructured(`{"task_description": "find the docs", "website_url": "https://example.com"}`, &plan)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.TaskDescription != "find the docs" {
			t.Errorf("unexpected task description: '%s'", plan.TaskDescription)
		}
	})

	t.Run("FencedBlock", func(t *testing.T) {
		response := "Here is the plan:\n```json\n{\"task_description\": \"extract the heading\", \"website_url\": \"none\"}\n```\nLet me know."
		var plan AutomationPlan
		if err := decodeStructured(response, &plan); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.TaskDescription != "extract the heading" {
			t.Errorf("unexpected task description: '%s'", plan.TaskDescription)
		}
	})

	t.Run("SurroundingProse", func(t *testing.T) {
		response := `Sure! {"summary": "done", "details": "all good"} Hope that helps.`
		var final FinalResponse
		if err := decodeStructured(response, &final); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if final.Summary != "done" {
			t.Errorf("unexpected summary: '%s'", final.Summary)
		}
	})

	t.Run("MalformedJSONRepaired", func(t *testing.T) {
		// Trailing comma and single quotes, both common model mistakes.
		response := `{'summary': 'done', 'details': 'all good',}`
		var final FinalResponse
		if err := decodeStructured(response, &final); err != nil {
			t.Fatalf("expected repair to succeed, got: %v", err)
		}
		if final.Summary != "done" {
			t.Errorf("unexpected summary: '%s'", final.Summary)
		}
	})

	t.Run("NoJSON", func(t *testing.T) {
		var plan AutomationPlan
		if err := decodeStructured("there is no object here", &plan); err == nil {
			t.Error("expected error when no JSON present")
		}
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("PrefersFencedBlock", func(t *testing.T) {
		response := "{\"outer\": true}\n```json\n{\"inner\": true}\n```"
		got := extractJSON(response)
		if got != `{"inner": true}` {
			t.Errorf("expected fenced block preferred, got: %s", got)
		}
	})

	t.Run("FenceWithoutObjectIgnored", func(t *testing.T) {
		response := "```\nplain text\n```\n{\"fallback\": 1}"
		got := extractJSON(response)
		if got != `{"fallback": 1}` {
			t.Errorf("expected brace fallback, got: %s", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := extractJSON("no braces at all"); got != "" {
			t.Errorf("expected empty result, got: %s", got)
		}
	})
}
