package flow

import (
	"strings"
	"testing"
)

func TestAutomationPlanApplyDefaults(t *testing.T) {
	cases := []struct {
		name        string
		url         string
		expectedURL string
	}{
		{"Empty", "", DefaultWebsiteURL},
		{"None", "none", DefaultWebsiteURL},
		{"NoneUppercase", "None", DefaultWebsiteURL},
		{"Null", "null", DefaultWebsiteURL},
		{"NotApplicable", "N/A", DefaultWebsiteURL},
		{"Whitespace", "  ", DefaultWebsiteURL},
		{"RealURL", "https://pandas.pydata.org/", "https://pandas.pydata.org/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := AutomationPlan{TaskDescription: "x", WebsiteURL: tc.url}
			plan.ApplyDefaults()
			if plan.WebsiteURL != tc.expectedURL {
				t.Errorf("expected URL '%s', got '%s'", tc.expectedURL, plan.WebsiteURL)
			}
		})
	}

	t.Run("ComplexityDefault", func(t *testing.T) {
		plan := AutomationPlan{TaskDescription: "x"}
		plan.ApplyDefaults()
		if plan.EstimatedComplexity != DefaultComplexity {
			t.Errorf("expected complexity '%s', got '%s'", DefaultComplexity, plan.EstimatedComplexity)
		}
	})

	t.Run("ComplexityPreserved", func(t *testing.T) {
		plan := AutomationPlan{TaskDescription: "x", EstimatedComplexity: "high"}
		plan.ApplyDefaults()
		if plan.EstimatedComplexity != "high" {
			t.Errorf("expected complexity preserved, got '%s'", plan.EstimatedComplexity)
		}
	})
}

func TestFinalResponseMarkdown(t *testing.T) {
	t.Run("WithRecommendations", func(t *testing.T) {
		r := FinalResponse{
			Summary:         "Found the definition.",
			Details:         "pandas is a data analysis library.",
			Recommendations: "Read the getting started guide.",
		}
		out := r.Markdown()
		if !strings.Contains(out, "**Summary:** Found the definition.") {
			t.Errorf("missing summary section: %s", out)
		}
		if !strings.Contains(out, "**Recommendations:** Read the getting started guide.") {
			t.Errorf("missing recommendations section: %s", out)
		}
	})

	t.Run("WithoutRecommendations", func(t *testing.T) {
		r := FinalResponse{Summary: "s", Details: "d"}
		out := r.Markdown()
		if !strings.Contains(out, "No additional recommendations at this time.") {
			t.Errorf("expected recommendations fallback, got: %s", out)
		}
	})
}
