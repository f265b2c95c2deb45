package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TaskFile describes a one-off automation run loaded from YAML. It
// lets users script runs without a web UI:
//
//	query: "find the definition of pandas"
//	website_url: https://pandas.pydata.org/
//	headless: true
//	models:
//	  planner: gpt-4o-mini
type TaskFile struct {
	// Query is the automation query. Required.
	Query string `yaml:"query"`

	// WebsiteURL optionally pins the target site, skipping URL
	// detection by the planner.
	WebsiteURL string `yaml:"website_url"`

	// Headless overrides the configured browser mode when set.
	Headless *bool `yaml:"headless"`

	// TimeoutSeconds overrides the execution timeout when positive.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Models holds optional per-stage model overrides.
	Models TaskModels `yaml:"models"`
}

// TaskModels holds per-stage model overrides for a task file.
type TaskModels struct {
	Planner     string `yaml:"planner"`
	Executor    string `yaml:"executor"`
	Synthesizer string `yaml:"synthesizer"`
}

// LoadTaskFile reads and validates a YAML task file.
func LoadTaskFile(path string) (*TaskFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var task TaskFile
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}

	if task.Query == "" {
		return nil, fmt.Errorf("task file must set a query")
	}
	if task.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("timeout_seconds cannot be negative")
	}

	return &task, nil
}

// EffectiveQuery returns the query with the pinned URL appended, in the
// "task:url" form the planner recognizes.
func (t *TaskFile) EffectiveQuery() string {
	if t.WebsiteURL == "" {
		return t.Query
	}
	return fmt.Sprintf("%s:%s", t.Query, t.WebsiteURL)
}
