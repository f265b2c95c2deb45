package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMSection(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewLLMSection()
		assert.Equal(t, DefaultModel, s.GetModel())
		assert.Empty(t, s.GetPlannerModel())
	})

	t.Run("DataRoundTrip", func(t *testing.T) {
		s := NewLLMSection()
		require.NoError(t, s.SetData(map[string]interface{}{
			"model":             "gpt-4o-mini",
			"base_url":          "https://llm.internal/v1",
			"executor_model":    "gpt-4o",
			"synthesizer_model": "gpt-4o-mini",
		}))

		assert.Equal(t, "gpt-4o-mini", s.GetModel())
		assert.Equal(t, "https://llm.internal/v1", s.GetBaseURL())
		assert.Equal(t, "gpt-4o", s.GetExecutorModel())

		data := s.Data()
		assert.Equal(t, "gpt-4o-mini", data["model"])
		assert.Equal(t, "gpt-4o", data["executor_model"])
	})

	t.Run("UnknownKeysIgnored", func(t *testing.T) {
		s := NewLLMSection()
		require.NoError(t, s.SetData(map[string]interface{}{"temperature": 0.2}))
		assert.Equal(t, DefaultModel, s.GetModel())
	})
}

func TestBrowserSection(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewBrowserSection()
		assert.True(t, s.IsHeadless())
		assert.Equal(t, 3, s.GetMaxSessions())
		assert.Equal(t, DefaultExecutionTimeoutSeconds, s.GetExecutionTimeoutSeconds())
		assert.NoError(t, s.Validate())
	})

	t.Run("JSONNumbersAccepted", func(t *testing.T) {
		// JSON decoding produces float64 for all numbers.
		s := NewBrowserSection()
		require.NoError(t, s.SetData(map[string]interface{}{
			"max_sessions":              float64(5),
			"execution_timeout_seconds": float64(60),
			"headless":                  false,
		}))
		assert.Equal(t, 5, s.GetMaxSessions())
		assert.Equal(t, 60, s.GetExecutionTimeoutSeconds())
		assert.False(t, s.IsHeadless())
	})

	t.Run("Validate", func(t *testing.T) {
		s := NewBrowserSection()
		s.MaxSessions = 0
		assert.Error(t, s.Validate())

		s.Reset()
		s.ExecutionTimeoutSeconds = 5
		assert.Error(t, s.Validate())
	})
}

func TestServerSection(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewServerSection()
		assert.Equal(t, "127.0.0.1", s.Host)
		assert.Equal(t, DefaultServerPort, s.Port)
	})

	t.Run("Addr", func(t *testing.T) {
		s := NewServerSection()
		s.Host = "0.0.0.0"
		s.Port = 9000
		assert.Equal(t, "0.0.0.0:9000", s.Addr())
	})

	t.Run("Validate", func(t *testing.T) {
		s := NewServerSection()
		s.Port = -1
		assert.Error(t, s.Validate())
	})
}
