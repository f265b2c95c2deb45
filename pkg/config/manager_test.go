package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	return NewManager(store)
}

func TestManagerRegisterSection(t *testing.T) {
	manager := newTestManager(t)

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, manager.RegisterSection(NewLLMSection()))
		section, ok := manager.GetSection(SectionIDLLM)
		assert.True(t, ok)
		assert.Equal(t, SectionIDLLM, section.ID())
	})

	t.Run("Duplicate", func(t *testing.T) {
		assert.Error(t, manager.RegisterSection(NewLLMSection()))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Error(t, manager.RegisterSection(nil))
	})
}

func TestManagerGetSectionsSorted(t *testing.T) {
	manager := newTestManager(t)
	require.NoError(t, manager.RegisterSection(NewServerSection()))
	require.NoError(t, manager.RegisterSection(NewBrowserSection()))
	require.NoError(t, manager.RegisterSection(NewLLMSection()))

	sections := manager.GetSections()
	require.Len(t, sections, 3)
	assert.Equal(t, SectionIDBrowser, sections[0].ID())
	assert.Equal(t, SectionIDLLM, sections[1].ID())
	assert.Equal(t, SectionIDServer, sections[2].ID())
}

func TestManagerSaveAndLoad(t *testing.T) {
	manager := newTestManager(t)
	llmSection := NewLLMSection()
	require.NoError(t, manager.RegisterSection(llmSection))

	llmSection.Model = "gpt-4o-mini"
	llmSection.PlannerModel = "gpt-4o"
	require.NoError(t, manager.SaveAll())

	// A fresh manager over the same file sees the saved values.
	store, err := NewFileStore(manager.Store().(*FileStore).Path())
	require.NoError(t, err)
	reloaded := NewManager(store)
	fresh := NewLLMSection()
	require.NoError(t, reloaded.RegisterSection(fresh))
	require.NoError(t, reloaded.LoadAll())

	assert.Equal(t, "gpt-4o-mini", fresh.GetModel())
	assert.Equal(t, "gpt-4o", fresh.GetPlannerModel())
}

func TestManagerSaveAllValidates(t *testing.T) {
	manager := newTestManager(t)
	browserSection := NewBrowserSection()
	require.NoError(t, manager.RegisterSection(browserSection))

	browserSection.MaxSessions = 0
	assert.Error(t, manager.SaveAll())
}

func TestManagerResetAll(t *testing.T) {
	manager := newTestManager(t)
	llmSection := NewLLMSection()
	require.NoError(t, manager.RegisterSection(llmSection))

	llmSection.Model = "custom"
	manager.ResetAll()
	assert.Equal(t, DefaultModel, llmSection.GetModel())
}
