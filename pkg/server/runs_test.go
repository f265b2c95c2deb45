package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webpilot/webpilot/pkg/flow"
	"github.com/webpilot/webpilot/pkg/types"
)

func TestRunSubscribe(t *testing.T) {
	t.Run("HistoryReplay", func(t *testing.T) {
		store := NewRunStore()
		run := store.Create("run-1", "find the docs")

		run.Append(types.NewStageStartEvent(flow.StagePlan))
		run.Append(types.NewStageEndEvent(flow.StagePlan))

		history, ch, cancel := run.Subscribe()
		defer cancel()

		require.Len(t, history, 2)
		assert.Equal(t, types.EventTypeStageStart, history[0].Type)

		// Live events arrive on the channel, not in history.
		run.Append(types.NewStageStartEvent(flow.StageExecute))
		event := <-ch
		assert.Equal(t, flow.StageExecute, event.Stage)
	})

	t.Run("FinishClosesSubscribers", func(t *testing.T) {
		store := NewRunStore()
		run := store.Create("run-2", "q")

		_, ch, cancel := run.Subscribe()
		defer cancel()

		run.finish(StatusCompleted, &flow.RunResult{RunID: "run-2"}, nil)

		_, open := <-ch
		assert.False(t, open, "expected subscriber channel closed on finish")

		snapshot := run.Snapshot()
		assert.Equal(t, StatusCompleted, snapshot.Status)
		require.NotNil(t, snapshot.Result)
	})

	t.Run("SubscribeAfterFinish", func(t *testing.T) {
		store := NewRunStore()
		run := store.Create("run-3", "q")
		run.Append(types.NewTurnEndEvent())
		run.finish(StatusFailed, nil, assert.AnError)

		history, ch, cancel := run.Subscribe()
		defer cancel()

		require.Len(t, history, 1)
		_, open := <-ch
		assert.False(t, open, "expected already-closed channel for finished run")
		assert.Equal(t, assert.AnError.Error(), run.Snapshot().Error)
	})

	t.Run("CancelIsIdempotent", func(t *testing.T) {
		store := NewRunStore()
		run := store.Create("run-4", "q")

		_, _, cancel := run.Subscribe()
		cancel()
		cancel()

		// A canceled subscriber no longer receives events.
		run.Append(types.NewTurnEndEvent())
	})

	t.Run("SlowSubscriberSkipped", func(t *testing.T) {
		store := NewRunStore()
		run := store.Create("run-5", "q")

		_, ch, cancel := run.Subscribe()
		defer cancel()

		// Fill the subscriber buffer and keep appending; Append must not
		// block.
		for i := 0; i < 300; i++ {
			run.Append(types.NewThinkingContentEvent("x"))
		}
		assert.Equal(t, 256, len(ch))
	})
}

func TestRunStore(t *testing.T) {
	store := NewRunStore()
	first := store.Create("a", "first query")
	time.Sleep(time.Millisecond)
	second := store.Create("b", "second query")

	t.Run("Get", func(t *testing.T) {
		run, err := store.Get("a")
		require.NoError(t, err)
		assert.Equal(t, first.ID, run.ID)

		_, err = store.Get("missing")
		assert.Error(t, err)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		runs := store.List()
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
	})

	t.Run("InitialStatus", func(t *testing.T) {
		assert.Equal(t, StatusQueued, first.Snapshot().Status)
		first.setRunning()
		assert.Equal(t, StatusRunning, first.Snapshot().Status)
	})
}
