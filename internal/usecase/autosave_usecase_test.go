package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/internal/usecase"
	"go-onboarding-wizard/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type autosaveHarness struct {
	clk      *clock.Fake
	medium   *countingMedium
	store    domain.FormStore
	autosave domain.AutosaveUsecase
}

func newAutosaveHarness(t *testing.T) *autosaveHarness {
	t.Helper()
	clk := clock.NewFake(testNow)
	medium := newCountingMedium()
	store := newTestStore(t, medium, clk)
	return &autosaveHarness{
		clk:    clk,
		medium: medium,
		store:  store,
		autosave: usecase.NewAutosaveUsecase(store, clk, usecase.AutosaveConfig{
			FormID: testFormID,
		}),
	}
}

func TestAutosaveDebounce(t *testing.T) {
	t.Run("Should coalesce rapid updates into one write", func(t *testing.T) {
		h := newAutosaveHarness(t)
		for i := 0; i < 5; i++ {
			h.autosave.Update(sampleRecord())
			h.clk.Advance(100 * time.Millisecond)
		}
		assert.Equal(t, 0, h.medium.Sets())
		assert.True(t, h.autosave.Status().HasUnsavedChanges)

		h.clk.Advance(399 * time.Millisecond)
		assert.Equal(t, 0, h.medium.Sets())

		h.clk.Advance(time.Millisecond)
		assert.Equal(t, 1, h.medium.Sets())

		status := h.autosave.Status()
		assert.False(t, status.HasUnsavedChanges)
		require.NotNil(t, status.LastSaved)
		assert.Equal(t, h.clk.Now(), *status.LastSaved)
	})

	t.Run("Should not schedule a write for an empty record", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Update(domain.OnboardingRecord{})
		assert.Equal(t, 0, h.clk.Pending())
	})
}

func TestAutosaveInterval(t *testing.T) {
	t.Run("Should save a non-empty record on every tick", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Start()
		h.autosave.Update(sampleRecord())

		h.clk.Advance(500 * time.Millisecond)
		assert.Equal(t, 1, h.medium.Sets())

		h.clk.Advance(29500 * time.Millisecond)
		assert.Equal(t, 2, h.medium.Sets())

		h.clk.Advance(30 * time.Second)
		assert.Equal(t, 3, h.medium.Sets())

		h.autosave.Stop()
		assert.Equal(t, 0, h.clk.Pending())
		h.clk.Advance(time.Minute)
		assert.Equal(t, 3, h.medium.Sets())
	})

	t.Run("Should skip ticks while the record is empty", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Start()
		h.clk.Advance(2 * time.Minute)
		assert.Equal(t, 0, h.medium.Sets())
		h.autosave.Stop()
	})

	t.Run("Should tick on demand", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.OnIdleTick(context.Background())
		assert.Equal(t, 0, h.medium.Sets())

		h.autosave.Update(sampleRecord())
		h.autosave.OnIdleTick(context.Background())
		assert.Equal(t, 1, h.medium.Sets())
	})
}

func TestAutosaveLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Should flush and warn on unload with unsaved changes", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Update(sampleRecord())

		assert.Equal(t, domain.UnloadWarning, h.autosave.OnUnload(ctx))
		assert.Equal(t, 1, h.medium.Sets())
		assert.Equal(t, 0, h.clk.Pending())

		assert.Empty(t, h.autosave.OnUnload(ctx))
		assert.Equal(t, 1, h.medium.Sets())
	})

	t.Run("Should save on suspend and pause the interval until resume", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Start()
		h.autosave.Update(sampleRecord())

		h.autosave.OnSuspend(ctx)
		assert.Equal(t, 1, h.medium.Sets())

		h.clk.Advance(time.Minute)
		assert.Equal(t, 1, h.medium.Sets())

		h.autosave.OnResume(ctx)
		h.clk.Advance(30 * time.Second)
		assert.Equal(t, 2, h.medium.Sets())
		h.autosave.Stop()
	})

	t.Run("Should save immediately on mark as saved", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Update(sampleRecord())

		assert.True(t, h.autosave.MarkAsSaved(ctx))
		assert.Equal(t, 1, h.medium.Sets())

		h.clk.Advance(time.Second)
		assert.Equal(t, 1, h.medium.Sets())
	})

	t.Run("Should report an unavailable medium", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.medium.SetAvailable(false)
		h.autosave.Update(sampleRecord())

		assert.False(t, h.autosave.MarkAsSaved(ctx))
		status := h.autosave.Status()
		assert.False(t, status.StorageAvailable)
		assert.True(t, status.HasUnsavedChanges)
	})

	t.Run("Should hydrate from a fresh snapshot", func(t *testing.T) {
		h := newAutosaveHarness(t)
		require.True(t, h.store.Save(ctx, testFormID, sampleRecord()))

		got := h.autosave.Hydrate(ctx)
		assert.Equal(t, sampleRecord(), got)
		assert.False(t, h.autosave.Status().HasUnsavedChanges)
	})

	t.Run("Should clear the snapshot and stop pending writes", func(t *testing.T) {
		h := newAutosaveHarness(t)
		h.autosave.Start()
		h.autosave.Update(sampleRecord())
		require.True(t, h.autosave.MarkAsSaved(ctx))
		h.autosave.Update(sampleRecord())

		h.autosave.Clear(ctx)
		h.clk.Advance(time.Minute)

		var got domain.OnboardingRecord
		assert.False(t, h.store.Load(ctx, testFormID, &got))
		assert.Equal(t, 1, h.medium.Sets())
		assert.Nil(t, h.autosave.Status().LastSaved)
		h.autosave.Stop()
	})
}
