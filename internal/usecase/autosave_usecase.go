package usecase

import (
	"context"
	"sync"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/clock"
	"go-onboarding-wizard/pkg/logger"
)

const (
	DefaultAutosaveDebounce = 500 * time.Millisecond
	DefaultAutosaveInterval = 30 * time.Second
)

// AutosaveConfig tunes the scheduler timers
type AutosaveConfig struct {
	FormID   string
	Debounce time.Duration
	Interval time.Duration
}

type autosaveUsecase struct {
	store domain.FormStore
	clock clock.Clock
	cfg   AutosaveConfig

	mu               sync.Mutex
	record           domain.OnboardingRecord
	hasUnsaved       bool
	lastSaved        *time.Time
	storageAvailable bool

	debounce    clock.Timer
	debounceGen int
	interval    clock.Timer
	intervalGen int
	running     bool
	suspended   bool
}

func NewAutosaveUsecase(store domain.FormStore, clk clock.Clock, cfg AutosaveConfig) domain.AutosaveUsecase {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultAutosaveDebounce
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutosaveInterval
	}
	return &autosaveUsecase{
		store:            store,
		clock:            clk,
		cfg:              cfg,
		storageAvailable: true,
	}
}

// Hydrate loads the last fresh snapshot, or an empty record
func (u *autosaveUsecase) Hydrate(ctx context.Context) domain.OnboardingRecord {
	var record domain.OnboardingRecord
	if !u.store.Load(ctx, u.cfg.FormID, &record) {
		record = domain.OnboardingRecord{}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.record = record.Clone()
	u.hasUnsaved = false
	u.storageAvailable = u.store.Usage(ctx).MediumAvailable
	return record
}

// Update replaces the record and (re)arms the debounce timer. Calls within
// one debounce window collapse into a single write.
func (u *autosaveUsecase) Update(record domain.OnboardingRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.record = record.Clone()
	u.hasUnsaved = true

	u.cancelDebounceLocked()
	if u.record.IsEmpty() {
		return
	}
	u.debounceGen++
	gen := u.debounceGen
	u.debounce = u.clock.AfterFunc(u.cfg.Debounce, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if gen != u.debounceGen {
			return
		}
		u.debounce = nil
		u.saveLocked(context.Background())
	})
}

// MarkAsSaved flushes immediately, bypassing the debounce
func (u *autosaveUsecase) MarkAsSaved(ctx context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancelDebounceLocked()
	return u.saveLocked(ctx)
}

// OnIdleTick is the interval safety net; it saves whenever the record has data
func (u *autosaveUsecase) OnIdleTick(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.record.IsEmpty() {
		u.saveLocked(ctx)
	}
}

// OnSuspend saves a non-empty record and pauses the interval
func (u *autosaveUsecase) OnSuspend(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.record.IsEmpty() {
		u.cancelDebounceLocked()
		u.saveLocked(ctx)
	}
	u.suspended = true
	u.cancelIntervalLocked()
}

// OnResume restarts the interval after a suspend
func (u *autosaveUsecase) OnResume(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.suspended = false
	u.armIntervalLocked()
}

// OnUnload flushes pending changes and returns the leave warning, or "" when
// nothing was pending
func (u *autosaveUsecase) OnUnload(ctx context.Context) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.hasUnsaved || u.record.IsEmpty() {
		return ""
	}
	u.cancelDebounceLocked()
	u.saveLocked(ctx)
	return domain.UnloadWarning
}

// Clear cancels pending writes, removes the snapshot and empties the record
func (u *autosaveUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancelDebounceLocked()
	u.store.Remove(ctx, u.cfg.FormID)
	u.record = domain.OnboardingRecord{}
	u.hasUnsaved = false
	u.lastSaved = nil
}

// Start arms the interval timer
func (u *autosaveUsecase) Start() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.running {
		return
	}
	u.running = true
	u.armIntervalLocked()
}

// Stop cancels every timer. Pending changes are not flushed; call OnUnload
// first for that.
func (u *autosaveUsecase) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.running = false
	u.cancelDebounceLocked()
	u.cancelIntervalLocked()
}

func (u *autosaveUsecase) Status() domain.AutosaveStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	status := domain.AutosaveStatus{
		HasUnsavedChanges: u.hasUnsaved,
		StorageAvailable:  u.storageAvailable,
	}
	if u.lastSaved != nil {
		t := *u.lastSaved
		status.LastSaved = &t
	}
	return status
}

// saveLocked must be called with u.mu held
func (u *autosaveUsecase) saveLocked(ctx context.Context) bool {
	ok := u.store.Save(ctx, u.cfg.FormID, u.record)
	u.storageAvailable = ok
	if !ok {
		logger.Log.Warn("Autosave failed", "form_id", u.cfg.FormID)
		return false
	}
	now := u.clock.Now()
	u.lastSaved = &now
	u.hasUnsaved = false
	return true
}

func (u *autosaveUsecase) cancelDebounceLocked() {
	u.debounceGen++
	if u.debounce != nil {
		u.debounce.Stop()
		u.debounce = nil
	}
}

func (u *autosaveUsecase) armIntervalLocked() {
	if !u.running || u.suspended || u.interval != nil {
		return
	}
	u.intervalGen++
	gen := u.intervalGen
	u.interval = u.clock.AfterFunc(u.cfg.Interval, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if gen != u.intervalGen {
			return
		}
		u.interval = nil
		if !u.record.IsEmpty() {
			u.saveLocked(context.Background())
		}
		u.armIntervalLocked()
	})
}

func (u *autosaveUsecase) cancelIntervalLocked() {
	u.intervalGen++
	if u.interval != nil {
		u.interval.Stop()
		u.interval = nil
	}
}
