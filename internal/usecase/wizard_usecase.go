package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/apperror"
	"go-onboarding-wizard/pkg/audit"
	"go-onboarding-wizard/pkg/clock"
	"go-onboarding-wizard/pkg/format"
	"go-onboarding-wizard/pkg/imaging"
	"go-onboarding-wizard/pkg/logger"
	"go-onboarding-wizard/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultCleanupGraceDelay separates final submission from snapshot removal
const DefaultCleanupGraceDelay = time.Second

// WizardConfig identifies the session and tunes cleanup
type WizardConfig struct {
	FormID            string
	CleanupGraceDelay time.Duration
}

// WizardDeps are the collaborators of the wizard controller
type WizardDeps struct {
	Schema    domain.SchemaUsecase
	Autosave  domain.AutosaveUsecase
	Store     domain.FormStore
	Blobs     domain.BlobStore
	Directory domain.DirectoryRepository
	Submitter domain.Submitter
	Clock     clock.Clock
	Audit     *audit.Logger
}

type wizardUsecase struct {
	cfg       WizardConfig
	schema    domain.SchemaUsecase
	autosave  domain.AutosaveUsecase
	store     domain.FormStore
	blobs     domain.BlobStore
	directory domain.DirectoryRepository
	submitter domain.Submitter
	clock     clock.Clock
	audit     *audit.Logger

	mu           sync.Mutex
	currentStep  int
	completed    map[int]bool
	invalidated  map[int]bool
	record       domain.OnboardingRecord
	submitted    bool
	submissionID string
	hasPicture   bool
	cleanup      clock.Timer
}

// NewWizardUsecase hydrates the record from the last fresh snapshot. The
// completed set always starts empty.
func NewWizardUsecase(ctx context.Context, deps WizardDeps, cfg WizardConfig) domain.WizardUsecase {
	if cfg.CleanupGraceDelay <= 0 {
		cfg.CleanupGraceDelay = DefaultCleanupGraceDelay
	}
	if deps.Audit == nil {
		deps.Audit = audit.Default()
	}

	u := &wizardUsecase{
		cfg:         cfg,
		schema:      deps.Schema,
		autosave:    deps.Autosave,
		store:       deps.Store,
		blobs:       deps.Blobs,
		directory:   deps.Directory,
		submitter:   deps.Submitter,
		clock:       deps.Clock,
		audit:       deps.Audit,
		completed:   make(map[int]bool),
		invalidated: make(map[int]bool),
	}
	u.record = deps.Autosave.Hydrate(ctx)

	blob, err := deps.Blobs.Load(ctx, domain.ProfilePictureKey)
	if err != nil {
		logger.Log.Warn("Failed to check profile picture", "error", err)
	}
	u.hasPicture = blob != nil
	return u
}

// ============================================================================
// State
// ============================================================================

func (u *wizardUsecase) State(ctx context.Context) domain.WizardState {
	u.mu.Lock()
	defer u.mu.Unlock()

	state := domain.WizardState{
		FormID:            u.cfg.FormID,
		CurrentStep:       u.currentStep,
		CompletedSteps:    u.completedIndexesLocked(),
		Record:            u.record.Clone(),
		Submitted:         u.submitted,
		SubmissionID:      u.submissionID,
		HasProfilePicture: u.hasPicture,
		Derived:           u.deriveLocked(ctx),
		Autosave:          u.autosave.Status(),
	}
	if step, ok := domain.StepAt(u.currentStep); ok {
		state.CurrentStepName = step
	}
	for i, step := range domain.Steps() {
		state.Steps = append(state.Steps, domain.StepStatus{
			Index:     i,
			Name:      step,
			Title:     step.Title(),
			Completed: u.completed[i],
			Current:   i == u.currentStep,
		})
	}
	return state
}

func (u *wizardUsecase) completedIndexesLocked() []int {
	out := make([]int, 0, len(u.completed))
	for i, done := range u.completed {
		if done {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// deriveLocked recomputes age gates and department catalogs from the live record
func (u *wizardUsecase) deriveLocked(ctx context.Context) domain.DerivedValues {
	derived := domain.DerivedValues{
		SkillCatalog: []string{},
		Managers:     []domain.Manager{},
	}

	if u.record.PersonalInfo != nil {
		if age, ok := validation.AgeFromString(u.record.PersonalInfo.DateOfBirth, u.clock.Now()); ok {
			derived.Age = &age
			derived.IsMinor21 = age < domain.GuardianAgeThreshold
			derived.RequiresGuardian = derived.IsMinor21
		}
	}

	jd := u.record.JobDetails
	if jd == nil {
		derived.CompensationHint = "Salary expectation"
		return derived
	}

	if jd.Department.IsValid() {
		if skills, err := u.directory.SkillCatalog(ctx, jd.Department); err == nil {
			derived.SkillCatalog = skills
		} else {
			logger.Log.Warn("Skill catalog lookup failed", "department", jd.Department, "error", err)
		}
		if managers, err := u.directory.Managers(ctx, jd.Department); err == nil {
			derived.Managers = managers
			derived.ManagerName = managerName(managers, jd.ManagerID)
		} else {
			logger.Log.Warn("Manager lookup failed", "department", jd.Department, "error", err)
		}
	}

	if jd.JobType.IsValid() {
		derived.CompensationLabel = jd.JobType.CompensationLabel()
		bounds := jd.JobType.CompensationRange()
		derived.CompensationHint = fmt.Sprintf("%s (%s - %s)", compensationNoun(jd.JobType),
			format.Currency(bounds.Min), format.Currency(bounds.Max))
		if jd.SalaryExpectation != 0 {
			derived.Compensation = format.Compensation(jd.SalaryExpectation, jd.JobType.IsHourly())
		}
	} else {
		derived.CompensationHint = "Salary expectation"
	}
	return derived
}

func compensationNoun(jobType domain.JobType) string {
	if jobType.IsHourly() {
		return "Hourly rate"
	}
	return "Annual salary"
}

// managerName falls back to the raw id when the manager is unknown
func managerName(managers []domain.Manager, id string) string {
	for _, m := range managers {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}

// ============================================================================
// Validation and step transitions
// ============================================================================

// Validate checks a step payload against the live record without changing
// any state
func (u *wizardUsecase) Validate(ctx context.Context, step domain.StepName, payload json.RawMessage) domain.ValidationResult {
	u.mu.Lock()
	vctx := u.contextForLocked(step)
	u.mu.Unlock()
	return u.schema.Validate(ctx, step, payload, vctx)
}

func (u *wizardUsecase) contextForLocked(step domain.StepName) domain.ValidationContext {
	vctx := recordContext(u.record)
	vctx.EnforceGuardian = step == domain.StepEmergencyContact
	return vctx
}

func (u *wizardUsecase) SubmitStep(ctx context.Context, index int, payload json.RawMessage) (domain.ValidationResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.submitted {
		return domain.ValidationResult{}, apperror.Conflict("Onboarding has already been submitted", domain.ErrAlreadySubmitted)
	}
	step, ok := domain.StepAt(index)
	if !ok {
		return domain.ValidationResult{}, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("Step index must be between 0 and %d", domain.StepCount-1), domain.ErrStepOutOfRange)
	}
	for i := 0; i < index; i++ {
		prev, _ := domain.StepAt(i)
		if !u.record.Has(prev) {
			return domain.ValidationResult{}, apperror.Conflict(
				fmt.Sprintf("Complete %s before %s", prev.Title(), step.Title()), domain.ErrStepLocked)
		}
	}

	result := u.schema.Validate(ctx, step, payload, u.contextForLocked(step))
	if !result.Valid() {
		return result, nil
	}

	if err := u.record.Set(step, result.Payload); err != nil {
		return domain.ValidationResult{}, apperror.Internal(err)
	}
	u.completed[index] = true
	// the review step stays current until final submission
	u.currentStep = index + 1
	if u.currentStep > domain.StepCount-1 {
		u.currentStep = domain.StepCount - 1
	}

	switch step {
	case domain.StepJobDetails:
		u.revalidateLocked(ctx, domain.StepSkills)
	case domain.StepPersonalInfo:
		u.revalidateLocked(ctx, domain.StepEmergencyContact)
	}

	u.autosave.Update(u.record)
	u.audit.Log(ctx, audit.Event{
		Event:   audit.EventStepCompleted,
		FormID:  u.cfg.FormID,
		Details: map[string]interface{}{"step": string(step), "index": index},
	})
	return result, nil
}

// revalidateLocked re-checks a stored dependent step against the updated
// record. Failing steps lose their completion mark but keep their data. Only
// steps invalidated this way get their mark back once they pass again.
func (u *wizardUsecase) revalidateLocked(ctx context.Context, dependent domain.StepName) {
	if !u.record.Has(dependent) {
		return
	}
	vctx := recordContext(u.record)
	vctx.EnforceGuardian = dependent == domain.StepEmergencyContact

	res := u.schema.ValidatePayload(ctx, dependent, stepPayload(u.record, dependent), vctx)
	idx := dependent.Index()
	if res.Valid() {
		if u.invalidated[idx] {
			u.completed[idx] = true
			delete(u.invalidated, idx)
		}
		return
	}
	if !u.completed[idx] {
		return
	}
	u.audit.Log(ctx, audit.Event{
		Event:  audit.EventStepInvalidated,
		FormID: u.cfg.FormID,
		Details: map[string]interface{}{
			"step":   string(dependent),
			"errors": len(res.Errors),
		},
	})
	delete(u.completed, idx)
	u.invalidated[idx] = true
}

func (u *wizardUsecase) Back(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.submitted {
		return apperror.Conflict("Onboarding has already been submitted", domain.ErrAlreadySubmitted)
	}
	if u.currentStep > 0 {
		u.currentStep--
	}
	return nil
}

// ============================================================================
// Final submission
// ============================================================================

func (u *wizardUsecase) FinalSubmit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.submitted {
		return apperror.Conflict("Onboarding has already been submitted", domain.ErrAlreadySubmitted)
	}
	if u.currentStep != domain.StepCount-1 {
		return apperror.Conflict("Final submission is only possible from the review step", domain.ErrNotOnReviewStep)
	}

	var missing []string
	for i, step := range domain.Steps() {
		if !u.completed[i] {
			missing = append(missing, string(step))
		}
	}
	if len(missing) > 0 {
		return apperror.Conflict("All steps must be completed before submitting", domain.ErrIncompleteRecord).
			WithDetails(map[string]interface{}{"missingSteps": missing})
	}

	if errs := u.schema.ValidateRecord(ctx, u.record); len(errs) > 0 {
		return apperror.Conflict("Onboarding record failed validation", domain.ErrIncompleteRecord).
			WithDetails(errs)
	}

	if !u.autosave.MarkAsSaved(ctx) {
		logger.Log.Warn("Final save failed, continuing with submission", "form_id", u.cfg.FormID)
	}

	derived := u.deriveLocked(ctx)
	submission := domain.Submission{
		ID:           uuid.NewString(),
		FormID:       u.cfg.FormID,
		SubmittedAt:  u.clock.Now(),
		Record:       u.record.Clone(),
		ManagerName:  derived.ManagerName,
		Compensation: derived.Compensation,
	}

	if err := u.submitter.Submit(ctx, submission); err != nil {
		u.audit.Log(ctx, audit.Event{
			Event:   audit.EventSubmissionFailed,
			FormID:  u.cfg.FormID,
			Details: map[string]interface{}{"error": err.Error()},
		})
		return apperror.New(http.StatusInternalServerError, "Failed to submit onboarding, please try again", err)
	}

	u.submitted = true
	u.submissionID = submission.ID
	u.audit.Log(ctx, audit.Event{
		Event:   audit.EventSubmissionCompleted,
		FormID:  u.cfg.FormID,
		Subject: audit.MaskEmail(u.record.PersonalInfo.Email),
		Details: map[string]interface{}{"submission_id": submission.ID},
	})

	u.cleanup = u.clock.AfterFunc(u.cfg.CleanupGraceDelay, u.removeArtifacts)
	return nil
}

// removeArtifacts deletes the snapshot and the profile picture concurrently
// and drops the in-memory record. The submission id stays for the terminal
// screen.
func (u *wizardUsecase) removeArtifacts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	u.removeArtifactsContext(ctx)
}

func (u *wizardUsecase) removeArtifactsContext(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		u.autosave.Clear(ctx)
		return nil
	})
	g.Go(func() error {
		return u.blobs.Remove(ctx, domain.ProfilePictureKey)
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error("Failed to remove profile picture after submission", "error", err)
	}

	u.mu.Lock()
	u.record = domain.OnboardingRecord{}
	u.completed = make(map[int]bool)
	u.invalidated = make(map[int]bool)
	u.hasPicture = false
	u.cleanup = nil
	u.mu.Unlock()
}

// FlushCleanup runs a pending post-submission cleanup now instead of waiting
// for the grace delay. It reports whether a cleanup was pending.
func (u *wizardUsecase) FlushCleanup(ctx context.Context) bool {
	u.mu.Lock()
	pending := u.cleanup != nil && u.cleanup.Stop()
	u.mu.Unlock()
	if !pending {
		return false
	}
	u.removeArtifactsContext(ctx)
	return true
}

// Clear resets the wizard to its initial state and deletes persisted data
func (u *wizardUsecase) Clear(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cleanup != nil {
		u.cleanup.Stop()
		u.cleanup = nil
	}
	u.autosave.Clear(ctx)
	if err := u.blobs.Remove(ctx, domain.ProfilePictureKey); err != nil {
		logger.Log.Error("Failed to remove profile picture", "error", err)
	}

	u.currentStep = 0
	u.completed = make(map[int]bool)
	u.invalidated = make(map[int]bool)
	u.record = domain.OnboardingRecord{}
	u.submitted = false
	u.submissionID = ""
	u.hasPicture = false

	u.audit.Log(ctx, audit.Event{Event: audit.EventFormCleared, FormID: u.cfg.FormID})
	return nil
}

func (u *wizardUsecase) MarkAsSaved(ctx context.Context) bool {
	return u.autosave.MarkAsSaved(ctx)
}

// ============================================================================
// Profile picture
// ============================================================================

func (u *wizardUsecase) SaveProfilePicture(ctx context.Context, filename string, data []byte) error {
	u.mu.Lock()
	submitted := u.submitted
	u.mu.Unlock()
	if submitted {
		return apperror.Conflict("Onboarding has already been submitted", domain.ErrAlreadySubmitted)
	}

	img, err := imaging.Prepare(filename, data)
	if err != nil {
		u.audit.Log(ctx, audit.Event{
			Event:   audit.EventUploadRejected,
			FormID:  u.cfg.FormID,
			Details: map[string]interface{}{"reason": err.Error(), "size": len(data)},
		})
		return apperror.New(http.StatusBadRequest, err.Error(), fmt.Errorf("%w: %v", domain.ErrProfilePictureBad, err))
	}

	err = u.blobs.Save(ctx, domain.ProfilePictureKey, domain.Blob{
		Data:        img.Data,
		ContentType: img.ContentType,
		Filename:    img.Filename,
		Size:        len(img.Data),
		UpdatedAt:   u.clock.Now(),
	})
	if err != nil {
		logger.Log.Error("Failed to store profile picture", "error", err)
		return apperror.New(http.StatusServiceUnavailable, "Profile picture storage is unavailable", err)
	}

	u.mu.Lock()
	u.hasPicture = true
	u.mu.Unlock()
	return nil
}

func (u *wizardUsecase) ProfilePicture(ctx context.Context) (*domain.Blob, error) {
	blob, err := u.blobs.Load(ctx, domain.ProfilePictureKey)
	if err != nil {
		logger.Log.Error("Failed to load profile picture", "error", err)
		return nil, apperror.New(http.StatusServiceUnavailable, "Profile picture storage is unavailable", err)
	}
	if blob == nil {
		return nil, apperror.NotFound("No profile picture uploaded")
	}
	return blob, nil
}

func (u *wizardUsecase) RemoveProfilePicture(ctx context.Context) error {
	if err := u.blobs.Remove(ctx, domain.ProfilePictureKey); err != nil {
		logger.Log.Error("Failed to remove profile picture", "error", err)
	}
	u.mu.Lock()
	u.hasPicture = false
	u.mu.Unlock()
	return nil
}

// ============================================================================
// Lifecycle passthrough
// ============================================================================

func (u *wizardUsecase) OnIdleTick(ctx context.Context) { u.autosave.OnIdleTick(ctx) }

func (u *wizardUsecase) OnSuspend(ctx context.Context) { u.autosave.OnSuspend(ctx) }

func (u *wizardUsecase) OnResume(ctx context.Context) { u.autosave.OnResume(ctx) }

func (u *wizardUsecase) OnUnload(ctx context.Context) string { return u.autosave.OnUnload(ctx) }

func (u *wizardUsecase) StorageUsage(ctx context.Context) domain.StorageUsage {
	return u.store.Usage(ctx)
}

func (u *wizardUsecase) Directory() domain.DirectoryRepository {
	return u.directory
}
