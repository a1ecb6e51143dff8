package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-onboarding-wizard/pkg/validation"
)

var (
	ErrStepOutOfRange    = errors.New("step index out of range")
	ErrStepLocked        = errors.New("previous steps are not complete")
	ErrAlreadySubmitted  = errors.New("onboarding already submitted")
	ErrIncompleteRecord  = errors.New("onboarding record is incomplete")
	ErrNotOnReviewStep   = errors.New("final submission is only possible from the review step")
	ErrUnknownStep       = errors.New("unknown onboarding step")
	ErrProfilePictureBad = errors.New("profile picture rejected")
)

// ============================================================================
// Steps
// ============================================================================

// StepName is the record key of a wizard step
type StepName string

const (
	StepPersonalInfo     StepName = "personalInfo"
	StepJobDetails       StepName = "jobDetails"
	StepSkills           StepName = "skills"
	StepEmergencyContact StepName = "emergencyContact"
	StepReview           StepName = "review"
)

// StepCount is the number of wizard steps; the last index is the review step.
const StepCount = 5

// Steps returns all steps in wizard order
func Steps() []StepName {
	return []StepName{StepPersonalInfo, StepJobDetails, StepSkills, StepEmergencyContact, StepReview}
}

var stepTitles = map[StepName]string{
	StepPersonalInfo:     "Personal Info",
	StepJobDetails:       "Job Details",
	StepSkills:           "Skills & Preferences",
	StepEmergencyContact: "Emergency Contact",
	StepReview:           "Review & Submit",
}

// StepAt returns the step at index, or false if index is out of range
func StepAt(index int) (StepName, bool) {
	if index < 0 || index >= StepCount {
		return "", false
	}
	return Steps()[index], true
}

// Index returns the position of the step, or -1 for unknown steps
func (s StepName) Index() int {
	for i, step := range Steps() {
		if s == step {
			return i
		}
	}
	return -1
}

// IsValid checks if the step name is one of the wizard steps
func (s StepName) IsValid() bool {
	return s.Index() >= 0
}

// Title is the display name used by progress indicators
func (s StepName) Title() string {
	return stepTitles[s]
}

// ============================================================================
// Step payloads
// ============================================================================

// PersonalInfo is step 0. The profile picture lives in the blob store under
// ProfilePictureKey and is never part of this payload.
type PersonalInfo struct {
	FullName    string `json:"fullName" validate:"required,full_name"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,us_phone"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,iso_date,min_age=18"`
}

// JobDetails is step 1. SalaryExpectation is annual for salaried job types
// and hourly for contracts; the unit is derived from JobType.
type JobDetails struct {
	Department        Department `json:"department" validate:"required,department"`
	PositionTitle     string     `json:"positionTitle" validate:"required,min=3"`
	StartDate         string     `json:"startDate" validate:"required,iso_date,start_window=90"`
	JobType           JobType    `json:"jobType" validate:"required,job_type"`
	SalaryExpectation float64    `json:"salaryExpectation" validate:"required"`
	ManagerID         string     `json:"managerId" validate:"required"`
}

// Skills is step 2
type Skills struct {
	PrimarySkills        []string           `json:"primarySkills" validate:"required,min=3,unique,dive,required"`
	SkillExperience      map[string]float64 `json:"skillExperience" validate:"dive,keys,required,endkeys,gte=0,lte=20"`
	WorkingHoursStart    string             `json:"workingHoursStart" validate:"required,clock_time"`
	WorkingHoursEnd      string             `json:"workingHoursEnd" validate:"required,clock_time"`
	RemoteWorkPreference int                `json:"remoteWorkPreference" validate:"gte=0,lte=100,multiple_of=10"`
	ManagerApproved      *bool              `json:"managerApproved,omitempty"`
	ExtraNotes           string             `json:"extraNotes,omitempty" validate:"max=500"`
}

// EmergencyContact is step 3. Guardian fields are both-or-neither, and
// required for applicants under GuardianAgeThreshold.
type EmergencyContact struct {
	ContactName   string       `json:"contactName" validate:"required"`
	Relationship  Relationship `json:"relationship" validate:"required,relationship"`
	PhoneNumber   string       `json:"phoneNumber" validate:"required,us_phone"`
	GuardianName  string       `json:"guardianName,omitempty"`
	GuardianPhone string       `json:"guardianPhone,omitempty" validate:"omitempty,us_phone"`
}

// HasGuardian reports whether both guardian fields are filled
func (e EmergencyContact) HasGuardian() bool {
	return e.GuardianName != "" && e.GuardianPhone != ""
}

// Review is step 4
type Review struct {
	ConfirmationChecked bool `json:"confirmationChecked" validate:"eq=true"`
}

const (
	// MinimumApplicantAge gates personal info submission
	MinimumApplicantAge = 18
	// GuardianAgeThreshold is the age below which a guardian is required
	GuardianAgeThreshold = 21
	// StartDateWindowDays bounds how far ahead a start date may be
	StartDateWindowDays = 90
	// ProfilePictureKey is the blob store key for the applicant's photo
	ProfilePictureKey = "profilePicture"
)

// ============================================================================
// Aggregate record
// ============================================================================

// OnboardingRecord accumulates validated step payloads. A nil step has not
// been submitted.
type OnboardingRecord struct {
	PersonalInfo     *PersonalInfo     `json:"personalInfo,omitempty"`
	JobDetails       *JobDetails       `json:"jobDetails,omitempty"`
	Skills           *Skills           `json:"skills,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Review           *Review           `json:"review,omitempty"`
}

// IsEmpty reports whether no step has been stored
func (r OnboardingRecord) IsEmpty() bool {
	return r.PersonalInfo == nil && r.JobDetails == nil && r.Skills == nil &&
		r.EmergencyContact == nil && r.Review == nil
}

// Has reports whether the payload for step is present
func (r OnboardingRecord) Has(step StepName) bool {
	switch step {
	case StepPersonalInfo:
		return r.PersonalInfo != nil
	case StepJobDetails:
		return r.JobDetails != nil
	case StepSkills:
		return r.Skills != nil
	case StepEmergencyContact:
		return r.EmergencyContact != nil
	case StepReview:
		return r.Review != nil
	}
	return false
}

// IsComplete reports whether every step payload is present
func (r OnboardingRecord) IsComplete() bool {
	for _, step := range Steps() {
		if !r.Has(step) {
			return false
		}
	}
	return true
}

// Set stores payload under its step key, replacing any previous value.
// payload must be the step's struct type (value or pointer).
func (r *OnboardingRecord) Set(step StepName, payload any) error {
	switch step {
	case StepPersonalInfo:
		v, ok := asPointer[PersonalInfo](payload)
		if !ok {
			return ErrUnknownStep
		}
		r.PersonalInfo = v
	case StepJobDetails:
		v, ok := asPointer[JobDetails](payload)
		if !ok {
			return ErrUnknownStep
		}
		r.JobDetails = v
	case StepSkills:
		v, ok := asPointer[Skills](payload)
		if !ok {
			return ErrUnknownStep
		}
		r.Skills = v.Clone()
	case StepEmergencyContact:
		v, ok := asPointer[EmergencyContact](payload)
		if !ok {
			return ErrUnknownStep
		}
		r.EmergencyContact = v
	case StepReview:
		v, ok := asPointer[Review](payload)
		if !ok {
			return ErrUnknownStep
		}
		r.Review = v
	default:
		return ErrUnknownStep
	}
	return nil
}

func asPointer[T any](payload any) (*T, bool) {
	switch v := payload.(type) {
	case T:
		return &v, true
	case *T:
		if v == nil {
			return nil, false
		}
		c := *v
		return &c, true
	}
	return nil, false
}

// Clone returns a copy that shares no mutable state with r
func (r OnboardingRecord) Clone() OnboardingRecord {
	out := OnboardingRecord{}
	if r.PersonalInfo != nil {
		v := *r.PersonalInfo
		out.PersonalInfo = &v
	}
	if r.JobDetails != nil {
		v := *r.JobDetails
		out.JobDetails = &v
	}
	out.Skills = r.Skills.Clone()
	if r.EmergencyContact != nil {
		v := *r.EmergencyContact
		out.EmergencyContact = &v
	}
	if r.Review != nil {
		v := *r.Review
		out.Review = &v
	}
	return out
}

// Clone deep-copies the skills payload; nil stays nil
func (s *Skills) Clone() *Skills {
	if s == nil {
		return nil
	}
	c := *s
	c.PrimarySkills = append([]string(nil), s.PrimarySkills...)
	if s.SkillExperience != nil {
		c.SkillExperience = make(map[string]float64, len(s.SkillExperience))
		for k, v := range s.SkillExperience {
			c.SkillExperience[k] = v
		}
	}
	if s.ManagerApproved != nil {
		b := *s.ManagerApproved
		c.ManagerApproved = &b
	}
	return &c
}

// ============================================================================
// Validation results
// ============================================================================

// ValidationContext carries the cross-step facts a step's rules depend on
type ValidationContext struct {
	// Department selected in job details; scopes the skill catalog
	Department Department
	// DateOfBirth from personal info; drives the guardian gate
	DateOfBirth string
	// EnforceGuardian applies the under-21 guardian requirement to
	// emergency contact validation
	EnforceGuardian bool
}

// ValidationResult is either a typed payload (Valid) or a list of field errors
type ValidationResult struct {
	Step    StepName               `json:"step"`
	Payload any                    `json:"payload,omitempty"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
}

// Valid reports whether the payload passed every rule
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0 && r.Payload != nil
}

// ============================================================================
// Wizard state
// ============================================================================

// DerivedValues are recomputed from the record on every read
type DerivedValues struct {
	Age               *int      `json:"age,omitempty"`
	IsMinor21         bool      `json:"isMinor21"`
	RequiresGuardian  bool      `json:"requiresGuardian"`
	SkillCatalog      []string  `json:"skillCatalog"`
	Managers          []Manager `json:"managers"`
	CompensationLabel string    `json:"compensationLabel,omitempty"`
	CompensationHint  string    `json:"compensationHint,omitempty"`
	Compensation      string    `json:"compensation,omitempty"`
	ManagerName       string    `json:"managerName,omitempty"`
}

// StepStatus describes one step for progress display
type StepStatus struct {
	Index     int      `json:"index"`
	Name      StepName `json:"name"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Current   bool     `json:"current"`
}

// AutosaveStatus is the persistence state surfaced to the user
type AutosaveStatus struct {
	HasUnsavedChanges bool       `json:"hasUnsavedChanges"`
	StorageAvailable  bool       `json:"storageAvailable"`
	LastSaved         *time.Time `json:"lastSaved,omitempty"`
}

// WizardState is a read-only snapshot of the controller
type WizardState struct {
	FormID            string           `json:"formId"`
	CurrentStep       int              `json:"currentStep"`
	CurrentStepName   StepName         `json:"currentStepName"`
	CompletedSteps    []int            `json:"completedSteps"`
	Steps             []StepStatus     `json:"steps"`
	Record            OnboardingRecord `json:"record"`
	Submitted         bool             `json:"submitted"`
	SubmissionID      string           `json:"submissionId,omitempty"`
	HasProfilePicture bool             `json:"hasProfilePicture"`
	Derived           DerivedValues    `json:"derived"`
	Autosave          AutosaveStatus   `json:"autosave"`
}

// ============================================================================
// Usecase Interfaces
// ============================================================================

// SchemaUsecase validates step payloads without touching wizard state
type SchemaUsecase interface {
	Validate(ctx context.Context, step StepName, payload json.RawMessage, vctx ValidationContext) ValidationResult
	ValidatePayload(ctx context.Context, step StepName, payload any, vctx ValidationContext) ValidationResult
	ValidateRecord(ctx context.Context, record OnboardingRecord) validation.FieldErrors
}

// AutosaveUsecase keeps the in-memory record and flushes it to the form
// store on a debounce, an interval and explicit lifecycle events
type AutosaveUsecase interface {
	Hydrate(ctx context.Context) OnboardingRecord
	Update(record OnboardingRecord)
	MarkAsSaved(ctx context.Context) bool
	OnIdleTick(ctx context.Context)
	OnSuspend(ctx context.Context)
	OnResume(ctx context.Context)
	OnUnload(ctx context.Context) string
	Clear(ctx context.Context)
	Start()
	Stop()
	Status() AutosaveStatus
}

// UnloadWarning is returned by OnUnload when unsaved changes were flushed
const UnloadWarning = "You have unsaved changes. Are you sure you want to leave?"

// WizardUsecase drives the onboarding step machine
type WizardUsecase interface {
	State(ctx context.Context) WizardState
	Validate(ctx context.Context, step StepName, payload json.RawMessage) ValidationResult
	SubmitStep(ctx context.Context, index int, payload json.RawMessage) (ValidationResult, error)
	Back(ctx context.Context) error
	FinalSubmit(ctx context.Context) error
	FlushCleanup(ctx context.Context) bool
	Clear(ctx context.Context) error
	MarkAsSaved(ctx context.Context) bool

	SaveProfilePicture(ctx context.Context, filename string, data []byte) error
	ProfilePicture(ctx context.Context) (*Blob, error)
	RemoveProfilePicture(ctx context.Context) error

	OnIdleTick(ctx context.Context)
	OnSuspend(ctx context.Context)
	OnResume(ctx context.Context)
	OnUnload(ctx context.Context) string

	StorageUsage(ctx context.Context) StorageUsage
	Directory() DirectoryRepository
}
