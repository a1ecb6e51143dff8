package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/clock"
	"go-onboarding-wizard/pkg/format"
	"go-onboarding-wizard/pkg/logger"
	"go-onboarding-wizard/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the generic custom rules and the
// onboarding enum tags registered
func NewValidator(clk clock.Clock) *validator.Validate {
	v := validation.New(clk.Now)
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return domain.Department(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("job_type", func(fl validator.FieldLevel) bool {
		return domain.JobType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("relationship", func(fl validator.FieldLevel) bool {
		return domain.Relationship(fl.Field().String()).IsValid()
	})
	return v
}

type schemaUsecase struct {
	validate  *validator.Validate
	directory domain.DirectoryRepository
	clock     clock.Clock
}

func NewSchemaUsecase(validate *validator.Validate, directory domain.DirectoryRepository, clk clock.Clock) domain.SchemaUsecase {
	return &schemaUsecase{
		validate:  validate,
		directory: directory,
		clock:     clk,
	}
}

// Validate decodes payload into the step's struct and runs every rule.
// Decoding failures short-circuit; otherwise struct rules and refinements
// are reported together.
func (u *schemaUsecase) Validate(ctx context.Context, step domain.StepName, payload json.RawMessage, vctx domain.ValidationContext) domain.ValidationResult {
	result := domain.ValidationResult{Step: step}

	target, err := newStepPayload(step)
	if err != nil {
		result.Errors = validation.FieldErrors{{Field: validation.RootField, Message: "Unknown step"}}
		return result
	}

	if len(payload) == 0 {
		result.Errors = validation.FieldErrors{{Field: validation.RootField, Message: "Malformed JSON payload"}}
		return result
	}
	if err := json.Unmarshal(payload, target); err != nil {
		result.Errors = validation.FormatDecodeError(err)
		return result
	}

	return u.ValidatePayload(ctx, step, target, vctx)
}

// ValidatePayload runs the rules on an already typed step payload (value
// or pointer). The payload in a valid result is a normalized copy.
func (u *schemaUsecase) ValidatePayload(ctx context.Context, step domain.StepName, payload any, vctx domain.ValidationContext) domain.ValidationResult {
	result := domain.ValidationResult{Step: step}

	if !step.IsValid() {
		result.Errors = validation.FieldErrors{{Field: validation.RootField, Message: "Unknown step"}}
		return result
	}
	// Set copies the payload so normalization never touches the caller's value
	var rec domain.OnboardingRecord
	if err := rec.Set(step, payload); err != nil {
		result.Errors = validation.FieldErrors{{Field: validation.RootField, Message: "Payload does not match step"}}
		return result
	}
	target := stepPayload(rec, step)
	normalize(target)

	// Phase (a): declarative field constraints
	var errs validation.FieldErrors
	if err := u.validate.Struct(target); err != nil {
		errs = append(errs, validation.FormatValidationErrors(err)...)
	}

	// Phase (b): cross-field refinements
	errs = append(errs, u.refine(ctx, target, vctx)...)

	if len(errs) > 0 {
		result.Errors = errs
		return result
	}
	result.Payload = target
	return result
}

// ValidateRecord re-validates every step of a finished record with the full
// cross-step context, guardian gate included. Field paths are prefixed
// with the step key.
func (u *schemaUsecase) ValidateRecord(ctx context.Context, record domain.OnboardingRecord) validation.FieldErrors {
	vctx := recordContext(record)
	vctx.EnforceGuardian = true

	var errs validation.FieldErrors
	for _, step := range domain.Steps() {
		if !record.Has(step) {
			errs.Add(string(step), fmt.Sprintf("%s has not been completed", step.Title()))
			continue
		}
		res := u.ValidatePayload(ctx, step, stepPayload(record, step), vctx)
		for _, e := range res.Errors {
			errs.Add(string(step)+"."+e.Field, e.Message)
		}
	}
	return errs
}

// recordContext derives the cross-step facts from the record
func recordContext(record domain.OnboardingRecord) domain.ValidationContext {
	var vctx domain.ValidationContext
	if record.JobDetails != nil {
		vctx.Department = record.JobDetails.Department
	}
	if record.PersonalInfo != nil {
		vctx.DateOfBirth = record.PersonalInfo.DateOfBirth
	}
	return vctx
}

func newStepPayload(step domain.StepName) (any, error) {
	switch step {
	case domain.StepPersonalInfo:
		return &domain.PersonalInfo{}, nil
	case domain.StepJobDetails:
		return &domain.JobDetails{}, nil
	case domain.StepSkills:
		return &domain.Skills{}, nil
	case domain.StepEmergencyContact:
		return &domain.EmergencyContact{}, nil
	case domain.StepReview:
		return &domain.Review{}, nil
	}
	return nil, domain.ErrUnknownStep
}

// stepPayload returns the record's pointer for step, or nil
func stepPayload(record domain.OnboardingRecord, step domain.StepName) any {
	switch step {
	case domain.StepPersonalInfo:
		return record.PersonalInfo
	case domain.StepJobDetails:
		return record.JobDetails
	case domain.StepSkills:
		return record.Skills
	case domain.StepEmergencyContact:
		return record.EmergencyContact
	case domain.StepReview:
		return record.Review
	}
	return nil
}

// normalize trims free-text input before validation
func normalize(payload any) {
	switch p := payload.(type) {
	case *domain.PersonalInfo:
		p.FullName = format.Name(p.FullName)
		p.Email = strings.TrimSpace(p.Email)
		p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	case *domain.JobDetails:
		p.PositionTitle = strings.TrimSpace(p.PositionTitle)
	case *domain.Skills:
		p.ExtraNotes = strings.TrimSpace(p.ExtraNotes)
	case *domain.EmergencyContact:
		p.ContactName = format.Name(p.ContactName)
		p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
		p.GuardianName = format.Name(p.GuardianName)
		p.GuardianPhone = strings.TrimSpace(p.GuardianPhone)
	}
}

// ============================================================================
// Refinements
// ============================================================================

func (u *schemaUsecase) refine(ctx context.Context, payload any, vctx domain.ValidationContext) validation.FieldErrors {
	var errs validation.FieldErrors
	switch p := payload.(type) {
	case *domain.JobDetails:
		u.refineJobDetails(ctx, p, &errs)
	case *domain.Skills:
		u.refineSkills(ctx, p, vctx, &errs)
	case *domain.EmergencyContact:
		u.refineEmergencyContact(p, vctx, &errs)
	}
	return errs
}

func (u *schemaUsecase) refineJobDetails(ctx context.Context, p *domain.JobDetails, errs *validation.FieldErrors) {
	today := validation.DateOnly(u.clock.Now())

	if p.Department.BlocksWeekendStart() {
		if date, err := validation.ParseDate(p.StartDate, today.Location()); err == nil {
			if wd := date.Weekday(); wd == time.Friday || wd == time.Saturday {
				errs.Add("startDate", "HR and Finance employees cannot start on weekends")
			}
		}
	}

	if p.JobType.IsValid() && p.SalaryExpectation != 0 {
		bounds := p.JobType.CompensationRange()
		if !bounds.Contains(p.SalaryExpectation) {
			errs.Add("salaryExpectation", fmt.Sprintf("%s must be between %s and %s",
				p.JobType.CompensationLabel(), format.Currency(bounds.Min), format.Currency(bounds.Max)))
		}
	}

	if p.Department.IsValid() && p.ManagerID != "" {
		managers, err := u.directory.Managers(ctx, p.Department)
		if err != nil {
			logger.Log.Error("Manager lookup failed", "department", p.Department, "error", err)
			errs.Add("managerId", "Unable to verify the selected manager, please try again")
			return
		}
		if !containsManager(managers, p.ManagerID) {
			errs.Add("managerId", fmt.Sprintf("Selected manager does not belong to the %s department", p.Department))
		}
	}
}

func (u *schemaUsecase) refineSkills(ctx context.Context, p *domain.Skills, vctx domain.ValidationContext, errs *validation.FieldErrors) {
	if !vctx.Department.IsValid() {
		errs.Add("primarySkills", "Select a department before choosing skills")
	} else if len(p.PrimarySkills) > 0 {
		catalog, err := u.directory.SkillCatalog(ctx, vctx.Department)
		if err != nil {
			logger.Log.Error("Skill catalog lookup failed", "department", vctx.Department, "error", err)
			errs.Add("primarySkills", "Unable to verify the selected skills, please try again")
		} else if outside := difference(p.PrimarySkills, catalog); len(outside) > 0 {
			errs.Add("primarySkills", fmt.Sprintf("Not available for %s: %s",
				vctx.Department, strings.Join(outside, ", ")))
		}
	}

	if len(p.SkillExperience) > 0 {
		keys := make([]string, 0, len(p.SkillExperience))
		for k := range p.SkillExperience {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range difference(keys, p.PrimarySkills) {
			errs.Add(fmt.Sprintf("skillExperience[%s]", k), "Experience can only be recorded for selected skills")
		}
	}

	start, okStart := validation.ParseClock(p.WorkingHoursStart)
	end, okEnd := validation.ParseClock(p.WorkingHoursEnd)
	if okStart && okEnd && end <= start {
		errs.Add("workingHoursEnd", "End time must be after start time")
	}

	if p.RemoteWorkPreference > 50 && (p.ManagerApproved == nil || !*p.ManagerApproved) {
		errs.Add("managerApproved", "Manager approval is required for remote work preference above 50%")
	}
}

func (u *schemaUsecase) refineEmergencyContact(p *domain.EmergencyContact, vctx domain.ValidationContext, errs *validation.FieldErrors) {
	hasName := p.GuardianName != ""
	hasPhone := p.GuardianPhone != ""

	switch {
	case hasName && !hasPhone:
		errs.Add("guardianPhone", "Guardian phone number is required")
	case hasPhone && !hasName:
		errs.Add("guardianName", "Guardian name is required")
	case !hasName && !hasPhone && vctx.EnforceGuardian:
		if requiresGuardian(vctx.DateOfBirth, u.clock.Now()) {
			errs.Add("guardianName", "Guardian name is required for applicants under 21")
			errs.Add("guardianPhone", "Guardian phone number is required for applicants under 21")
		}
	}
}

// requiresGuardian reports whether the applicant is younger than the
// guardian threshold. Unparseable dates never require a guardian here;
// personal info validation rejects them.
func requiresGuardian(dateOfBirth string, now time.Time) bool {
	age, ok := validation.AgeFromString(dateOfBirth, now)
	return ok && age < domain.GuardianAgeThreshold
}

func containsManager(managers []domain.Manager, id string) bool {
	for _, m := range managers {
		if m.ID == id {
			return true
		}
	}
	return false
}

// difference returns the items of values absent from allowed, in order
func difference(values, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	var out []string
	for _, v := range values {
		if _, ok := set[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
