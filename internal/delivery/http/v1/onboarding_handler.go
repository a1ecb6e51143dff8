package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go-onboarding-wizard/internal/delivery/http/response"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxStepPayloadBytes bounds a single step submission
const maxStepPayloadBytes = 64 << 10

// LifecycleResponse carries the leave warning for unload events
type LifecycleResponse struct {
	Warning string `json:"warning,omitempty"`
}

// SaveResponse reports the outcome of an explicit save
type SaveResponse struct {
	Saved    bool                  `json:"saved"`
	Autosave domain.AutosaveStatus `json:"autosave"`
}

type OnboardingHandler struct {
	wizard domain.WizardUsecase
}

func NewOnboardingHandler(r *gin.RouterGroup, wizard domain.WizardUsecase) {
	handler := &OnboardingHandler{wizard: wizard}

	onboarding := r.Group("/onboarding")
	{
		onboarding.GET("", handler.GetState)
		onboarding.DELETE("", handler.Clear)
		onboarding.POST("/validate/:step", handler.Validate)
		onboarding.POST("/steps/:index", handler.SubmitStep)
		onboarding.POST("/back", handler.Back)
		onboarding.POST("/submit", handler.FinalSubmit)
		onboarding.POST("/save", handler.Save)
		onboarding.POST("/lifecycle/:event", handler.Lifecycle)
		onboarding.GET("/storage", handler.StorageUsage)
	}
}

// GetState godoc
// @Summary      Get wizard state
// @Description  Current step, completed steps, record, derived values and autosave status
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Router       /onboarding [get]
func (h *OnboardingHandler) GetState(c *gin.Context) {
	response.Success(c, http.StatusOK, "Onboarding state retrieved", h.wizard.State(c.Request.Context()))
}

// Validate godoc
// @Summary      Validate a step payload
// @Description  Runs every rule for the step against the live record without changing state
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        step     path      string  true  "Step name"  Enums(personalInfo, jobDetails, skills, emergencyContact, review)
// @Param        request  body      object  true  "Step payload"
// @Success      200      {object}  response.Response{data=domain.ValidationResult}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response{error=validation.FieldErrors}
// @Router       /onboarding/validate/{step} [post]
func (h *OnboardingHandler) Validate(c *gin.Context) {
	step := domain.StepName(c.Param("step"))
	if !step.IsValid() {
		c.Error(apperror.New(http.StatusBadRequest, "Unknown step", domain.ErrUnknownStep))
		return
	}

	payload, err := readPayload(c)
	if err != nil {
		c.Error(err)
		return
	}

	result := h.wizard.Validate(c.Request.Context(), step, payload)
	if !result.Valid() {
		c.Error(apperror.Unprocessable("Validation failed", result.Errors))
		return
	}
	response.Success(c, http.StatusOK, "Step is valid", result)
}

// SubmitStep godoc
// @Summary      Submit a step
// @Description  Validates the payload, stores it in the record and advances the wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        index    path      int     true  "Step index (0-4)"
// @Param        request  body      object  true  "Step payload"
// @Success      200      {object}  response.Response{data=domain.WizardState}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response{error=validation.FieldErrors}
// @Router       /onboarding/steps/{index} [post]
func (h *OnboardingHandler) SubmitStep(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Step index must be a number", domain.ErrStepOutOfRange))
		return
	}

	payload, err := readPayload(c)
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.wizard.SubmitStep(ctx, index, payload)
	if err != nil {
		c.Error(err)
		return
	}
	if !result.Valid() {
		c.Error(apperror.Unprocessable("Validation failed", result.Errors))
		return
	}
	response.Success(c, http.StatusOK, "Step saved", h.wizard.State(ctx))
}

// Back godoc
// @Summary      Go back one step
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Failure      409  {object}  response.Response
// @Router       /onboarding/back [post]
func (h *OnboardingHandler) Back(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.wizard.Back(ctx); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Moved to previous step", h.wizard.State(ctx))
}

// FinalSubmit godoc
// @Summary      Submit the onboarding
// @Description  Re-validates the whole record and hands it to the submission sinks
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Failure      409  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /onboarding/submit [post]
func (h *OnboardingHandler) FinalSubmit(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.wizard.FinalSubmit(ctx); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding submitted successfully", h.wizard.State(ctx))
}

// Clear godoc
// @Summary      Clear saved data
// @Description  Deletes the snapshot and the profile picture and restarts the wizard
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Router       /onboarding [delete]
func (h *OnboardingHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.wizard.Clear(ctx); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Saved data cleared", h.wizard.State(ctx))
}

// Save godoc
// @Summary      Save now
// @Description  Flushes the record to storage immediately
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=SaveResponse}
// @Router       /onboarding/save [post]
func (h *OnboardingHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()
	saved := h.wizard.MarkAsSaved(ctx)
	msg := "Progress saved"
	if !saved {
		msg = "Storage is unavailable, progress is kept in memory only"
	}
	response.Success(c, http.StatusOK, msg, SaveResponse{Saved: saved, Autosave: h.wizard.State(ctx).Autosave})
}

// Lifecycle godoc
// @Summary      Report a client lifecycle event
// @Description  tick runs the idle save, suspend/resume pause the interval, unload flushes and returns the leave warning
// @Tags         onboarding
// @Produce      json
// @Param        event  path      string  true  "Lifecycle event"  Enums(tick, suspend, resume, unload)
// @Success      200    {object}  response.Response{data=LifecycleResponse}
// @Failure      400    {object}  response.Response
// @Router       /onboarding/lifecycle/{event} [post]
func (h *OnboardingHandler) Lifecycle(c *gin.Context) {
	ctx := c.Request.Context()
	var out LifecycleResponse

	switch c.Param("event") {
	case "tick":
		h.wizard.OnIdleTick(ctx)
	case "suspend":
		h.wizard.OnSuspend(ctx)
	case "resume":
		h.wizard.OnResume(ctx)
	case "unload":
		out.Warning = h.wizard.OnUnload(ctx)
	default:
		c.Error(apperror.BadRequest("Unknown lifecycle event"))
		return
	}
	response.Success(c, http.StatusOK, "Lifecycle event handled", out)
}

// StorageUsage godoc
// @Summary      Storage usage
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.StorageUsage}
// @Router       /onboarding/storage [get]
func (h *OnboardingHandler) StorageUsage(c *gin.Context) {
	response.Success(c, http.StatusOK, "Storage usage retrieved", h.wizard.StorageUsage(c.Request.Context()))
}

func readPayload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxStepPayloadBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.New(http.StatusRequestEntityTooLarge, "Payload too large", err)
		}
		return nil, apperror.BadRequest("Failed to read request body")
	}
	return payload, nil
}
