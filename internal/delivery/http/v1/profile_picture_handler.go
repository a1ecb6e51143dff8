package v1

import (
	"io"
	"net/http"

	"go-onboarding-wizard/internal/delivery/http/response"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/apperror"
	"go-onboarding-wizard/pkg/imaging"

	"github.com/gin-gonic/gin"
)

type ProfilePictureHandler struct {
	wizard domain.WizardUsecase
}

func NewProfilePictureHandler(r *gin.RouterGroup, wizard domain.WizardUsecase) {
	handler := &ProfilePictureHandler{wizard: wizard}

	r.PUT("/onboarding/profile-picture", handler.Upload)
	r.GET("/onboarding/profile-picture", handler.Download)
	r.DELETE("/onboarding/profile-picture", handler.Remove)
}

// Upload godoc
// @Summary      Upload the profile picture
// @Description  JPEG, PNG, GIF or WebP up to 5 MB. Large images are resized to 512px.
// @Tags         onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /onboarding/profile-picture [put]
func (h *ProfilePictureHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, imaging.MaxUploadBytes+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}
	if file.Size > imaging.MaxUploadBytes {
		c.Error(apperror.BadRequest(imaging.ErrTooLarge.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, imaging.MaxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	if err := h.wizard.SaveProfilePicture(c.Request.Context(), file.Filename, data); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture uploaded", nil)
}

// Download godoc
// @Summary      Get the profile picture
// @Tags         onboarding
// @Produce      image/jpeg,image/png,image/gif,image/webp
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /onboarding/profile-picture [get]
func (h *ProfilePictureHandler) Download(c *gin.Context) {
	blob, err := h.wizard.ProfilePicture(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Inline(c, blob.ContentType, blob.Filename, blob.Data)
}

// Remove godoc
// @Summary      Remove the profile picture
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /onboarding/profile-picture [delete]
func (h *ProfilePictureHandler) Remove(c *gin.Context) {
	if err := h.wizard.RemoveProfilePicture(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture removed", nil)
}
