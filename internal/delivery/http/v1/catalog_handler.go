package v1

import (
	"net/http"

	"go-onboarding-wizard/internal/delivery/http/response"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// CatalogResponse lists the fixed choices of the wizard forms
type CatalogResponse struct {
	Departments   []domain.Department   `json:"departments"`
	JobTypes      []domain.JobType      `json:"jobTypes"`
	Relationships []domain.Relationship `json:"relationships"`
}

type CatalogHandler struct {
	directory domain.DirectoryRepository
}

func NewCatalogHandler(r *gin.RouterGroup, directory domain.DirectoryRepository) {
	handler := &CatalogHandler{directory: directory}

	catalog := r.Group("/catalog")
	{
		catalog.GET("/departments", handler.ListDepartments)
		catalog.GET("/departments/:department/skills", handler.ListSkills)
		catalog.GET("/departments/:department/managers", handler.ListManagers)
	}
}

// ListDepartments godoc
// @Summary      List form choices
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=CatalogResponse}
// @Router       /catalog/departments [get]
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	response.Success(c, http.StatusOK, "Catalog retrieved", CatalogResponse{
		Departments:   domain.ValidDepartments(),
		JobTypes:      domain.ValidJobTypes(),
		Relationships: domain.ValidRelationships(),
	})
}

// ListSkills godoc
// @Summary      Skills offered by a department
// @Tags         catalog
// @Produce      json
// @Param        department  path      string  true  "Department"
// @Success      200         {object}  response.Response{data=[]string}
// @Failure      404         {object}  response.Response
// @Router       /catalog/departments/{department}/skills [get]
func (h *CatalogHandler) ListSkills(c *gin.Context) {
	dept, ok := departmentParam(c)
	if !ok {
		return
	}
	skills, err := h.directory.SkillCatalog(c.Request.Context(), dept)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// ListManagers godoc
// @Summary      Managers of a department
// @Tags         catalog
// @Produce      json
// @Param        department  path      string  true  "Department"
// @Success      200         {object}  response.Response{data=[]domain.Manager}
// @Failure      404         {object}  response.Response
// @Router       /catalog/departments/{department}/managers [get]
func (h *CatalogHandler) ListManagers(c *gin.Context) {
	dept, ok := departmentParam(c)
	if !ok {
		return
	}
	managers, err := h.directory.Managers(c.Request.Context(), dept)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Managers retrieved", managers)
}

func departmentParam(c *gin.Context) (domain.Department, bool) {
	dept := domain.Department(c.Param("department"))
	if !dept.IsValid() {
		c.Error(apperror.New(http.StatusNotFound, "Unknown department", domain.ErrUnknownDepartment))
		return "", false
	}
	return dept, true
}
