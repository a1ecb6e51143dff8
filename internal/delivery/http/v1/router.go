package v1

import (
	"net/http"

	"go-onboarding-wizard/config"
	"go-onboarding-wizard/internal/delivery/http/middleware"
	"go-onboarding-wizard/internal/delivery/http/response"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	WizardUC domain.WizardUsecase
	HealthUC usecase.HealthUsecase
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	isProduction := deps.Config.AppEnv == "production"

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, isProduction)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(isProduction))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Success(c, http.StatusOK, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("", middleware.RateLimitMiddleware(middleware.APIRateLimitConfig(deps.Config.RateLimitPerMinute)))
	NewOnboardingHandler(api, deps.WizardUC)
	NewCatalogHandler(api, deps.WizardUC.Directory())

	uploads := api.Group("", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config.UploadRateLimitPerMinute)))
	NewProfilePictureHandler(uploads, deps.WizardUC)

	return r
}
