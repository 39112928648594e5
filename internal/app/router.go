package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resilience_backend/internal/config"
	"resilience_backend/internal/middleware"
	"resilience_backend/internal/model"
	"resilience_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerAdminRoutes(router, c, cfg)
}

// registerPublicRoutes wires the respondent flow. Possession of a
// valid assessment code is the only credential.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)

		assessment := public.Group("/assessment")
		{
			assessment.POST("/validate", c.assessment.ValidateCode)
			assessment.GET("/questionnaire", c.assessment.Questionnaire)
			assessment.POST("/sessions", c.assessment.StartSession)
			assessment.PUT("/sessions/:id/responses", c.assessment.SaveResponse)
			assessment.POST("/sessions/:id/complete", c.assessment.CompleteSession)
			assessment.GET("/sessions/:id/results", c.assessment.Results)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Editor))
	{
		admin.GET("/me", c.auth.Me)

		admin.POST("/areas", c.area.CreateArea)
		admin.GET("/areas", c.area.ListAreas)
		admin.GET("/areas/:id", c.area.GetArea)
		admin.PUT("/areas/:id", c.area.UpdateArea)
		admin.DELETE("/areas/:id", c.area.DeleteArea)
		admin.POST("/areas/:id/sub-areas", c.area.CreateSubArea)
		admin.GET("/areas/:id/sub-areas", c.area.ListSubAreas)
		admin.PUT("/sub-areas/:id", c.area.UpdateSubArea)
		admin.DELETE("/sub-areas/:id", c.area.DeleteSubArea)
		admin.PUT("/areas/:id/ranges", c.area.SetAreaRanges)
		admin.PUT("/sub-areas/:id/ranges", c.area.SetSubAreaRanges)
		admin.PUT("/ranges/:id/feedback", c.area.SetFeedbackContent)
		admin.GET("/overall-feedback", c.area.ListOverallFeedback)
		admin.PUT("/overall-feedback", c.area.SetOverallFeedback)

		admin.POST("/questions", c.question.CreateQuestion)
		admin.GET("/questions", c.question.ListQuestions)
		admin.GET("/questions/:id", c.question.GetQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		admin.POST("/areas/:id/rules", c.rule.CreateRule)
		admin.GET("/areas/:id/rules", c.rule.ListRules)
		admin.PUT("/rules/:id", c.rule.UpdateRule)
		admin.DELETE("/rules/:id", c.rule.DeleteRule)
		admin.PUT("/areas/:id/rules/reorder", c.rule.ReorderRules)

		admin.POST("/cohorts", c.cohort.CreateCohort)
		admin.GET("/cohorts", c.cohort.ListCohorts)
		admin.GET("/cohorts/:id", c.cohort.GetCohort)
		admin.PUT("/cohorts/:id", c.cohort.UpdateCohort)
		admin.DELETE("/cohorts/:id", c.cohort.DeleteCohort)
		admin.POST("/cohorts/:id/codes", c.cohort.GenerateCodes)
		admin.GET("/cohorts/:id/codes", c.cohort.ListCodes)
		admin.GET("/cohorts/:id/sessions", c.cohort.CohortSessions)
		admin.POST("/cohorts/:id/export", c.cohort.ExportResults)
		admin.POST("/codes/:id/disable", c.cohort.DisableCode)
		admin.POST("/codes/:id/enable", c.cohort.EnableCode)
		admin.GET("/codes/:id/sessions", c.cohort.CodeSessions)
	}

	// user management is admin-only, editors are excluded
	users := router.Group("/api/admin/users")
	users.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		users.POST("", c.auth.CreateUser)
	}
}
