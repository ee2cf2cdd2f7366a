package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/handler"
	"github.com/stayhub/maintenance-be/internal/api/middleware"
)

// SetupRouter configures and returns the Gin router with all routes.
func SetupRouter(deps *handler.Dependencies, jwtSecret string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "maintenance-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	staffHandler := handler.NewStaffHandler(deps)
	dashboardHandler := handler.NewDashboardHandler(deps)
	notificationHandler := handler.NewNotificationHandler(deps)

	auth := middleware.JWTAuth(jwtSecret)

	admin := r.Group("/admin", auth)
	{
		// Any authenticated user may apply to a job.
		admin.POST("/jobs/:id/apply", jobHandler.ApplyToJob)

		// The legacy submit flow is driven by the applier, not the owner.
		if deps.Service.LegacySubmitEnabled() {
			admin.POST("/jobs/:id/submit", jobHandler.SubmitJobLegacy)
		}

		owner := admin.Group("", middleware.RequireRole(domain.RoleAdmin))
		{
			owner.POST("/jobs", jobHandler.CreateJob)
			owner.POST("/jobs/:id/assign", jobHandler.AssignJob)
			owner.POST("/jobs/:id/auto-assign", jobHandler.AutoAssignJob)
			owner.POST("/jobs/:id/review", jobHandler.ReviewJob)
			owner.POST("/jobs/:id/approve", jobHandler.ApproveJob)
			owner.DELETE("/jobs/:id", jobHandler.DeleteJob)
			owner.GET("/jobs/all", jobHandler.ListJobs)
			owner.GET("/jobs/status/:status", jobHandler.JobsByStatus)
			owner.GET("/jobs/:id/applications", jobHandler.JobApplications)
			owner.GET("/dashboard", dashboardHandler.Stats)
			owner.GET("/notifications", notificationHandler.ListNotifications)
			owner.POST("/notifications/:id/read", notificationHandler.MarkRead)
			owner.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		}
	}

	staff := r.Group("/staff", auth, middleware.RequireRole(domain.RoleStaff, domain.RoleAdmin))
	{
		staff.GET("/jobs", staffHandler.MyJobs)
		staff.POST("/jobs/:id/accept", staffHandler.AcceptJob)
		staff.POST("/jobs/:id/submit", staffHandler.SubmitJob)
		staff.POST("/jobs/:id/reject", staffHandler.RejectJob)
		staff.GET("/earnings", staffHandler.MyEarnings)
	}

	return r
}
